package server

import (
	"log/slog"
	"net"

	grpc2 "github.com/mama165/sdk-go/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the chat backend.
const ServiceName = "npchat.Chat"

// HealthServer exposes the standard gRPC health protocol for load balancers and orchestrators.
type HealthServer struct {
	log    *slog.Logger
	server *grpc.Server
	health *health.Server
}

func NewHealthServer(log *slog.Logger) *HealthServer {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(grpc2.UnaryLoggingInterceptor(log)))
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return &HealthServer{log: log, server: s, health: h}
}

// Serve blocks until Stop is called.
func (s *HealthServer) Serve(listener net.Listener) error {
	s.log.Info("Starting gRPC health server", "address", listener.Addr().String())
	for serviceName := range s.server.GetServiceInfo() {
		s.log.Debug("gRPC exposed services", "name", serviceName)
	}
	return s.server.Serve(listener)
}

// MarkNotServing is called first on shutdown so that health checkers stop routing traffic.
func (s *HealthServer) MarkNotServing() {
	s.health.Shutdown()
}

func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
