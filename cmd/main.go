package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/nikitapn/npchat/infrastructure/grpc/server"
	"github.com/nikitapn/npchat/infrastructure/ws"
	"github.com/nikitapn/npchat/internal"
	"github.com/nikitapn/npchat/repositories"
	"github.com/nikitapn/npchat/runtime"
	"github.com/nikitapn/npchat/runtime/workers"
	"github.com/nikitapn/npchat/services"
	"github.com/nikitapn/npchat/signaling"
	"google.golang.org/grpc"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "npchat terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Returning instead of exiting lets the deferred closes run.
func run() (int, error) {
	// 1. Configuration & Logger
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	ctx := context.Background()
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	chatRepository, err := repositories.NewChatRepository(db, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer func() { _ = chatRepository.Close() }()
	messageRepository, err := repositories.NewMessageRepository(db, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer func() { _ = messageRepository.Close() }()
	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()
	contactRepository := repositories.NewContactRepository(db, blugeWriter, logger)
	callRepository := repositories.NewCallRepository(db, logger)

	// 3. Fan-out core & supervision
	dispatcher := runtime.NewDispatcher(logger, config.DispatcherBacklog, config.ListenerTimeout)
	relay := signaling.NewRelay(logger, callRepository, chatRepository, dispatcher, config.CallRetention)
	supervisor := workers.NewSupervisor(logger, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(logger, supervisor, dispatcher, config.ListenerTimeout*2).
		Add(workers.NewCallSweeper(logger, relay, config.CallSweepInterval)).
		WithMonitor(config.MonitorInterval)

	chatService := services.NewChatService(logger, chatRepository, messageRepository, contactRepository,
		dispatcher, relay, config.MaxContentLength, config.HistoryLimit)

	// 4. Context & Signals
	// The orchestrator gets its own context: it must keep running while the dispatcher drains.
	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 3)
	orchestratorDone := make(chan struct{})
	go func() {
		defer close(orchestratorDone)
		if err := orchestrator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
		}
	}()

	// 5. gRPC health server
	healthAddress := fmt.Sprintf("%s:%d", config.Host, config.HealthPort)
	healthListener, err := net.Listen("tcp", healthAddress)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", healthAddress, err)
	}
	healthServer := server.NewHealthServer(logger)
	go func() {
		if err := healthServer.Serve(healthListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 6. Websocket server
	handler := ws.NewHandler(logger, chatService, config.ListenerTimeout)
	wsServer := ws.NewServer(logger, handler, []byte(config.AuthSecret))
	if config.DebugInspect {
		internal.RegisterInspect(wsServer.App(), "/debug/inspect", db, func() map[string]any {
			return map[string]any{"dispatcher_backlog": dispatcher.Backlog()}
		})
	}
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	go func() {
		if err := wsServer.Listen(address); err != nil {
			errChan <- fmt.Errorf("websocket server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-signalCtx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 8. Final Cleanup (Graceful Shutdown)
	// Health checks first, then clients, then the queued events.
	logger.Info("Shutting down gracefully...")
	healthServer.MarkNotServing()
	if err := wsServer.Shutdown(); err != nil {
		logger.Warn("Websocket server shutdown failed", "error", err)
	}
	if err := orchestrator.Stop(); err != nil {
		logger.Warn("Orchestrator stopped before draining", "error", err)
	}
	<-orchestratorDone
	healthServer.Stop()
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}
