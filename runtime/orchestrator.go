package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nikitapn/npchat/contract"
	"github.com/nikitapn/npchat/runtime/workers"
)

// Orchestrator runs the dispatcher and the background workers under one supervisor.
type Orchestrator struct {
	mu           sync.Mutex
	log          *slog.Logger
	supervisor   contract.ISupervisor
	dispatcher   *Dispatcher
	workers      []contract.Worker
	drainTimeout time.Duration
	started      bool
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, dispatcher *Dispatcher,
	drainTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:          log,
		supervisor:   supervisor,
		dispatcher:   dispatcher,
		drainTimeout: drainTimeout,
	}
}

// Add registers background workers. It has no effect once started.
func (o *Orchestrator) Add(w ...contract.Worker) *Orchestrator {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.started {
		o.log.Warn("Orchestrator already started, worker ignored")
		return o
	}
	o.workers = append(o.workers, w...)
	return o
}

// WithMonitor adds a monitor watching the dispatcher backlog.
// It warns once the backlog reaches 80% of its limit.
func (o *Orchestrator) WithMonitor(interval time.Duration) *Orchestrator {
	queues := []workers.NamedQueue{{Name: "dispatcher", Len: o.dispatcher.Backlog}}
	return o.Add(workers.NewMonitorWorker(o.log, queues, interval, o.dispatcher.maxBacklog*8/10))
}

// Start blocks until every supervised worker has stopped.
// ctx should outlive the shutdown signal so that Stop can still drain the dispatcher.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.started {
		o.mu.Unlock()
		return fmt.Errorf("orchestrator already started")
	}
	o.started = true
	o.supervisor.Add(o.dispatcher)
	o.supervisor.Add(o.workers...)
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers", "workers", len(o.workers)+1)
	o.supervisor.Run(ctx)
	return nil
}

// Stop waits for the queued events to be delivered, then cancels the workers.
// The drain is bounded by the drain timeout, whatever is left afterwards is lost.
func (o *Orchestrator) Stop() error {
	o.log.Info("Requesting orchestrator shutdown", "backlog", o.dispatcher.Backlog())

	ctx, cancel := context.WithTimeout(context.Background(), o.drainTimeout)
	defer cancel()
	err := o.dispatcher.Sync(ctx)
	if err != nil {
		o.log.Warn("Dispatcher not drained before shutdown", "backlog", o.dispatcher.Backlog(), "error", err)
	}

	o.supervisor.Stop()
	return err
}
