package workers

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper removes expired state and returns how many entries went away.
type Sweeper interface {
	Sweep() (int, error)
}

// CallSweeper purges stale call sessions on a fixed interval.
type CallSweeper struct {
	log      *slog.Logger
	sweeper  Sweeper
	interval time.Duration
}

func NewCallSweeper(log *slog.Logger, sweeper Sweeper, interval time.Duration) *CallSweeper {
	return &CallSweeper{log: log, sweeper: sweeper, interval: interval}
}

func (w *CallSweeper) Run(ctx context.Context) error {
	w.log.Info("Starting call sweeper", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping call sweeper")
			return nil
		case <-ticker.C:
			removed, err := w.sweeper.Sweep()
			if err != nil {
				w.log.Error("Unable to sweep expired calls", "error", err)
				continue
			}
			if removed > 0 {
				w.log.Info("Expired calls removed", "count", removed)
			}
		}
	}
}
