package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// NamedQueue exposes the length of an in-memory queue under a name.
type NamedQueue struct {
	Name string
	Len  func() int
}

// MonitorWorker periodically logs the process footprint and the depth of the watched queues.
// Reading a queue length is cheap and never blocks its owner.
type MonitorWorker struct {
	log           *slog.Logger
	queues        []NamedQueue
	interval      time.Duration
	warnThreshold int
}

func NewMonitorWorker(log *slog.Logger, queues []NamedQueue, interval time.Duration, warnThreshold int) *MonitorWorker {
	return &MonitorWorker{log: log, queues: queues, interval: interval, warnThreshold: warnThreshold}
}

func (w *MonitorWorker) Run(ctx context.Context) error {
	w.log.Info("Starting monitor worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping monitor")
			return nil
		case <-ticker.C:
			w.report(p)
		}
	}
}

func (w *MonitorWorker) report(p *process.Process) {
	rss, cpu, status, err := getSelfStats(p)
	if err != nil {
		w.log.Error("Failed to collect self stats", "error", err)
	} else {
		w.log.Debug("Process stats", "rss_bytes", rss, "cpu_percent", cpu, "status", status)
	}

	for _, q := range w.queues {
		length := q.Len()
		if w.warnThreshold > 0 && length >= w.warnThreshold {
			w.log.Warn("Queue close to saturation", "name", q.Name, "length", length, "threshold", w.warnThreshold)
			continue
		}
		w.log.Debug("Queue length", "name", q.Name, "length", length)
	}
}

// getSelfStats retrieves memory, CPU and OS status for the given process.
func getSelfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
