package stream

import (
	"context"
	"log/slog"
	"time"

	"invention_go/internal/domain"
	"invention_go/internal/engine"
	"invention_go/internal/metrics"
)

// Scheduler drives the engine on a fixed heartbeat and fans the resulting
// bundle out to subscribers. It is the engine's single writer: one tick runs
// to completion per beat, and the loop blocks only on the ticker.
type Scheduler struct {
	engine   *engine.Engine
	sink     domain.BundleSink
	interval time.Duration
}

// NewScheduler creates a scheduler. Interval defaults to one second.
func NewScheduler(eng *engine.Engine, sink domain.BundleSink, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{engine: eng, sink: sink, interval: interval}
}

// Run generates and broadcasts one bundle per heartbeat until the context is
// cancelled. This MUST be run in a single goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("Scheduler started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler stopping...")
			return
		case <-ticker.C:
			bundle := s.engine.GenerateBundle()
			s.sink.Broadcast(bundle)
			metrics.BundlesGenerated.Inc()
		}
	}
}
