// Package schedule drives repeated pipeline runs on a fixed interval.
// Cancellation and interval semantics live here; the pipeline core knows
// nothing about scheduling.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/galafis/Modern-ETL-Pipeline/internal/logger"
)

// RunFunc executes one pipeline run.
type RunFunc func(ctx context.Context)

// Scheduler invokes a run function immediately and then on every tick until
// the context is cancelled. Runs never overlap: a tick arriving while a run
// is still in progress is skipped.
type Scheduler struct {
	interval time.Duration
	run      RunFunc
	logger   *logger.Logger
}

// New creates a scheduler. The interval must be positive.
func New(interval time.Duration, run RunFunc, log *logger.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}
	if run == nil {
		return nil, fmt.Errorf("run function is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Scheduler{interval: interval, run: run, logger: log}, nil
}

// Start blocks until ctx is cancelled, running the pipeline once up front
// and then on each interval tick.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Infow("Scheduler started", "interval", s.interval)

	running := make(chan struct{}, 1)
	invoke := func() {
		select {
		case running <- struct{}{}:
		default:
			s.logger.Warnw("Previous run still in progress - skipping tick")
			return
		}
		defer func() { <-running }()
		s.run(ctx)
	}

	go invoke()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Wait for an in-flight run before returning.
			running <- struct{}{}
			s.logger.Infow("Scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			go invoke()
		}
	}
}
