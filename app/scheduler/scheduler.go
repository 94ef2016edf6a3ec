// Package scheduler wires up the cron job that re-runs the transform
// pipeline in daemon mode.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// RunFunc executes one pipeline run.
type RunFunc func(ctx context.Context) error

// Scheduler wraps robfig/cron around a pipeline run function.
type Scheduler struct {
	cron *cron.Cron
	run  RunFunc
	spec string // cron spec, e.g. "@every 24h"
}

func New(spec string, run RunFunc) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		run:  run,
		spec: spec,
	}
}

// Start registers the job and starts the scheduler. It also runs once
// immediately so output exists without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	slog.Info("Scheduler started", "spec", s.spec)

	go s.runOnce(ctx)
	return nil
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.run(ctx); err != nil {
		slog.Error("Scheduled run failed", "error", err)
	}
}
