// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/avsuite/av-cost-estimator/pkg/metrics"
)

// Retrainer triggers a model rebuild from the accumulated feedback buffer.
type Retrainer interface {
	ForceRetrain() error
	ModelVersion() string
}

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron      *cron.Cron
	retrainer Retrainer
	schedule  string
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewScheduler creates a scheduler with the standard 5-field cron format.
func NewScheduler(retrainer Retrainer, schedule string, m *metrics.Metrics, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:      c,
		retrainer: retrainer,
		schedule:  schedule,
		metrics:   m,
		logger:    logger,
	}
}

// Start registers the nightly retrain job and begins the schedule. Feedback
// below the auto-retrain threshold would otherwise never reach the model.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.retrainModel); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.String("schedule", s.schedule),
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the retrain job (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.retrainModel()
}

func (s *Scheduler) retrainModel() {
	before := s.retrainer.ModelVersion()

	if err := s.retrainer.ForceRetrain(); err != nil {
		s.logger.Error("scheduled retrain failed", slog.Any("error", err))
		return
	}

	after := s.retrainer.ModelVersion()
	if after != before {
		s.metrics.Retrains.Inc()
	}
	s.logger.Info("scheduled retrain complete",
		slog.String("modelVersion", after),
		slog.Bool("retrained", after != before),
	)
}
