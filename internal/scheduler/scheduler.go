package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RateRefresher is the job run on every tick
type RateRefresher interface {
	RefreshRate(ctx context.Context) error
}

// RefresherFunc adapts a function to RateRefresher
type RefresherFunc func(ctx context.Context) error

func (f RefresherFunc) RefreshRate(ctx context.Context) error { return f(ctx) }

// Scheduler periodically refreshes the benchmark rate
type Scheduler struct {
	cron    *cron.Cron
	job     RateRefresher
	timeout time.Duration
	log     *logrus.Logger

	// parent of every refresh; set by Run before the cron starts
	ctx context.Context
}

// NewScheduler registers the refresh job on the given cron spec
func NewScheduler(spec string, job RateRefresher, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		job:     job,
		timeout: 30 * time.Second,
		log:     log,
		ctx:     context.Background(),
	}
	if _, err := s.cron.AddFunc(spec, func() { s.runOnce(s.ctx) }); err != nil {
		return nil, fmt.Errorf("failed to schedule rate refresh %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) runOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()
	if err := s.job.RefreshRate(ctx); err != nil {
		s.log.Warnf("Scheduled rate refresh failed: %v", err)
		return
	}
	s.log.Debug("Scheduled rate refresh completed")
}

// Run refreshes once immediately, then follows the schedule until ctx is done
func (s *Scheduler) Run(ctx context.Context) error {
	s.ctx = ctx
	s.runOnce(ctx)
	s.cron.Start()
	s.log.Infof("Rate refresh scheduler started")

	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	s.log.Infof("Rate refresh scheduler stopped")
	return nil
}
