package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/mivdata/traffic-data-aggregation/internal/traffic"
)

// Scheduler periodically captures a traffic snapshot in serve mode. Capture
// failures are logged, not fatal; the next tick tries again.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *traffic.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, service *traffic.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic capture job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		log.Info("scheduler: running traffic capture job")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if _, err := s.service.Capture(ctx); err != nil {
			log.Errorf("scheduler: capture failed: %v", err)
			return
		}
		log.Info("scheduler: completed traffic capture job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
