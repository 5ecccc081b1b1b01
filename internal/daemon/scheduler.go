package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

var errNoJob = errors.New("no periodic job scheduled")

// Scheduler wraps gocron scheduler for managing the periodic run.
type Scheduler struct {
	scheduler gocron.Scheduler
	jobID     uuid.UUID
	task      func()
	name      string
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start(context.Context) {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler, waiting for a running task.
func (s *Scheduler) Stop(context.Context) error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) options() []gocron.JobOption {
	return []gocron.JobOption{
		gocron.WithName(s.name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	}
}

// ScheduleEvery runs task now and then every interval. A run still in
// progress when the next one is due causes that one to be skipped.
func (s *Scheduler) ScheduleEvery(name string, interval time.Duration, task func()) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("interval must be positive, got %s", interval)
	}
	s.name, s.task = name, task
	job, err := s.scheduler.NewJob(gocron.DurationJob(interval), gocron.NewTask(task), s.options()...)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic job: %w", err)
	}
	s.jobID = job.ID()
	return job.ID().String(), nil
}

// Reschedule changes the interval of the job created by ScheduleEvery.
func (s *Scheduler) Reschedule(interval time.Duration) error {
	if s.task == nil {
		return errNoJob
	}
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", interval)
	}
	job, err := s.scheduler.Update(s.jobID, gocron.DurationJob(interval), gocron.NewTask(s.task), s.options()...)
	if err != nil {
		return fmt.Errorf("failed to reschedule job: %w", err)
	}
	s.jobID = job.ID()
	return nil
}
