// Package scheduler runs the periodic background jobs of the API process
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Job is one periodic task
type Job interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) error
}

// Manager owns the gocron scheduler and the jobs registered on it
type Manager struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	logger    zerolog.Logger
}

// NewManager creates a stopped manager
func NewManager(logger zerolog.Logger) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		scheduler: s,
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
	}, nil
}

// Register adds a job; a run still in progress when the next one is due is skipped
func (m *Manager) Register(job Job) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(job.Interval()),
		gocron.NewTask(m.execute, job),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.Name(), err)
	}
	m.logger.Info().Str("job", job.Name()).Dur("interval", job.Interval()).Msg("Job registered")
	return nil
}

func (m *Manager) execute(job Job) {
	start := time.Now()
	if err := job.Run(m.ctx); err != nil {
		m.logger.Error().Err(err).Str("job", job.Name()).Msg("Job failed")
		return
	}
	m.logger.Debug().Str("job", job.Name()).Dur("took", time.Since(start)).Msg("Job finished")
}

// Start begins running the registered jobs
func (m *Manager) Start() {
	m.scheduler.Start()
	m.logger.Info().Msg("Scheduler started")
}

// Stop cancels running jobs and waits for them to return
func (m *Manager) Stop() error {
	m.cancel()
	if err := m.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}
	m.logger.Info().Msg("Scheduler stopped")
	return nil
}
