package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one unit of scheduled work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Manager runs registered jobs on cron schedules
type Manager struct {
	cron    *cron.Cron
	logger  zerolog.Logger
	timeout time.Duration

	// ctx parents every job run and is cancelled by Stop
	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager creates a scheduler. Schedules use the standard five-field
// syntax or descriptors such as "@every 6h".
func NewManager(logger zerolog.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger))),
		logger:  logger,
		timeout: 10 * time.Minute,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register schedules job on a cron schedule
func (m *Manager) Register(schedule string, job Job) error {
	_, err := m.cron.AddFunc(schedule, func() { m.runJob(job) })
	if err != nil {
		return fmt.Errorf("failed to schedule job %s with %q: %w", job.Name(), schedule, err)
	}
	m.logger.Info().Str("job", job.Name()).Str("schedule", schedule).Msg("Job registered")
	return nil
}

// runJob executes job once with a timeout and logs its outcome
func (m *Manager) runJob(job Job) {
	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	defer cancel()

	start := time.Now()
	m.logger.Debug().Str("job", job.Name()).Msg("Job started")

	if err := job.Run(ctx); err != nil {
		m.logger.Error().Err(err).Str("job", job.Name()).Dur("elapsed", time.Since(start)).Msg("Job failed")
		return
	}
	m.logger.Info().Str("job", job.Name()).Dur("elapsed", time.Since(start)).Msg("Job completed")
}

// Start starts the scheduler in its own goroutine
func (m *Manager) Start() {
	m.cron.Start()
	m.logger.Info().Int("jobs", len(m.cron.Entries())).Msg("Job scheduler started")
}

// Stop stops scheduling, cancels running jobs and waits for them to
// return until ctx expires
func (m *Manager) Stop(ctx context.Context) error {
	done := m.cron.Stop()
	m.cancel()
	select {
	case <-done.Done():
		m.logger.Info().Msg("Job scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("job scheduler did not stop in time: %w", ctx.Err())
	}
}
