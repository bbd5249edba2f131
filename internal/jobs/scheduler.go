// Package jobs runs background work on a schedule
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// snapshotTimeout bounds one snapshot run
const snapshotTimeout = 2 * time.Minute

// DueSnapshotter writes the current due summary to a file
type DueSnapshotter interface {
	SnapshotDues(ctx context.Context) (string, error)
}

// Scheduler owns the gocron scheduler and its registered jobs
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    zerolog.Logger
}

// NewScheduler creates a scheduler driven by clock in the local time zone
func NewScheduler(clock clockwork.Clock, logger zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.Local),
		gocron.WithClock(clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, logger: logger}, nil
}

// AddDueSnapshot registers the due summary snapshot on a five-field cron
// expression. Runs never overlap.
func (s *Scheduler) AddDueSnapshot(cronExpr string, snapshotter DueSnapshotter) error {
	_, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(s.snapshotTask(snapshotter)),
		gocron.WithName("due-summary-snapshot"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule due snapshot %q: %w", cronExpr, err)
	}
	s.logger.Info().Str("cron", cronExpr).Msg("Due summary snapshot scheduled")
	return nil
}

func (s *Scheduler) snapshotTask(snapshotter DueSnapshotter) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		path, err := snapshotter.SnapshotDues(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("Due summary snapshot failed")
			return
		}
		s.logger.Info().Str("path", path).Msg("Due summary snapshot written")
	}
}

// Start begins running registered jobs
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Shutdown stops the scheduler and waits for running jobs
func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}
