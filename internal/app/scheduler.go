package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/astorrey/TackleHogs/external/jobqueue"
	"github.com/astorrey/TackleHogs/internal/usecase"
)

const (
	advanceDueJobPath  = "/v1/internal/jobs/advance-due"
	rebuildLeaderboard = "/v1/internal/jobs/rebuild-leaderboard"
)

// jobScheduler ticks the periodic maintenance jobs. With a QStash publisher
// configured the ticks enqueue HTTP callbacks so any instance can pick them
// up; without one the jobs run in process.
type jobScheduler struct {
	publisher       *jobqueue.QStashPublisher
	competitions    *usecase.CompetitionService
	leaderboards    *usecase.LeaderboardService
	sweepInterval   time.Duration
	rebuildInterval time.Duration
	logger          *slog.Logger
}

func newJobScheduler(
	publisher *jobqueue.QStashPublisher,
	competitions *usecase.CompetitionService,
	leaderboards *usecase.LeaderboardService,
	sweepInterval time.Duration,
	rebuildInterval time.Duration,
	logger *slog.Logger,
) *jobScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &jobScheduler{
		publisher:       publisher,
		competitions:    competitions,
		leaderboards:    leaderboards,
		sweepInterval:   sweepInterval,
		rebuildInterval: rebuildInterval,
		logger:          logger,
	}
}

func (s *jobScheduler) Run(ctx context.Context) {
	sweep := time.NewTicker(s.sweepInterval)
	defer sweep.Stop()
	rebuild := time.NewTicker(s.rebuildInterval)
	defer rebuild.Stop()

	s.logger.Info("job scheduler started",
		"sweep_interval", s.sweepInterval.String(),
		"rebuild_interval", s.rebuildInterval.String(),
		"mode", s.mode(),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("job scheduler stopped")
			return
		case now := <-sweep.C:
			s.runSweep(ctx, now)
		case now := <-rebuild.C:
			s.runRebuild(ctx, now)
		}
	}
}

func (s *jobScheduler) mode() string {
	if s.publisher != nil {
		return "qstash"
	}
	return "inline"
}

func (s *jobScheduler) runSweep(ctx context.Context, now time.Time) {
	if s.publisher != nil {
		s.enqueue(ctx, "advance-due", advanceDueJobPath, now, s.sweepInterval)
		return
	}

	result, err := s.competitions.AdvanceDue(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "competition sweep failed", "error", err)
		return
	}
	if result.Activated > 0 || result.Completed > 0 || result.Failed > 0 {
		s.logger.InfoContext(ctx, "competition sweep finished",
			"activated", result.Activated,
			"completed", result.Completed,
			"failed", result.Failed,
		)
	}
}

func (s *jobScheduler) runRebuild(ctx context.Context, now time.Time) {
	if s.publisher != nil {
		s.enqueue(ctx, "rebuild-leaderboard", rebuildLeaderboard, now, s.rebuildInterval)
		return
	}

	result, err := s.leaderboards.RebuildAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "leaderboard rebuild failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "leaderboard rebuild finished",
		"users", result.Users,
		"failed", result.Failed,
	)
}

// enqueue publishes one callback per tick window. The deduplication id is
// derived from the tick bucket so overlapping instances cannot double-fire.
func (s *jobScheduler) enqueue(ctx context.Context, jobName, path string, now time.Time, interval time.Duration) {
	dispatchID := jobName + "-" + now.UTC().Truncate(interval).Format("20060102T150405Z")
	payload := map[string]any{"dispatch_id": dispatchID}

	if err := s.publisher.Enqueue(ctx, path, payload, 0, dispatchID); err != nil {
		s.logger.ErrorContext(ctx, "enqueue job failed",
			"job_name", jobName,
			"dispatch_id", dispatchID,
			"error", err,
		)
	}
}
