package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"intervai/internal/metrics"
	"intervai/internal/store"
)

// DraftSweeperJob deletes catalog interviews that were created eagerly but never finalized.
type DraftSweeperJob struct {
	store  store.InterviewStore
	config *SweeperConfig
	cron   *cron.Cron
	logger *zap.Logger
	now    func() time.Time
}

type SweeperConfig struct {
	Schedule string        // cron schedule, e.g. "0 3 * * *" for 3 AM daily
	MaxAge   time.Duration // drafts older than this are removed
	Enabled  bool
}

func NewDraftSweeperJob(s store.InterviewStore, config *SweeperConfig, logger *zap.Logger) *DraftSweeperJob {
	return &DraftSweeperJob{
		store:  s,
		config: config,
		cron:   cron.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Start schedules the sweep.
func (j *DraftSweeperJob) Start() error {
	if !j.config.Enabled {
		j.logger.Info("draft sweeper is disabled, skipping scheduler")
		return nil
	}

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error("draft sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule draft sweeper: %w", err)
	}

	j.cron.Start()
	j.logger.Info("draft sweeper started", zap.String("schedule", j.config.Schedule), zap.Duration("max_age", j.config.MaxAge))
	return nil
}

// Stop waits for a running sweep to finish.
func (j *DraftSweeperJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
		j.logger.Info("draft sweeper stopped")
	}
}

// Run performs a single sweep and reports how many drafts were removed.
func (j *DraftSweeperJob) Run(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.config.MaxAge)
	n, err := j.store.DeleteStaleDrafts(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale drafts: %w", err)
	}
	metrics.AddDraftsSwept(n)
	if n > 0 {
		j.logger.Info("deleted stale draft interviews", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
