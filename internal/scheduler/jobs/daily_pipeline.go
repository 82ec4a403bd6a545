package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/aurum/internal/pipeline"
	"github.com/wonny/aurum/pkg/logger"
)

// DailyPipelineJob runs the full daily chain: ingest the upstream
// sources, derive metrics from the fresh raw rows, then recompute the
// premium join. Stage failures are isolated inside each stage; the job
// fails only when a whole stage cannot run.
type DailyPipelineJob struct {
	ingestor *pipeline.Ingestor
	deriver  *pipeline.Deriver
	premium  *pipeline.PremiumAnalyzer
	logger   *logger.Logger

	lookbackDays int
}

// NewDailyPipelineJob creates the daily pipeline job. lookbackDays
// bounds the ingest window ending today.
func NewDailyPipelineJob(
	ingestor *pipeline.Ingestor,
	deriver *pipeline.Deriver,
	premium *pipeline.PremiumAnalyzer,
	lookbackDays int,
	log *logger.Logger,
) *DailyPipelineJob {
	return &DailyPipelineJob{
		ingestor:     ingestor,
		deriver:      deriver,
		premium:      premium,
		logger:       log,
		lookbackDays: lookbackDays,
	}
}

// Name returns the job name
func (j *DailyPipelineJob) Name() string {
	return "daily_pipeline"
}

// Schedule runs every day at 4 PM KST (after domestic market close)
func (j *DailyPipelineJob) Schedule() string {
	return "0 0 16 * * *"
}

// Run executes ingest → derive → premium in order
func (j *DailyPipelineJob) Run(ctx context.Context) error {
	to := time.Now()
	from := to.AddDate(0, 0, -j.lookbackDays)

	ingested, err := j.ingestor.Run(ctx, from, to)
	if err != nil {
		return fmt.Errorf("ingest stage failed: %w", err)
	}

	derived, err := j.deriver.Run(ctx)
	if err != nil {
		return fmt.Errorf("derive stage failed: %w", err)
	}

	premium, err := j.premium.Run(ctx)
	if err != nil {
		return fmt.Errorf("premium stage failed: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"ingested": ingested.Written,
		"derived":  derived.Written,
		"premium":  premium.Written,
		"failed":   ingested.Failed + derived.Failed + premium.Failed,
	}).Info("Daily pipeline completed")

	return nil
}
