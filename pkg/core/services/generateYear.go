package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// GenerateYearResult holds every month of a generated year with its records
type GenerateYearResult struct {
	Results []*roster.Result
	Records []*model.GenerationRecord
}

// GenerateYear generates January to December from the latest snapshot.
// Months are only stored once the whole year has generated, so a rejected
// year leaves nothing behind except a failed record.
func GenerateYear(
	ctx context.Context,
	snapshots db.SnapshotStore,
	store GenerationStore,
	cfg *config.Config,
	logger *zap.Logger,
	year int,
) (*GenerateYearResult, error) {
	logger.Debug("Generating year", zap.Int("year", year), zap.Bool("continuity", cfg.Parity.Continuity))

	snapshot, err := snapshots.GetLatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	merged, added, err := withCalendarRules(snapshot, cfg.CalendarRules, first, last)
	if err != nil {
		return nil, err
	}
	logger.Debug("Expanded recurring calendar rules", zap.Int("overrides", added))

	opts, err := engineOptions(cfg, "")
	if err != nil {
		return nil, err
	}

	results, err := roster.GenerateYear(year, merged, roster.YearOptions{
		Options:    opts,
		Continuity: cfg.Parity.Continuity,
	})
	if err != nil {
		recordFailure(ctx, store, cfg, logger, fmt.Sprintf("%04d-01", year))
		return nil, fmt.Errorf("failed to generate %d: %w", year, err)
	}

	out := &GenerateYearResult{Results: results}
	for _, result := range results {
		record, err := saveResult(ctx, store, cfg, logger, result)
		if err != nil {
			return nil, fmt.Errorf("month %s: %w", result.Month, err)
		}
		out.Records = append(out.Records, record)

		logger.Info("Generated month",
			zap.String("month", result.Month),
			zap.String("anchor_week_type", string(result.Anchor.Parity)),
			zap.Int("violations", len(result.Violations)))
	}

	return out, nil
}
