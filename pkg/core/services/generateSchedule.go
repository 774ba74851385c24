package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// GenerationStore defines the database operations needed to persist a generation run
type GenerationStore interface {
	db.ScheduleStore
	db.RecordStore
}

// GenerateScheduleResult is a generated month and the audit record written for it
type GenerateScheduleResult struct {
	Result *roster.Result
	Record *model.GenerationRecord
}

// now is replaced in tests
var now = time.Now

// GenerateSchedule generates one month from the latest snapshot, stores it and
// records the run. A run rejected by the engine is still recorded, as failed.
func GenerateSchedule(
	ctx context.Context,
	snapshots db.SnapshotStore,
	store GenerationStore,
	cfg *config.Config,
	logger *zap.Logger,
	month string,
	baseWeekType model.WeekType,
) (*GenerateScheduleResult, error) {
	logger.Debug("Generating schedule", zap.String("month", month), zap.String("base_week_type", string(baseWeekType)))

	snapshot, err := snapshots.GetLatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	logger.Debug("Loaded snapshot",
		zap.Int("persons", len(snapshot.Persons)),
		zap.Int("groups", len(snapshot.Groups)),
		zap.Int("calendar_overrides", len(snapshot.CalendarOverrides)))

	result, err := generateMonth(snapshot, cfg, logger, month, baseWeekType)
	if err != nil {
		recordFailure(ctx, store, cfg, logger, month)
		return nil, err
	}

	record, err := saveResult(ctx, store, cfg, logger, result)
	if err != nil {
		return nil, err
	}

	return &GenerateScheduleResult{Result: result, Record: record}, nil
}

func generateMonth(snapshot *model.Snapshot, cfg *config.Config, logger *zap.Logger, month string, baseWeekType model.WeekType) (*roster.Result, error) {
	first, last, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	merged, added, err := withCalendarRules(snapshot, cfg.CalendarRules, first, last)
	if err != nil {
		return nil, err
	}
	if added > 0 {
		logger.Debug("Expanded recurring calendar rules", zap.Int("overrides", added))
	}

	opts, err := engineOptions(cfg, baseWeekType)
	if err != nil {
		return nil, err
	}

	result, err := roster.Generate(month, merged, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", month, err)
	}

	logger.Info("Generated schedule",
		zap.String("month", month),
		zap.String("anchor", result.Anchor.Date.Format("2006-01-02")),
		zap.String("anchor_week_type", string(result.Anchor.Parity)),
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("violations", len(result.Violations)))

	return result, nil
}

// saveResult stores the month and appends its generation record
func saveResult(ctx context.Context, store GenerationStore, cfg *config.Config, logger *zap.Logger, result *roster.Result) (*model.GenerationRecord, error) {
	schedule := &db.Schedule{
		Month:       result.Month,
		Assignments: result.Assignments,
		Violations:  result.Violations,
	}
	if err := store.SaveSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	record := newRecord(cfg, result.Month, result.Status(), len(result.Violations))
	if err := store.InsertGenerationRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert generation record: %w", err)
	}

	logger.Debug("Saved schedule",
		zap.String("month", result.Month),
		zap.String("record_id", record.ID),
		zap.String("status", string(record.Status)))

	return record, nil
}

// recordFailure writes a failed generation record. The generation error is what
// the caller reports, so a failure here is only logged.
func recordFailure(ctx context.Context, store db.RecordStore, cfg *config.Config, logger *zap.Logger, month string) {
	record := newRecord(cfg, month, model.GenerationFailed, 0)
	if err := store.InsertGenerationRecord(ctx, record); err != nil {
		logger.Warn("Failed to record failed generation", zap.String("month", month), zap.Error(err))
	}
}

func newRecord(cfg *config.Config, month string, status model.GenerationStatus, violations int) *model.GenerationRecord {
	return &model.GenerationRecord{
		ID:             uuid.New().String(),
		Month:          month,
		GeneratedAt:    now().UTC().Format(time.RFC3339),
		RuleVersion:    cfg.RuleVersion,
		Status:         status,
		ViolationCount: violations,
		Operator:       cfg.Operator,
	}
}
