package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// SheetsClient defines the sheets operations needed to publish a schedule
type SheetsClient interface {
	PublishSchedule(spreadsheetID string, schedule *db.Schedule) (*sheetsclient.PublishResult, error)
}

// PublishSchedule publishes a stored month to the configured spreadsheet
func PublishSchedule(
	ctx context.Context,
	store db.ScheduleStore,
	sheetsClient SheetsClient,
	cfg *config.Config,
	logger *zap.Logger,
	month string,
) (*sheetsclient.PublishResult, error) {
	if cfg.Publish.SpreadsheetID == "" {
		return nil, fmt.Errorf("publish.spreadsheetID is not configured")
	}

	logger.Debug("Publishing schedule", zap.String("month", month))

	schedule, err := store.GetSchedule(ctx, month)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("no schedule generated for %s, run generate first: %w", month, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	logger.Debug("Loaded schedule",
		zap.Int("assignments", len(schedule.Assignments)),
		zap.Int("violations", len(schedule.Violations)))

	result, err := sheetsClient.PublishSchedule(cfg.Publish.SpreadsheetID, schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Published schedule",
		zap.String("month", month),
		zap.String("tab", result.ScheduleTab),
		zap.Int("violations", result.ViolationCount))

	return result, nil
}
