package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListRecords returns generation records oldest first. An empty month lists every record.
func ListRecords(ctx context.Context, store db.RecordStore, logger *zap.Logger, month string) ([]model.GenerationRecord, error) {
	if month != "" {
		if _, _, err := monthBounds(month); err != nil {
			return nil, err
		}
	}

	records, err := store.GetGenerationRecords(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch generation records: %w", err)
	}

	logger.Debug("Fetched generation records", zap.String("month", month), zap.Int("count", len(records)))

	return records, nil
}
