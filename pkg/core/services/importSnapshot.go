package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// StaffClient defines the sheets operations needed to read the staff list
type StaffClient interface {
	ListPersons(spreadsheetID, tab string) ([]model.Person, error)
}

// ImportSnapshotResult describes a stored snapshot version
type ImportSnapshotResult struct {
	ID       int64
	Snapshot *model.Snapshot
}

// ImportSnapshot copies a snapshot from source into the database as a new version.
// When staffClient is set the persons are replaced by the configured staff sheet.
// The snapshot must pass validation before anything is stored.
func ImportSnapshot(
	ctx context.Context,
	source db.SnapshotStore,
	importer db.SnapshotImporter,
	staffClient StaffClient,
	cfg *config.Config,
	logger *zap.Logger,
) (*ImportSnapshotResult, error) {
	snapshot, err := source.GetLatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if staffClient != nil && cfg.StaffSheet != nil {
		logger.Debug("Reading staff sheet", zap.String("tab", cfg.StaffSheet.Tab))
		persons, err := staffClient.ListPersons(cfg.StaffSheet.SpreadsheetID, cfg.StaffSheet.Tab)
		if err != nil {
			return nil, fmt.Errorf("failed to read staff sheet: %w", err)
		}

		replaced := *snapshot
		replaced.Persons = persons
		snapshot = &replaced
		logger.Debug("Replaced persons from staff sheet", zap.Int("persons", len(persons)))
	}

	if err := roster.ValidateSnapshot(snapshot); err != nil {
		return nil, err
	}

	id, err := importer.InsertSnapshot(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	logger.Info("Imported snapshot",
		zap.Int64("id", id),
		zap.Int("persons", len(snapshot.Persons)),
		zap.Int("groups", len(snapshot.Groups)))

	return &ImportSnapshotResult{ID: id, Snapshot: snapshot}, nil
}
