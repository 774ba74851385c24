package db

import (
	"context"
	"errors"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ErrNotFound is returned when a requested snapshot or schedule does not exist
var ErrNotFound = errors.New("not found")

// Schedule is a generated month as persisted
type Schedule struct {
	Month       string
	Assignments []model.DailyAssignment
	Violations  []model.Violation
}

// SnapshotStore provides the engine's input.
// The snapshot file, sqlite and postgres backends all implement it.
type SnapshotStore interface {
	GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error)
}

// SnapshotImporter stores a new snapshot version
type SnapshotImporter interface {
	InsertSnapshot(ctx context.Context, snapshot *model.Snapshot) (int64, error)
}

// ScheduleStore persists generated months. Saving a month replaces any earlier
// schedule for that month. GetSchedule returns ErrNotFound only when the month has
// neither assignments nor violations.
type ScheduleStore interface {
	SaveSchedule(ctx context.Context, schedule *Schedule) error
	GetSchedule(ctx context.Context, month string) (*Schedule, error)
}

// RecordStore keeps the audit trail of generation runs
type RecordStore interface {
	InsertGenerationRecord(ctx context.Context, record *model.GenerationRecord) error
	// GetGenerationRecords returns records oldest first; an empty month returns all of them
	GetGenerationRecords(ctx context.Context, month string) ([]model.GenerationRecord, error)
}

// Database defines the interface for all database operations.
// Both the sqlite.DB and postgres.DB implement this interface.
type Database interface {
	SnapshotStore
	SnapshotImporter
	ScheduleStore
	RecordStore
	Close() error
}
