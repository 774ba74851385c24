package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// GetLatestSnapshot returns the most recently imported snapshot
func (d *DB) GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var document string
	err := d.pool.QueryRow(ctx, `
		SELECT document FROM snapshot ORDER BY id DESC LIMIT 1
	`).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("no snapshot imported: %w", db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	return db.DecodeSnapshot([]byte(document))
}

// InsertSnapshot stores a new snapshot version and returns its id
func (d *DB) InsertSnapshot(ctx context.Context, snapshot *model.Snapshot) (int64, error) {
	document, err := db.EncodeSnapshot(snapshot)
	if err != nil {
		return 0, err
	}

	var id int64
	err = d.pool.QueryRow(ctx, `
		INSERT INTO snapshot (document) VALUES ($1) RETURNING id
	`, string(document)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return id, nil
}
