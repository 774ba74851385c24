// Package snapshotfile reads the engine's input from a YAML document on disk.
// It is read-only: snapshots are edited by hand and imported into a database
// with the importSnapshot command.
package snapshotfile

import (
	"context"
	"fmt"
	"os"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// Store serves the snapshot held in a single YAML file
type Store struct {
	path string
}

// New creates a store for the file at path. The file is read on every call.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads and decodes a snapshot file
func Load(path string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	snapshot, err := db.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return snapshot, nil
}

// GetLatestSnapshot returns the file's current contents
func (s *Store) GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	return Load(s.path)
}
