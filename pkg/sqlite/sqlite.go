package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// DB provides database operations using an embedded SQLite file
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path
func Open(ctx context.Context, path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sqlite dir: %w", err)
	}
	return open(ctx, path)
}

// OpenInMemory opens a private in-memory database, used by tests and dry runs
func OpenInMemory(ctx context.Context) (*DB, error) {
	return open(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func open(ctx context.Context, dsn string) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	d := &DB{db: sqlDB}
	if err := d.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return d, nil
}

// Close closes the database
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshot (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			document TEXT NOT NULL,
			imported_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS daily_assignment (
			month TEXT NOT NULL,
			position INTEGER NOT NULL,
			person TEXT NOT NULL,
			group_name TEXT NOT NULL,
			date TEXT NOT NULL,
			weekday TEXT NOT NULL,
			shift TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			is_violation INTEGER NOT NULL DEFAULT 0,
			violation_reason TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (month, position)
		);`,
		`CREATE TABLE IF NOT EXISTS violation (
			month TEXT NOT NULL,
			position INTEGER NOT NULL,
			date TEXT NOT NULL,
			person TEXT NOT NULL DEFAULT '',
			group_name TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			description TEXT NOT NULL,
			PRIMARY KEY (month, position)
		);`,
		`CREATE TABLE IF NOT EXISTS generation_record (
			id TEXT PRIMARY KEY,
			month TEXT NOT NULL,
			generated_at TEXT NOT NULL,
			rule_version TEXT NOT NULL,
			status TEXT NOT NULL,
			violation_count INTEGER NOT NULL,
			operator TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS generation_record_month_idx ON generation_record (month, generated_at);`,
	}

	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate sqlite: %w", err)
		}
	}

	return nil
}
