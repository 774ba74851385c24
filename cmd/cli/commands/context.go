package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/db"
	"github.com/jakechorley/duty-roster/pkg/postgres"
	"github.com/jakechorley/duty-roster/pkg/snapshotfile"
	"github.com/jakechorley/duty-roster/pkg/sqlite"
)

const defaultSQLitePath = "roster.db"

// AppContext holds the application dependencies shared across all commands.
// The database and sheets client are opened on first use so commands that
// don't need them never connect or start an OAuth flow.
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context

	database     db.Database
	sheetsClient *sheetsclient.Client
}

// Database opens the configured store on first use
func (a *AppContext) Database() (db.Database, error) {
	if a.database != nil {
		return a.database, nil
	}

	database, err := OpenDatabase(a.Ctx, a.Cfg.Database, a.Logger)
	if err != nil {
		return nil, err
	}
	a.database = database
	return database, nil
}

// SheetsClient loads the OAuth client config and authenticates on first use
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	a.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	a.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(a.Ctx, oauthCfg, a.Env, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	a.sheetsClient = client
	return client, nil
}

// SnapshotSource returns the snapshot file store when fromFile is set, else the database.
// path overrides the configured snapshot file.
func (a *AppContext) SnapshotSource(fromFile bool, path string) (db.SnapshotStore, error) {
	if !fromFile && path == "" {
		return a.Database()
	}

	if path == "" {
		path = a.Cfg.SnapshotFile
	}
	if path == "" {
		return nil, fmt.Errorf("no snapshot file given and snapshotFile is not configured")
	}

	a.Logger.Debug("Reading snapshot file", zap.String("path", path))
	return snapshotfile.New(path), nil
}

// Close releases the database if it was opened
func (a *AppContext) Close() error {
	if a.database == nil {
		return nil
	}
	return a.database.Close()
}

// OpenDatabase connects to the store selected by the database config
func OpenDatabase(ctx context.Context, cfg config.Database, logger *zap.Logger) (db.Database, error) {
	switch cfg.Driver {
	case "postgres":
		logger.Info("Connecting to postgres")
		database, err := postgres.NewDB(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return database, nil

	case "sqlite":
		var database *sqlite.DB
		var err error
		if cfg.DSN == ":memory:" {
			logger.Info("Opening in-memory sqlite database")
			database, err = sqlite.OpenInMemory(ctx)
		} else {
			path := cfg.DSN
			if path == "" {
				path = defaultSQLitePath
			}
			logger.Info("Opening sqlite database", zap.String("path", path))
			database, err = sqlite.Open(ctx, path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return database, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}
