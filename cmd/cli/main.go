package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/cmd/cli/commands"
	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{Ctx: context.Background()}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Duty roster - generate monthly work/rest schedules",
		Long: `A CLI tool that assigns a work, rest or leave status to every active employee for
every day of a month, and reports every scheduling rule the result breaks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.GenerateYearCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.ImportSnapshotCmd(app))
	rootCmd.AddCommand(commands.ListRecordsCmd(app))
	rootCmd.AddCommand(commands.CheckSnapshotCmd(app))

	err := rootCmd.Execute()

	// PersistentPostRun is skipped when a command fails
	if closeErr := app.Close(); closeErr != nil && app.Logger != nil {
		app.Logger.Warn("Failed to close database", zap.Error(closeErr))
	}

	if err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and configuration. Stores and clients are opened by the commands that need them.
func initApp() error {
	var err error
	app.Env = env

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("database_driver", app.Cfg.Database.Driver),
		zap.String("rule_version", app.Cfg.RuleVersion))

	return nil
}
