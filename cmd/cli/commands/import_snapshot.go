package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ImportSnapshotCmd creates the importSnapshot command
func ImportSnapshotCmd(app *AppContext) *cobra.Command {
	var staffSheet bool

	cmd := &cobra.Command{
		Use:   "importSnapshot [path]",
		Short: "Store a snapshot file in the database as the latest snapshot",
		Long: `Store a snapshot file in the database as the latest snapshot.

Defaults to the configured snapshotFile. With --staff-sheet the persons are read
from the configured staff sheet instead of the file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.Cfg.SnapshotFile
			if len(args) > 0 {
				path = args[0]
			}

			app.Logger.Debug("importSnapshot command", zap.String("path", path), zap.Bool("staff_sheet", staffSheet))

			if staffSheet && app.Cfg.StaffSheet == nil {
				return fmt.Errorf("--staff-sheet needs staffSheet to be configured")
			}

			source, err := app.SnapshotSource(true, path)
			if err != nil {
				return err
			}
			database, err := app.Database()
			if err != nil {
				return err
			}

			var staffClient services.StaffClient
			if staffSheet {
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				staffClient = client
			}

			result, err := services.ImportSnapshot(app.Ctx, source, database, staffClient, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Snapshot imported\n\n")
			fmt.Printf("Version:  %d\n", result.ID)
			fmt.Printf("Groups:   %d\n", len(result.Snapshot.Groups))
			fmt.Printf("Persons:  %d\n", len(result.Snapshot.Persons))
			fmt.Printf("Absences: %d\n\n", len(result.Snapshot.Absences))

			return nil
		},
	}

	cmd.Flags().BoolVar(&staffSheet, "staff-sheet", false, "Replace persons with the configured Google Sheets staff list")

	return cmd
}
