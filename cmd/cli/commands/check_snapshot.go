package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// CheckSnapshotCmd creates the checkSnapshot command
func CheckSnapshotCmd(app *AppContext) *cobra.Command {
	var fromFile bool
	var path string

	cmd := &cobra.Command{
		Use:   "checkSnapshot",
		Short: "Validate the latest snapshot and summarise it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := app.SnapshotSource(fromFile, path)
			if err != nil {
				return err
			}

			summary, err := services.CheckSnapshot(app.Ctx, snapshots, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Snapshot is valid\n\n")
			fmt.Printf("Persons:            %d (%d active)\n", summary.Persons, summary.ActivePersons)
			fmt.Printf("Absences:           %d\n", summary.Absences)
			fmt.Printf("Person overrides:   %d\n", summary.PersonOverrides)
			fmt.Printf("Calendar overrides: %d\n", summary.CalendarOverrides)
			fmt.Printf("Special dates:      %d\n\n", summary.SpecialDateRules)

			fmt.Printf("%-16s  %-8s  %-8s  %-8s  %s\n", "Group", "Enabled", "Members", "Active", "Min on duty")
			for _, g := range summary.Groups {
				fmt.Printf("%-16s  %-8t  %-8d  %-8d  %d\n", g.Name, g.Enabled, g.Members, g.Active, g.MinOnDuty)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().BoolVar(&fromFile, "from-file", false, "Check the configured snapshot file instead of the database")
	cmd.Flags().StringVar(&path, "file", "", "Check the snapshot file at this path")

	return cmd
}
