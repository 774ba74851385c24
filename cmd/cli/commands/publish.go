package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <month>",
		Short: "Publish a generated month to Google Sheets",
		Long:  "Publish a generated month to Google Sheets as a roster tab and a violations tab. Existing tabs for the month are overwritten.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := args[0]
			app.Logger.Debug("publish command", zap.String("month", month))

			database, err := app.Database()
			if err != nil {
				return err
			}
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.PublishSchedule(app.Ctx, database, client, app.Cfg, app.Logger, month)
			if err != nil {
				return err
			}

			fmt.Printf("\n✅ Schedule Published Successfully\n\n")
			fmt.Printf("Month:          %s\n", month)
			fmt.Printf("Sheet ID:       %s\n", app.Cfg.Publish.SpreadsheetID)
			fmt.Printf("Roster tab:     %s (%d persons)\n", result.ScheduleTab, result.Persons)
			fmt.Printf("Violations tab: %s (%d violations)\n\n", result.ViolationsTab, result.ViolationCount)

			return nil
		},
	}
}
