package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ListRecordsCmd creates the listRecords command
func ListRecordsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRecords [month]",
		Short: "List generation runs, optionally for one month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := ""
			if len(args) > 0 {
				month = args[0]
			}

			database, err := app.Database()
			if err != nil {
				return err
			}

			records, err := services.ListRecords(app.Ctx, database, app.Logger, month)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No generation records found.")
				return nil
			}

			fmt.Printf("\n%-36s  %-8s  %-20s  %-10s  %-15s  %-10s  %s\n",
				"ID", "Month", "Generated", "Rules", "Status", "Violations", "Operator")
			for _, r := range records {
				fmt.Printf("%-36s  %-8s  %-20s  %-10s  %-15s  %-10d  %s\n",
					r.ID, r.Month, r.GeneratedAt, r.RuleVersion, r.Status, r.ViolationCount, r.Operator)
			}
			fmt.Println()

			return nil
		},
	}
}
