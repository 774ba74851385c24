package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	var baseWeek string
	var fromFile bool
	var showViolations bool

	cmd := &cobra.Command{
		Use:   "generate <month>",
		Short: "Generate the duty roster for a month (YYYY-MM)",
		Long: `Generate the duty roster for a month from the latest snapshot, store it and record the run.

The month's first week follows the configured parity anchor unless --base-week is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := args[0]

			baseWeekType := model.WeekType(baseWeek)
			if baseWeek != "" && !baseWeekType.IsValid() {
				return fmt.Errorf("--base-week must be big or small, got %q", baseWeek)
			}

			app.Logger.Debug("generate command",
				zap.String("month", month),
				zap.String("base_week", baseWeek),
				zap.Bool("from_file", fromFile))

			snapshots, err := app.SnapshotSource(fromFile, "")
			if err != nil {
				return err
			}
			database, err := app.Database()
			if err != nil {
				return err
			}

			result, err := services.GenerateSchedule(app.Ctx, snapshots, database, app.Cfg, app.Logger, month, baseWeekType)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Generated %s\n\n", month)
			fmt.Printf("Record ID:    %s\n", result.Record.ID)
			fmt.Printf("Status:       %s\n", result.Record.Status)
			fmt.Printf("Rule version: %s\n", result.Record.RuleVersion)
			fmt.Printf("Anchor:       %s (%s week)\n\n",
				result.Result.Anchor.Date.Format("2006-01-02"), result.Result.Anchor.Parity)

			printMonth(month, result.Result.Assignments, result.Result.Violations, showViolations)

			return nil
		},
	}

	cmd.Flags().StringVar(&baseWeek, "base-week", "", "Week type of the month's first week (big or small)")
	cmd.Flags().BoolVar(&fromFile, "from-file", false, "Read the snapshot from the configured snapshot file instead of the database")
	cmd.Flags().BoolVarP(&showViolations, "violations", "v", false, "List every violation")

	return cmd
}

// GenerateYearCmd creates the generateYear command
func GenerateYearCmd(app *AppContext) *cobra.Command {
	var fromFile bool

	cmd := &cobra.Command{
		Use:   "generateYear <year>",
		Short: "Generate and store every month of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}

			app.Logger.Debug("generateYear command", zap.Int("year", year), zap.Bool("from_file", fromFile))

			snapshots, err := app.SnapshotSource(fromFile, "")
			if err != nil {
				return err
			}
			database, err := app.Database()
			if err != nil {
				return err
			}

			result, err := services.GenerateYear(app.Ctx, snapshots, database, app.Cfg, app.Logger, year)
			if err != nil {
				return err
			}

			continuity := "re-anchored each month"
			if app.Cfg.Parity.Continuity {
				continuity = "carried across months"
			}

			fmt.Printf("\n✓ Generated %d (parity %s)\n\n", year, continuity)
			fmt.Printf("%-8s  %-10s  %-15s  %s\n", "Month", "First week", "Status", "Violations")
			fmt.Println("--------  ----------  ---------------  ----------")
			for i, r := range result.Results {
				first, err := roster.ParseMonth(r.Month)
				if err != nil {
					return err
				}
				fmt.Printf("%-8s  %-10s  %-15s  %d\n", r.Month, r.Anchor.WeekTypeOf(first), result.Records[i].Status, len(r.Violations))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().BoolVar(&fromFile, "from-file", false, "Read the snapshot from the configured snapshot file instead of the database")

	return cmd
}
