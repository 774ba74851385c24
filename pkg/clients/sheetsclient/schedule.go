package sheetsclient

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// PublishResult names the tabs a month was written to
type PublishResult struct {
	ScheduleTab    string
	ViolationsTab  string
	Persons        int
	ViolationCount int
}

// PublishSchedule writes a generated month as a person by date grid plus a violations list.
// Both tabs are overwritten when the month is published again.
func (c *Client) PublishSchedule(spreadsheetID string, schedule *db.Schedule) (*PublishResult, error) {
	grid, err := BuildScheduleGrid(schedule)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{
		ScheduleTab:    scheduleTabTitle(schedule.Month),
		ViolationsTab:  violationsTabTitle(schedule.Month),
		Persons:        len(grid) - 1 - len(groupsOf(schedule)),
		ViolationCount: len(schedule.Violations),
	}

	tabs, err := c.existingTabs(spreadsheetID)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Writing schedule tab", zap.String("tab", result.ScheduleTab), zap.Int("rows", len(grid)))
	if err := c.writeTab(spreadsheetID, result.ScheduleTab, grid, tabs); err != nil {
		return nil, err
	}

	c.logger.Debug("Writing violations tab", zap.String("tab", result.ViolationsTab), zap.Int("violations", result.ViolationCount))
	if err := c.writeTab(spreadsheetID, result.ViolationsTab, BuildViolationRows(schedule), tabs); err != nil {
		return nil, err
	}

	return result, nil
}

func scheduleTabTitle(month string) string {
	return "Roster " + month
}

func violationsTabTitle(month string) string {
	return "Violations " + month
}

// BuildScheduleGrid lays out a month with one row per person and one column per date.
// Persons keep the order they were generated in. Each group gets a trailing row
// counting how many of its members work each day.
func BuildScheduleGrid(schedule *db.Schedule) ([][]interface{}, error) {
	dates, err := monthDates(schedule.Month)
	if err != nil {
		return nil, err
	}

	column := make(map[string]int, len(dates))
	header := []interface{}{"Person", "Group"}
	for i, d := range dates {
		column[d.Format("2006-01-02")] = i + 2
		header = append(header, d.Format("Mon 02"))
	}

	rows := [][]interface{}{header}
	personRow := make(map[string]int)
	onDuty := make(map[string][]int)

	for _, a := range schedule.Assignments {
		col, ok := column[a.Date]
		if !ok {
			return nil, fmt.Errorf("assignment for %s on %s is outside %s", a.Person, a.Date, schedule.Month)
		}

		idx, ok := personRow[a.Person]
		if !ok {
			row := make([]interface{}, len(header))
			row[0], row[1] = a.Person, a.Group
			for i := 2; i < len(row); i++ {
				row[i] = ""
			}
			rows = append(rows, row)
			idx = len(rows) - 1
			personRow[a.Person] = idx
		}
		rows[idx][col] = cellFor(a)

		if a.Status == model.StatusWork {
			if onDuty[a.Group] == nil {
				onDuty[a.Group] = make([]int, len(dates))
			}
			onDuty[a.Group][col-2]++
		}
	}

	for _, group := range groupsOf(schedule) {
		row := []interface{}{"On duty", group}
		counts := onDuty[group]
		for i := range dates {
			if counts == nil {
				row = append(row, 0)
				continue
			}
			row = append(row, counts[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// BuildViolationRows lists every violation of the month under a header row
func BuildViolationRows(schedule *db.Schedule) [][]interface{} {
	rows := [][]interface{}{{"Date", "Type", "Person", "Group", "Description"}}
	for _, v := range schedule.Violations {
		rows = append(rows, []interface{}{v.Date, string(v.Type), v.Person, v.Group, v.Description})
	}
	return rows
}

// cellFor renders one assignment. Flagged cells carry a trailing "!".
func cellFor(a model.DailyAssignment) string {
	var cell string
	switch a.Status {
	case model.StatusWork:
		cell = string(a.Shift)
		if cell == "" {
			cell = "W"
		}
	case model.StatusRest:
		cell = "Rest"
	case model.StatusLeave:
		cell = "Leave"
	case model.StatusAdjustedRest:
		cell = "Adj rest"
	default:
		cell = string(a.Status)
	}

	if a.IsViolation {
		cell += "!"
	}
	return cell
}

// groupsOf returns the groups appearing in the schedule in first-seen order
func groupsOf(schedule *db.Schedule) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, a := range schedule.Assignments {
		if !seen[a.Group] {
			seen[a.Group] = true
			groups = append(groups, a.Group)
		}
	}
	return groups
}

func monthDates(month string) ([]time.Time, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	var dates []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}
