package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Column names expected in the staff sheet header row
const (
	columnName            = "Name"
	columnGroup           = "Group"
	columnShiftCapability = "Shift capability"
	columnStatus          = "Status"
)

var requiredPersonColumns = []string{columnName, columnGroup, columnStatus}

// ListPersons reads the staff list from a tab of the given spreadsheet
func (c *Client) ListPersons(spreadsheetID, tab string) ([]model.Person, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, tab).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get staff data: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("staff sheet is empty")
	}

	persons, err := parsePersons(resp.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse staff sheet: %w", err)
	}

	return persons, nil
}

// parsePersons converts raw sheet rows into persons, keeping sheet order.
// Sheet order matters: it is the order shifts are split in.
func parsePersons(raw [][]interface{}) ([]model.Person, error) {
	header := raw[0]
	indexes := make(map[string]int, len(header))
	for i, cell := range header {
		if str, ok := cell.(string); ok {
			indexes[strings.TrimSpace(str)] = i
		}
	}

	for _, column := range requiredPersonColumns {
		if _, ok := indexes[column]; !ok {
			return nil, fmt.Errorf("missing required column in header: %s", column)
		}
	}

	getField := func(column string, row []interface{}) string {
		index, ok := indexes[column]
		if !ok || index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return strings.TrimSpace(str)
		}
		return ""
	}

	persons := make([]model.Person, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		name := getField(columnName, row)
		if name == "" {
			continue
		}

		status := model.PersonStatus(strings.ToLower(getField(columnStatus, row)))
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid status %q for %s in row %d", status, name, i+1)
		}

		capability := model.ShiftCapability(strings.ToUpper(getField(columnShiftCapability, row)))
		if !capability.IsValid() {
			return nil, fmt.Errorf("invalid shift capability %q for %s in row %d", capability, name, i+1)
		}

		persons = append(persons, model.Person{
			Name:            name,
			Group:           getField(columnGroup, row),
			ShiftCapability: capability,
			Status:          status,
		})
	}

	return persons, nil
}
