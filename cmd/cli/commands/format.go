package commands

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// personLine is one person's month condensed to a code per day
type personLine struct {
	Person  string
	Group   string
	Codes   string
	Flagged int
}

// dayCode renders one assignment as a single character
func dayCode(a model.DailyAssignment) string {
	switch a.Status {
	case model.StatusWork:
		if a.Shift == "" {
			return "W"
		}
		return string(a.Shift)
	case model.StatusRest:
		return "-"
	case model.StatusLeave:
		return "L"
	case model.StatusAdjustedRest:
		return "R"
	}
	return "?"
}

// personLines groups assignments by person, keeping the order persons first appear in
func personLines(assignments []model.DailyAssignment) []personLine {
	index := make(map[string]int)
	var lines []personLine

	for _, a := range assignments {
		i, ok := index[a.Person]
		if !ok {
			i = len(lines)
			index[a.Person] = i
			lines = append(lines, personLine{Person: a.Person, Group: a.Group})
		}
		lines[i].Codes += dayCode(a)
		if a.IsViolation {
			lines[i].Flagged++
		}
	}

	return lines
}

// countViolations tallies violations by type
func countViolations(violations []model.Violation) map[model.ViolationType]int {
	counts := make(map[model.ViolationType]int)
	for _, v := range violations {
		counts[v.Type]++
	}
	return counts
}

func printMonth(month string, assignments []model.DailyAssignment, violations []model.Violation, showViolations bool) {
	lines := personLines(assignments)

	fmt.Printf("📅 %s\n\n", month)
	fmt.Printf("%-20s  %-12s  %s\n", "Person", "Group", "Days (A/B work, - rest, L leave, R adjusted rest)")
	fmt.Println("--------------------  ------------  -------------------------------")
	for _, line := range lines {
		flag := ""
		if line.Flagged > 0 {
			flag = fmt.Sprintf("  ⚠️  %d flagged", line.Flagged)
		}
		fmt.Printf("%-20s  %-12s  %s%s\n", line.Person, line.Group, line.Codes, flag)
	}
	fmt.Println()

	if len(violations) == 0 {
		fmt.Println("✅ No violations")
		fmt.Println()
		return
	}

	counts := countViolations(violations)
	fmt.Printf("⚠️  %d violations:\n", len(violations))
	for _, t := range []model.ViolationType{
		model.ViolationForbiddenRestDay,
		model.ViolationMaxConsecutiveWork,
		model.ViolationInsufficientCoverage,
		model.ViolationRequiredPersonAbsent,
	} {
		if counts[t] > 0 {
			fmt.Printf("  %-24s %d\n", t, counts[t])
		}
	}
	fmt.Println()

	if !showViolations {
		return
	}

	for _, v := range violations {
		who := v.Person
		if who == "" {
			who = v.Group
		}
		fmt.Printf("  %s  %-12s  %-24s  %s\n", v.Date, who, v.Type, v.Description)
	}
	fmt.Println()
}
