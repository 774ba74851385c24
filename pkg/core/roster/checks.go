package roster

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// MonthState is the materialised month handed to post-pass checks.
// Checks may flag assignments but never change a status.
type MonthState struct {
	Month  string
	Days   []Day
	Anchor ParityAnchor

	// Groups are the enabled groups, in snapshot order
	Groups []model.Group

	// Members maps a group name to the indices of its persons in Persons
	Members map[string][]int

	// Persons are the active persons, in snapshot order
	Persons []model.Person

	// Assignments[i][d] is person i's assignment on Days[d]
	Assignments [][]model.DailyAssignment

	index *ruleIndex
}

// onDuty counts members of the group working on the day
func (s *MonthState) onDuty(group string, dayIdx int) int {
	count := 0
	for _, personIdx := range s.Members[group] {
		if s.Assignments[personIdx][dayIdx].Status == model.StatusWork {
			count++
		}
	}
	return count
}

// MonthCheck is a rule evaluated once every person's month has been decided
type MonthCheck interface {
	Name() string
	Check(state *MonthState, agg *Aggregator)
}

// CoverageCheck compares each enabled group's on-duty headcount with its minimum.
//
// A day the group rests by the week parity default is exempt, whatever the
// headcount. Otherwise a shortfall raises one group-level violation and flags
// every member of the group on that day.
//
// Days carrying a special date rule for the group are left to SpecialDateCheck.
type CoverageCheck struct{}

func (c *CoverageCheck) Name() string {
	return "Coverage"
}

func (c *CoverageCheck) Check(state *MonthState, agg *Aggregator) {
	for dayIdx, day := range state.Days {
		weekType := state.Anchor.WeekTypeOf(day.Time)
		if IsNormalRestDay(weekType, day.Weekday) {
			continue
		}

		for _, group := range state.Groups {
			if _, special := state.index.specialDate(group.Name, day.Date); special {
				continue
			}

			onDuty := state.onDuty(group.Name, dayIdx)
			if onDuty >= group.MinOnDuty {
				continue
			}

			reportShortfall(state, agg, group.Name, dayIdx, onDuty, group.MinOnDuty, "")
		}
	}
}

// SpecialDateCheck enforces date-specific staffing rules.
//
// The rule's minimum replaces the group minimum and applies even on a normal
// rest day. Each required person who is not working raises a person-level
// violation.
type SpecialDateCheck struct{}

func (c *SpecialDateCheck) Name() string {
	return "SpecialDate"
}

func (c *SpecialDateCheck) Check(state *MonthState, agg *Aggregator) {
	for dayIdx, day := range state.Days {
		for _, group := range state.Groups {
			rule, ok := state.index.specialDate(group.Name, day.Date)
			if !ok {
				continue
			}

			onDuty := state.onDuty(group.Name, dayIdx)
			if onDuty < rule.MinOnDuty {
				reportShortfall(state, agg, group.Name, dayIdx, onDuty, rule.MinOnDuty, rule.Label)
			}

			for _, name := range rule.RequiredPersons {
				for _, personIdx := range state.Members[group.Name] {
					if state.Persons[personIdx].Name != name {
						continue
					}
					assignment := &state.Assignments[personIdx][dayIdx]
					if assignment.Status == model.StatusWork {
						continue
					}
					agg.Person(assignment, model.ViolationRequiredPersonAbsent,
						fmt.Sprintf("required person absent: %s must be on duty (%s)", name, labelOr(rule.Label, day.Date)))
				}
			}
		}
	}
}

func reportShortfall(state *MonthState, agg *Aggregator, group string, dayIdx, onDuty, minimum int, label string) {
	day := state.Days[dayIdx]

	description := fmt.Sprintf("on duty %d, below minimum %d", onDuty, minimum)
	if label != "" {
		description = fmt.Sprintf("%s (%s)", description, label)
	}
	agg.Group(day.Date, group, model.ViolationInsufficientCoverage, description)

	reason := fmt.Sprintf("insufficient coverage: short %d", minimum-onDuty)
	for _, personIdx := range state.Members[group] {
		flagAssignment(&state.Assignments[personIdx][dayIdx], reason)
	}
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
