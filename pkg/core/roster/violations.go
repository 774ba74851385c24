package roster

import (
	"slices"
	"strings"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

const reasonSeparator = "; "

// Aggregator collects violation records for one month
type Aggregator struct {
	month      string
	violations []model.Violation
}

// NewAggregator creates an empty aggregator for the month
func NewAggregator(month string) *Aggregator {
	return &Aggregator{
		month:      month,
		violations: []model.Violation{},
	}
}

// Person records a violation against a single person and flags their assignment
func (a *Aggregator) Person(assignment *model.DailyAssignment, violationType model.ViolationType, description string) {
	flagAssignment(assignment, description)
	a.violations = append(a.violations, model.Violation{
		Month:       a.month,
		Date:        assignment.Date,
		Person:      assignment.Person,
		Type:        violationType,
		Description: description,
	})
}

// Group records a group-level violation. Assignments are flagged by the caller,
// since the reason shown on each day differs from the group description.
func (a *Aggregator) Group(date, group string, violationType model.ViolationType, description string) {
	a.violations = append(a.violations, model.Violation{
		Month:       a.month,
		Date:        date,
		Group:       group,
		Type:        violationType,
		Description: description,
	})
}

// Merge appends violations that were collected elsewhere, keeping their order
func (a *Aggregator) Merge(violations []model.Violation) {
	a.violations = append(a.violations, violations...)
}

// Violations returns everything collected so far
func (a *Aggregator) Violations() []model.Violation {
	return a.violations
}

// flagAssignment marks the assignment as violating. Earlier reasons are kept so
// every flagged cause stays visible on the day.
func flagAssignment(assignment *model.DailyAssignment, reason string) {
	assignment.IsViolation = true
	if assignment.ViolationReason == "" {
		assignment.ViolationReason = reason
		return
	}
	if slices.Contains(strings.Split(assignment.ViolationReason, reasonSeparator), reason) {
		return
	}
	assignment.ViolationReason += reasonSeparator + reason
}
