package roster

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Options configures a single month's generation
type Options struct {
	// Anchor is the fixed parity anchor used when nothing more specific applies
	Anchor ParityAnchor

	// BaseWeekType, when set, fixes the type of the month's first week
	BaseWeekType model.WeekType

	// HonorRotationConfig lets the month's WeekRotationConfig decide its first week
	HonorRotationConfig bool

	// Workers bounds how many persons are scheduled in parallel (defaults to GOMAXPROCS)
	Workers int

	// Checks run after every person is scheduled (defaults to DefaultChecks)
	Checks []MonthCheck
}

// DefaultChecks returns the post-pass checks applied to every month
func DefaultChecks() []MonthCheck {
	return []MonthCheck{
		&CoverageCheck{},
		&SpecialDateCheck{},
	}
}

// Result is the outcome of generating one month
type Result struct {
	Month  string
	Anchor ParityAnchor

	// Assignments are ordered by person (snapshot order) then by date
	Assignments []model.DailyAssignment

	// Violations hold person-level violations first (person then date order),
	// followed by those raised by the post-pass checks
	Violations []model.Violation
}

// Status summarises whether the month is compliant
func (r *Result) Status() model.GenerationStatus {
	if len(r.Violations) == 0 {
		return model.GenerationCompliant
	}
	return model.GenerationHasViolations
}

// AssignmentsFor returns one person's month in date order
func (r *Result) AssignmentsFor(person string) []model.DailyAssignment {
	var assignments []model.DailyAssignment
	for _, assignment := range r.Assignments {
		if assignment.Person == person {
			assignments = append(assignments, assignment)
		}
	}
	return assignments
}

// Generate assigns a status to every active person for every day of month.
//
// The snapshot is validated first; invalid input returns an error wrapping
// ErrInvalidInput and no result. Past validation the run always completes,
// reporting rule breaches as violations rather than errors.
func Generate(month string, snapshot *model.Snapshot, opts Options) (*Result, error) {
	days, err := EnumerateMonth(month)
	if err != nil {
		return nil, err
	}

	if err := ValidateSnapshot(snapshot); err != nil {
		return nil, err
	}

	anchor, err := ResolveAnchor(month, snapshot, opts)
	if err != nil {
		return nil, err
	}

	state := newMonthState(month, days, anchor, snapshot)

	// Shifts are decided per group, before any day is resolved
	shifts := make(map[string]model.Shift, len(state.Persons))
	for _, group := range state.Groups {
		members := make([]model.Person, 0, len(state.Members[group.Name]))
		for _, personIdx := range state.Members[group.Name] {
			members = append(members, state.Persons[personIdx])
		}
		groupShifts, err := AllocateShifts(group, members)
		if err != nil {
			return nil, err
		}
		AlternateForMonth(groupShifts, group, members, days[0].Time.Month())
		for name, shift := range groupShifts {
			shifts[name] = shift
		}
	}

	resolver := &statusResolver{index: state.index, anchor: anchor}
	personViolations := make([][]model.Violation, len(state.Persons))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Each worker owns its person's slots, so no locking is needed
	var g errgroup.Group
	g.SetLimit(workers)
	for i, person := range state.Persons {
		g.Go(func() error {
			state.Assignments[i], personViolations[i] = schedulePerson(
				month, person, shifts[person.Name], days, resolver, snapshot.Rules.MaxConsecutiveWorkDays)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := NewAggregator(month)
	for _, violations := range personViolations {
		agg.Merge(violations)
	}

	checks := opts.Checks
	if checks == nil {
		checks = DefaultChecks()
	}
	for _, check := range checks {
		check.Check(state, agg)
	}

	assignments := make([]model.DailyAssignment, 0, len(state.Persons)*len(days))
	for _, personAssignments := range state.Assignments {
		assignments = append(assignments, personAssignments...)
	}

	return &Result{
		Month:       month,
		Anchor:      anchor,
		Assignments: assignments,
		Violations:  agg.Violations(),
	}, nil
}

// schedulePerson resolves one person's month in date order
func schedulePerson(
	month string,
	person model.Person,
	shift model.Shift,
	days []Day,
	resolver *statusResolver,
	maxConsecutive int,
) ([]model.DailyAssignment, []model.Violation) {
	agg := NewAggregator(month)
	streak := NewStreakTracker(maxConsecutive)
	assignments := make([]model.DailyAssignment, len(days))

	for d, day := range days {
		decision := resolver.Resolve(person, day)

		assignment := &assignments[d]
		*assignment = model.DailyAssignment{
			Person:  person.Name,
			Group:   person.Group,
			Date:    day.Date,
			Weekday: day.Label,
			Status:  decision.Status,
		}
		if decision.Status == model.StatusWork {
			assignment.Shift = shift
		}

		if decision.Violation != "" {
			agg.Person(assignment, decision.Violation, decision.Reason)
		}

		count, exceeded := streak.Observe(decision.Status)
		if exceeded {
			agg.Person(assignment, model.ViolationMaxConsecutiveWork,
				fmt.Sprintf("max consecutive work days exceeded: worked %d days in a row, max is %d", count, maxConsecutive))
		}
	}

	return assignments, agg.Violations()
}

// newMonthState selects the active persons and enabled groups for the month
func newMonthState(month string, days []Day, anchor ParityAnchor, snapshot *model.Snapshot) *MonthState {
	enabled := make(map[string]bool, len(snapshot.Groups))
	state := &MonthState{
		Month:   month,
		Days:    days,
		Anchor:  anchor,
		Members: make(map[string][]int),
		index:   buildIndex(snapshot, days),
	}

	for _, group := range snapshot.Groups {
		if !group.Enabled {
			continue
		}
		enabled[group.Name] = true
		state.Groups = append(state.Groups, group)
	}

	for _, person := range snapshot.Persons {
		if !person.IsParticipating() || !enabled[person.Group] {
			continue
		}
		state.Members[person.Group] = append(state.Members[person.Group], len(state.Persons))
		state.Persons = append(state.Persons, person)
	}

	state.Assignments = make([][]model.DailyAssignment, len(state.Persons))

	return state
}
