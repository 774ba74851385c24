package roster

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ErrInvalidInput is returned when a snapshot or month cannot be generated from.
// Rule violations are never reported through this error.
var ErrInvalidInput = errors.New("invalid input")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateSnapshot checks that a snapshot is well formed before generation.
// All checks run up front so a run never produces partial results.
func ValidateSnapshot(snapshot *model.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot is nil", ErrInvalidInput)
	}

	if err := validate.Struct(snapshot); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	groups := make(map[string]bool, len(snapshot.Groups))
	for _, group := range snapshot.Groups {
		if groups[group.Name] {
			return fmt.Errorf("%w: duplicate group %q", ErrInvalidInput, group.Name)
		}
		groups[group.Name] = true

		if !group.Strategy.IsValid() {
			return fmt.Errorf("%w: group %q has unknown strategy %q", ErrInvalidInput, group.Name, group.Strategy)
		}
		if group.OddRatio != "" {
			if _, _, err := ParseOddRatio(group.OddRatio); err != nil {
				return fmt.Errorf("group %q: %w", group.Name, err)
			}
		}
	}

	persons := make(map[string]bool, len(snapshot.Persons))
	for _, person := range snapshot.Persons {
		if persons[person.Name] {
			return fmt.Errorf("%w: duplicate person %q", ErrInvalidInput, person.Name)
		}
		persons[person.Name] = true

		if !groups[person.Group] {
			return fmt.Errorf("%w: person %q belongs to unknown group %q", ErrInvalidInput, person.Name, person.Group)
		}
		if !person.Status.IsValid() {
			return fmt.Errorf("%w: person %q has unknown status %q", ErrInvalidInput, person.Name, person.Status)
		}
		if !person.ShiftCapability.IsValid() {
			return fmt.Errorf("%w: person %q has unknown shift capability %q", ErrInvalidInput, person.Name, person.ShiftCapability)
		}
	}

	for i, absence := range snapshot.Absences {
		if !absence.Type.IsValid() {
			return fmt.Errorf("%w: absences[%d] has unknown type %q", ErrInvalidInput, i, absence.Type)
		}
		if absence.End < absence.Start {
			return fmt.Errorf("%w: absences[%d] ends before it starts", ErrInvalidInput, i)
		}
	}

	for i, override := range snapshot.PersonOverrides {
		if !override.Type.IsValid() {
			return fmt.Errorf("%w: personOverrides[%d] has unknown type %q", ErrInvalidInput, i, override.Type)
		}
	}

	for i, override := range snapshot.CalendarOverrides {
		if !override.Type.IsValid() {
			return fmt.Errorf("%w: calendarOverrides[%d] has unknown type %q", ErrInvalidInput, i, override.Type)
		}
		if !override.Scope.IsValid() {
			return fmt.Errorf("%w: calendarOverrides[%d] has unknown scope %q", ErrInvalidInput, i, override.Scope)
		}
		if override.LastDate() < override.Date {
			return fmt.Errorf("%w: calendarOverrides[%d] ends before it starts", ErrInvalidInput, i)
		}
	}

	for i, cfg := range snapshot.WeekRotationConfigs {
		if !cfg.FirstWeekType.IsValid() {
			return fmt.Errorf("%w: weekRotationConfigs[%d] has unknown week type %q", ErrInvalidInput, i, cfg.FirstWeekType)
		}
	}

	return validateRules(snapshot.Rules)
}

func validateRules(rules model.GlobalRules) error {
	if rules.MinConsecutiveWorkDays > rules.MaxConsecutiveWorkDays {
		return fmt.Errorf("%w: min consecutive work days (%d) exceeds max (%d)",
			ErrInvalidInput, rules.MinConsecutiveWorkDays, rules.MaxConsecutiveWorkDays)
	}

	forbidden := make(map[string]bool)
	for _, label := range rules.ForbiddenRestDays {
		wd, err := ParseWeekday(label)
		if err != nil {
			return fmt.Errorf("%w: forbidden rest days: %v", ErrInvalidInput, err)
		}
		forbidden[WeekdayLabel(wd)] = true
	}

	for _, label := range rules.AllowedRestDays {
		wd, err := ParseWeekday(label)
		if err != nil {
			return fmt.Errorf("%w: allowed rest days: %v", ErrInvalidInput, err)
		}
		if forbidden[WeekdayLabel(wd)] {
			return fmt.Errorf("%w: %s is both an allowed and a forbidden rest day", ErrInvalidInput, WeekdayLabel(wd))
		}
	}

	return nil
}
