package roster

import (
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Layer identifies which rule in the override chain decided a status
type Layer int

const (
	LayerPersonOverride Layer = iota + 1
	LayerAbsence
	LayerCalendarOverride
	LayerWeekParity
)

func (l Layer) String() string {
	switch l {
	case LayerPersonOverride:
		return "person_override"
	case LayerAbsence:
		return "absence"
	case LayerCalendarOverride:
		return "calendar_override"
	case LayerWeekParity:
		return "week_parity"
	}
	return "unknown"
}

// Decision is the resolved status of one person on one day
type Decision struct {
	Status model.Status
	Layer  Layer

	// Violation is set when the decided status itself breaks a rule
	Violation model.ViolationType
	Reason    string
}

// statusResolver applies the override chain for (person, date) pairs
type statusResolver struct {
	index  *ruleIndex
	anchor ParityAnchor
}

// Resolve walks the chain and returns the first layer that matches:
//  1. person override
//  2. hard-unavailable absence
//  3. calendar override whose scope includes the person
//  4. week parity default
//
// Lower layers are never consulted once a higher one has matched.
func (r *statusResolver) Resolve(person model.Person, day Day) Decision {
	if override, ok := r.index.personOverride(person.Name, day.Date); ok {
		if override.Type == model.MustWork {
			return Decision{Status: model.StatusWork, Layer: LayerPersonOverride}
		}
		return Decision{Status: model.StatusRest, Layer: LayerPersonOverride}
	}

	if absence, ok := r.index.hardAbsence(person.Name, day.Date); ok {
		if absence.CountAsRest {
			return Decision{Status: model.StatusRest, Layer: LayerAbsence}
		}
		return Decision{Status: model.StatusLeave, Layer: LayerAbsence}
	}

	if override, ok := r.index.calendarOverride(person, day.Date); ok {
		if override.Type == model.ForceWork {
			return Decision{Status: model.StatusWork, Layer: LayerCalendarOverride}
		}
		return Decision{Status: model.StatusAdjustedRest, Layer: LayerCalendarOverride}
	}

	weekType := r.anchor.WeekTypeOf(day.Time)
	if !IsNormalRestDay(weekType, day.Weekday) {
		return Decision{Status: model.StatusWork, Layer: LayerWeekParity}
	}

	decision := Decision{Status: model.StatusRest, Layer: LayerWeekParity}
	if r.index.forbiddenRest[day.Weekday] {
		// Reported, not corrected: the person still rests
		decision.Violation = model.ViolationForbiddenRestDay
		decision.Reason = fmt.Sprintf("forbidden rest day: %s is not allowed as a rest day", day.Label)
	}

	return decision
}
