package roster

import (
	"cmp"
	"slices"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

type personDate struct {
	person string
	date   string
}

type groupDate struct {
	group string
	date  string
}

// ruleIndex holds keyed views over the snapshot's override tables.
// Each view keeps the first matching record so lookups agree with a linear
// first-match scan over the original lists.
type ruleIndex struct {
	personOverrides map[personDate]model.PersonOverride

	// hard-unavailable absences per person, in input order
	absences map[string][]model.Absence

	// calendar overrides per date, highest priority first, ties in input order
	calendar map[string][]model.CalendarOverride

	specialDates map[groupDate]model.SpecialDateRule

	forbiddenRest map[time.Weekday]bool
}

// buildIndex indexes the snapshot for the given month. The snapshot is only read.
func buildIndex(snapshot *model.Snapshot, days []Day) *ruleIndex {
	idx := &ruleIndex{
		personOverrides: make(map[personDate]model.PersonOverride),
		absences:        make(map[string][]model.Absence),
		calendar:        make(map[string][]model.CalendarOverride),
		specialDates:    make(map[groupDate]model.SpecialDateRule),
		forbiddenRest:   make(map[time.Weekday]bool),
	}

	for _, override := range snapshot.PersonOverrides {
		key := personDate{person: override.Person, date: override.Date}
		if _, exists := idx.personOverrides[key]; !exists {
			idx.personOverrides[key] = override
		}
	}

	for _, absence := range snapshot.Absences {
		if !absence.HardUnavailable {
			continue
		}
		idx.absences[absence.Person] = append(idx.absences[absence.Person], absence)
	}

	// Sort a copy so the caller's slice is left untouched
	overrides := slices.Clone(snapshot.CalendarOverrides)
	slices.SortStableFunc(overrides, func(a, b model.CalendarOverride) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	for _, override := range overrides {
		for _, day := range days {
			if day.Date < override.Date || day.Date > override.LastDate() {
				continue
			}
			idx.calendar[day.Date] = append(idx.calendar[day.Date], override)
		}
	}

	for _, rule := range snapshot.SpecialDateRules {
		key := groupDate{group: rule.Group, date: rule.Date}
		if _, exists := idx.specialDates[key]; !exists {
			idx.specialDates[key] = rule
		}
	}

	// Labels were checked by ValidateSnapshot
	for _, label := range snapshot.Rules.ForbiddenRestDays {
		if wd, err := ParseWeekday(label); err == nil {
			idx.forbiddenRest[wd] = true
		}
	}

	return idx
}

func (idx *ruleIndex) personOverride(person, date string) (model.PersonOverride, bool) {
	override, ok := idx.personOverrides[personDate{person: person, date: date}]
	return override, ok
}

func (idx *ruleIndex) hardAbsence(person, date string) (model.Absence, bool) {
	for _, absence := range idx.absences[person] {
		if absence.Covers(date) {
			return absence, true
		}
	}
	return model.Absence{}, false
}

func (idx *ruleIndex) calendarOverride(person model.Person, date string) (model.CalendarOverride, bool) {
	for _, override := range idx.calendar[date] {
		if override.AppliesTo(person) {
			return override, true
		}
	}
	return model.CalendarOverride{}, false
}

func (idx *ruleIndex) specialDate(group, date string) (model.SpecialDateRule, bool) {
	rule, ok := idx.specialDates[groupDate{group: group, date: date}]
	return rule, ok
}
