package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnums_IsValid(t *testing.T) {
	assert.True(t, PersonParticipating.IsValid())
	assert.False(t, PersonStatus("retired").IsValid())

	assert.True(t, CapabilityAny.IsValid())
	assert.True(t, CapabilityBOnly.IsValid())
	assert.False(t, ShiftCapability("C").IsValid())

	assert.True(t, StrategyNone.IsValid())
	assert.True(t, StrategyEvenSplit.IsValid())
	assert.False(t, SplitStrategy("round_robin").IsValid())

	assert.True(t, StatusAdjustedRest.IsValid())
	assert.False(t, Status("holiday").IsValid())

	assert.True(t, AbsenceTraining.IsValid())
	assert.False(t, AbsenceType("").IsValid())

	assert.True(t, MustRest.IsValid())
	assert.False(t, PersonOverrideType("should_work").IsValid())

	assert.True(t, ForceWork.IsValid())
	assert.False(t, CalendarOverrideType("force").IsValid())

	assert.True(t, ScopePerson.IsValid())
	assert.False(t, Scope("team").IsValid())

	assert.True(t, SmallWeek.IsValid())
	assert.False(t, WeekType("").IsValid())
}

func TestWeekType_Opposite(t *testing.T) {
	assert.Equal(t, SmallWeek, BigWeek.Opposite())
	assert.Equal(t, BigWeek, SmallWeek.Opposite())
}

func TestAbsence_Covers(t *testing.T) {
	absence := Absence{Start: "2026-06-03", End: "2026-06-05"}

	assert.False(t, absence.Covers("2026-06-02"))
	assert.True(t, absence.Covers("2026-06-03"))
	assert.True(t, absence.Covers("2026-06-04"))
	assert.True(t, absence.Covers("2026-06-05"))
	assert.False(t, absence.Covers("2026-06-06"))
}

func TestCalendarOverride_LastDate(t *testing.T) {
	single := CalendarOverride{Date: "2026-10-01"}
	assert.Equal(t, "2026-10-01", single.LastDate())

	ranged := CalendarOverride{Date: "2026-10-01", EndDate: "2026-10-07"}
	assert.Equal(t, "2026-10-07", ranged.LastDate())
}

func TestCalendarOverride_AppliesTo(t *testing.T) {
	alice := Person{Name: "alice", Group: "Ops"}
	bob := Person{Name: "bob", Group: "Night"}

	all := CalendarOverride{Scope: ScopeAll}
	assert.True(t, all.AppliesTo(alice))
	assert.True(t, all.AppliesTo(bob))

	group := CalendarOverride{Scope: ScopeGroup, Target: "Ops"}
	assert.True(t, group.AppliesTo(alice))
	assert.False(t, group.AppliesTo(bob))

	person := CalendarOverride{Scope: ScopePerson, Target: "bob"}
	assert.False(t, person.AppliesTo(alice))
	assert.True(t, person.AppliesTo(bob))

	unknown := CalendarOverride{Scope: "team", Target: "Ops"}
	assert.False(t, unknown.AppliesTo(alice))
}

func TestPerson_IsParticipating(t *testing.T) {
	assert.True(t, Person{Status: PersonParticipating}.IsParticipating())
	assert.False(t, Person{Status: PersonNotParticipating}.IsParticipating())
	assert.False(t, Person{Status: PersonResigned}.IsParticipating())
}

func TestDefaultGlobalRules(t *testing.T) {
	rules := DefaultGlobalRules()
	assert.Equal(t, 5, rules.MinConsecutiveWorkDays)
	assert.Equal(t, 6, rules.MaxConsecutiveWorkDays)
	assert.True(t, rules.SmallWeekMustConsecutive)
}
