package model

// PersonStatus describes whether a person takes part in scheduling
type PersonStatus string

const (
	PersonParticipating    PersonStatus = "participating"
	PersonNotParticipating PersonStatus = "not_participating"
	PersonResigned         PersonStatus = "resigned"
)

func (s PersonStatus) IsValid() bool {
	return s == PersonParticipating || s == PersonNotParticipating || s == PersonResigned
}

// Shift is the nominal A/B shift a working person is assigned to
type Shift string

const (
	ShiftA Shift = "A"
	ShiftB Shift = "B"
)

// ShiftCapability restricts which shift a person can be given.
// The zero value means unconstrained.
type ShiftCapability string

const (
	CapabilityAny   ShiftCapability = ""
	CapabilityAOnly ShiftCapability = "A"
	CapabilityBOnly ShiftCapability = "B"
)

func (c ShiftCapability) IsValid() bool {
	return c == CapabilityAny || c == CapabilityAOnly || c == CapabilityBOnly
}

// SplitStrategy controls how a group divides its members between shifts
type SplitStrategy string

const (
	StrategyNone      SplitStrategy = ""
	StrategyEvenSplit SplitStrategy = "even_split"
)

func (s SplitStrategy) IsValid() bool {
	return s == StrategyNone || s == StrategyEvenSplit
}

// Status is the outcome of a single (person, date) decision
type Status string

const (
	StatusWork         Status = "work"
	StatusRest         Status = "rest"
	StatusLeave        Status = "leave"
	StatusAdjustedRest Status = "adjusted_rest"
)

func (s Status) IsValid() bool {
	return s == StatusWork || s == StatusRest || s == StatusLeave || s == StatusAdjustedRest
}

// AbsenceType records why a person is away
type AbsenceType string

const (
	AbsenceLeave        AbsenceType = "leave"
	AbsenceSick         AbsenceType = "sick"
	AbsenceBusinessTrip AbsenceType = "business_trip"
	AbsenceTraining     AbsenceType = "training"
)

func (t AbsenceType) IsValid() bool {
	switch t {
	case AbsenceLeave, AbsenceSick, AbsenceBusinessTrip, AbsenceTraining:
		return true
	}
	return false
}

// PersonOverrideType locks a person to work or rest on a given date
type PersonOverrideType string

const (
	MustWork PersonOverrideType = "must_work"
	MustRest PersonOverrideType = "must_rest"
)

func (t PersonOverrideType) IsValid() bool {
	return t == MustWork || t == MustRest
}

// CalendarOverrideType forces a whole scope to work or rest on a date
type CalendarOverrideType string

const (
	ForceWork CalendarOverrideType = "force_work"
	ForceRest CalendarOverrideType = "force_rest"
)

func (t CalendarOverrideType) IsValid() bool {
	return t == ForceWork || t == ForceRest
}

// Scope selects who a calendar override applies to
type Scope string

const (
	ScopeAll    Scope = "all"
	ScopeGroup  Scope = "group"
	ScopePerson Scope = "person"
)

func (s Scope) IsValid() bool {
	return s == ScopeAll || s == ScopeGroup || s == ScopePerson
}

// WeekType is the parity of a Monday-starting week
type WeekType string

const (
	BigWeek   WeekType = "big"
	SmallWeek WeekType = "small"
)

func (w WeekType) IsValid() bool {
	return w == BigWeek || w == SmallWeek
}

// Opposite returns the other week type
func (w WeekType) Opposite() WeekType {
	if w == BigWeek {
		return SmallWeek
	}
	return BigWeek
}

// ViolationType tags the rule a violation record was raised for
type ViolationType string

const (
	ViolationForbiddenRestDay     ViolationType = "forbidden_rest_day"
	ViolationMaxConsecutiveWork   ViolationType = "max_consecutive_work"
	ViolationInsufficientCoverage ViolationType = "insufficient_coverage"
	ViolationRequiredPersonAbsent ViolationType = "required_person_absent"
)

// GenerationStatus summarises a generation run
type GenerationStatus string

const (
	GenerationCompliant     GenerationStatus = "compliant"
	GenerationHasViolations GenerationStatus = "has_violations"
	GenerationFailed        GenerationStatus = "failed"
)

// Person represents an employee that can be scheduled
type Person struct {
	Name            string          `yaml:"name" validate:"required"`
	Group           string          `yaml:"group" validate:"required"`
	ShiftCapability ShiftCapability `yaml:"shiftCapability,omitempty"`
	Status          PersonStatus    `yaml:"status" validate:"required"`
}

// IsParticipating reports whether the person takes part in scheduling
func (p Person) IsParticipating() bool {
	return p.Status == PersonParticipating
}

// Group represents a team whose members share coverage requirements
type Group struct {
	Name      string        `yaml:"name" validate:"required"`
	Enabled   bool          `yaml:"enabled"`
	Strategy  SplitStrategy `yaml:"strategy,omitempty"`
	OddRatio  string        `yaml:"oddRatio,omitempty"`
	MinOnDuty int           `yaml:"minOnDuty" validate:"min=0"`

	// AlternateMonthly swaps the split shifts in even-numbered months
	AlternateMonthly bool `yaml:"alternateMonthly,omitempty"`
}

// Absence represents a period a person is away
type Absence struct {
	Person          string      `yaml:"person" validate:"required"`
	Start           string      `yaml:"start" validate:"required,datetime=2006-01-02"`
	End             string      `yaml:"end" validate:"required,datetime=2006-01-02"`
	Type            AbsenceType `yaml:"type" validate:"required"`
	HardUnavailable bool        `yaml:"hardUnavailable"`
	CountAsRest     bool        `yaml:"countAsRest"`
	Reason          string      `yaml:"reason,omitempty"`
}

// Covers returns true if the absence includes the given YYYY-MM-DD date
func (a Absence) Covers(date string) bool {
	return a.Start <= date && date <= a.End
}

// PersonOverride locks one person's status on one date
type PersonOverride struct {
	Person string             `yaml:"person" validate:"required"`
	Date   string             `yaml:"date" validate:"required,datetime=2006-01-02"`
	Type   PersonOverrideType `yaml:"type" validate:"required"`
	Reason string             `yaml:"reason,omitempty"`
}

// CalendarOverride forces a status for a scope on a date (or inclusive date range)
type CalendarOverride struct {
	Date     string               `yaml:"date" validate:"required,datetime=2006-01-02"`
	EndDate  string               `yaml:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Type     CalendarOverrideType `yaml:"type" validate:"required"`
	Scope    Scope                `yaml:"scope" validate:"required"`
	Target   string               `yaml:"target,omitempty" validate:"required_unless=Scope all"`
	Priority int                  `yaml:"priority,omitempty"`
	Reason   string               `yaml:"reason,omitempty"`
}

// LastDate returns the final date the override applies to
func (o CalendarOverride) LastDate() string {
	if o.EndDate == "" {
		return o.Date
	}
	return o.EndDate
}

// AppliesTo returns true if the override's scope includes the person
func (o CalendarOverride) AppliesTo(p Person) bool {
	switch o.Scope {
	case ScopeAll:
		return true
	case ScopeGroup:
		return o.Target == p.Group
	case ScopePerson:
		return o.Target == p.Name
	}
	return false
}

// SpecialDateRule sets a date-specific staffing requirement for a group
type SpecialDateRule struct {
	Date            string   `yaml:"date" validate:"required,datetime=2006-01-02"`
	Label           string   `yaml:"label,omitempty"`
	Group           string   `yaml:"group" validate:"required"`
	MinOnDuty       int      `yaml:"minOnDuty" validate:"min=0"`
	RequiredPersons []string `yaml:"requiredPersons,omitempty"`
}

// WeekRotationConfig records the parity of the first week of a month
type WeekRotationConfig struct {
	Month         string   `yaml:"month" validate:"required,datetime=2006-01"`
	FirstWeekType WeekType `yaml:"firstWeekType" validate:"required"`
}

// GlobalRules holds the rules shared by every group
type GlobalRules struct {
	MinConsecutiveWorkDays   int      `yaml:"minConsecutiveWorkDays" validate:"min=0"`
	MaxConsecutiveWorkDays   int      `yaml:"maxConsecutiveWorkDays" validate:"min=1"`
	ForbiddenRestDays        []string `yaml:"forbiddenRestDays,omitempty"`
	AllowedRestDays          []string `yaml:"allowedRestDays,omitempty"`
	SmallWeekMustConsecutive bool     `yaml:"smallWeekMustConsecutive"`
	WeekRotationMode         string   `yaml:"weekRotationMode,omitempty"`
	OverrideWeekRules        bool     `yaml:"overrideWeekRules"`
}

// DefaultGlobalRules returns the rules used when none are stored
func DefaultGlobalRules() GlobalRules {
	return GlobalRules{
		MinConsecutiveWorkDays:   5,
		MaxConsecutiveWorkDays:   6,
		SmallWeekMustConsecutive: true,
		WeekRotationMode:         "synchronized",
		OverrideWeekRules:        true,
	}
}

// Snapshot is the complete, read-only input of one generation run
type Snapshot struct {
	Persons             []Person             `yaml:"persons" validate:"dive"`
	Groups              []Group              `yaml:"groups" validate:"dive"`
	Absences            []Absence            `yaml:"absences,omitempty" validate:"dive"`
	PersonOverrides     []PersonOverride     `yaml:"personOverrides,omitempty" validate:"dive"`
	CalendarOverrides   []CalendarOverride   `yaml:"calendarOverrides,omitempty" validate:"dive"`
	SpecialDateRules    []SpecialDateRule    `yaml:"specialDateRules,omitempty" validate:"dive"`
	WeekRotationConfigs []WeekRotationConfig `yaml:"weekRotationConfigs,omitempty" validate:"dive"`
	Rules               GlobalRules          `yaml:"rules"`
}

// DailyAssignment is the engine's decision for one person on one date
type DailyAssignment struct {
	Person          string
	Group           string
	Date            string
	Weekday         string
	Shift           Shift // empty unless Status is work
	Status          Status
	IsViolation     bool
	ViolationReason string
}

// Violation is a rule breach found while generating a month
type Violation struct {
	Month       string
	Date        string
	Person      string // empty for group-level violations
	Group       string // empty for person-level violations
	Type        ViolationType
	Description string
}

// GenerationRecord is the audit entry written for each generation run
type GenerationRecord struct {
	ID             string
	Month          string
	GeneratedAt    string // RFC3339
	RuleVersion    string
	Status         GenerationStatus
	ViolationCount int
	Operator       string
}
