package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
)

const dateLayout = "2006-01-02"

// engineOptions builds generation options from the configured parity settings.
// baseWeekType, when set, fixes the type of the month's first week.
func engineOptions(cfg *config.Config, baseWeekType model.WeekType) (roster.Options, error) {
	anchor, err := roster.NewParityAnchor(cfg.Parity.AnchorDate, model.WeekType(cfg.Parity.AnchorWeekType))
	if err != nil {
		return roster.Options{}, fmt.Errorf("invalid parity anchor: %w", err)
	}

	return roster.Options{
		Anchor:              anchor,
		BaseWeekType:        baseWeekType,
		HonorRotationConfig: cfg.Parity.HonorRotationConfig,
		Workers:             cfg.Workers,
	}, nil
}

// expandCalendarRules turns recurring calendar rules into one override per occurrence
// whose date falls between the dates of from and to inclusive. Rules without a DTSTART
// recur from `from`. An occurrence's date is read in its own location, so times of day
// and TZIDs never move it across a day boundary.
func expandCalendarRules(rules []config.CalendarRule, from, to time.Time) ([]model.CalendarOverride, error) {
	var overrides []model.CalendarOverride

	firstDate := from.Format(dateLayout)
	lastDate := to.Format(dateLayout)
	// Widened by a day each side to catch occurrences in zones away from UTC
	windowStart := from.AddDate(0, 0, -1)
	windowEnd := to.AddDate(0, 0, 2)

	for i, rule := range rules {
		opt, err := rrule.StrToROption(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in calendarRules[%d]: %w", i, err)
		}
		if opt.Dtstart.IsZero() {
			opt.Dtstart = from
		}

		r, err := rrule.NewRRule(*opt)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in calendarRules[%d]: %w", i, err)
		}

		for _, occurrence := range r.Between(windowStart, windowEnd, true) {
			date := occurrence.Format(dateLayout)
			if date < firstDate || date > lastDate {
				continue
			}
			overrides = append(overrides, model.CalendarOverride{
				Date:     date,
				Type:     model.CalendarOverrideType(rule.Type),
				Scope:    model.Scope(rule.Scope),
				Target:   rule.Target,
				Priority: rule.Priority,
				Reason:   rule.Reason,
			})
		}
	}

	return overrides, nil
}

// withCalendarRules returns a copy of the snapshot with the configured recurring
// rules appended to its calendar overrides. The input snapshot is left untouched.
func withCalendarRules(snapshot *model.Snapshot, rules []config.CalendarRule, from, to time.Time) (*model.Snapshot, int, error) {
	if len(rules) == 0 {
		return snapshot, 0, nil
	}

	expanded, err := expandCalendarRules(rules, from, to)
	if err != nil {
		return nil, 0, err
	}

	merged := *snapshot
	merged.CalendarOverrides = make([]model.CalendarOverride, 0, len(snapshot.CalendarOverrides)+len(expanded))
	merged.CalendarOverrides = append(merged.CalendarOverrides, snapshot.CalendarOverrides...)
	merged.CalendarOverrides = append(merged.CalendarOverrides, expanded...)

	return &merged, len(expanded), nil
}

// monthBounds returns the first and last day of a YYYY-MM month
func monthBounds(month string) (time.Time, time.Time, error) {
	first, err := roster.ParseMonth(month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return first, first.AddDate(0, 1, -1), nil
}
