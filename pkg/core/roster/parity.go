package roster

import (
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

const secondsPerDay = 24 * 60 * 60

// ParityAnchor pins a known week type to the Monday-starting week containing Date.
// Every other week's type follows from the number of whole weeks between the two.
type ParityAnchor struct {
	Date   time.Time
	Parity model.WeekType
}

// NewParityAnchor builds an anchor from a YYYY-MM-DD date and a week type
func NewParityAnchor(date string, parity model.WeekType) (ParityAnchor, error) {
	t, err := ParseDate(date)
	if err != nil {
		return ParityAnchor{}, err
	}
	if !parity.IsValid() {
		return ParityAnchor{}, fmt.Errorf("%w: unknown week type %q", ErrInvalidInput, parity)
	}
	return ParityAnchor{Date: t, Parity: parity}, nil
}

// IsZero reports whether the anchor has not been set
func (a ParityAnchor) IsZero() bool {
	return a.Date.IsZero() || a.Parity == ""
}

// WeekTypeOf returns the week type of the week containing t
func (a ParityAnchor) WeekTypeOf(t time.Time) model.WeekType {
	weeks := weeksBetween(weekStart(a.Date), weekStart(t))
	if weeks%2 == 0 {
		return a.Parity
	}
	return a.Parity.Opposite()
}

// weekStart returns midnight UTC of the Monday starting t's week
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// weeksBetween counts whole weeks between two Mondays (negative if to is earlier).
// Both are UTC midnights, so the Unix difference is a whole number of days.
// time.Duration would overflow for dates a few centuries apart.
func weeksBetween(from, to time.Time) int64 {
	days := (to.Unix() - from.Unix()) / secondsPerDay
	return days / 7
}

// IsNormalRestDay reports whether the weekday is a rest day under the week's default pattern.
// Big weeks rest on Sunday only, small weeks rest on Saturday and Sunday.
func IsNormalRestDay(weekType model.WeekType, wd time.Weekday) bool {
	if wd == time.Sunday {
		return true
	}
	return weekType == model.SmallWeek && wd == time.Saturday
}

// ResolveAnchor picks the parity anchor for a month.
//
// Order of precedence:
//   - opts.BaseWeekType: the month's first week has that type
//   - the month's WeekRotationConfig, only when opts.HonorRotationConfig is set
//   - opts.Anchor, the configured fixed anchor
func ResolveAnchor(month string, snapshot *model.Snapshot, opts Options) (ParityAnchor, error) {
	first, err := ParseMonth(month)
	if err != nil {
		return ParityAnchor{}, err
	}

	if opts.BaseWeekType != "" {
		if !opts.BaseWeekType.IsValid() {
			return ParityAnchor{}, fmt.Errorf("%w: unknown base week type %q", ErrInvalidInput, opts.BaseWeekType)
		}
		return ParityAnchor{Date: first, Parity: opts.BaseWeekType}, nil
	}

	if opts.HonorRotationConfig && snapshot != nil {
		for _, cfg := range snapshot.WeekRotationConfigs {
			if cfg.Month == month {
				return ParityAnchor{Date: first, Parity: cfg.FirstWeekType}, nil
			}
		}
	}

	if opts.Anchor.IsZero() {
		return ParityAnchor{}, fmt.Errorf("%w: no parity anchor configured for %s", ErrInvalidInput, month)
	}

	return opts.Anchor, nil
}
