package roster

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// weekdayLabels is indexed by time.Weekday (Sunday=0 ... Saturday=6)
var weekdayLabels = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// Day is a single calendar date of the month being generated
type Day struct {
	Date    string // YYYY-MM-DD
	Time    time.Time
	Weekday time.Weekday
	Label   string
}

// WeekdayLabel returns the fixed label for a weekday
func WeekdayLabel(wd time.Weekday) string {
	return weekdayLabels[wd]
}

// ParseWeekday resolves a weekday label. Full names and three letter
// abbreviations are accepted, case-insensitively.
func ParseWeekday(label string) (time.Weekday, error) {
	trimmed := strings.TrimSpace(label)
	for i, name := range weekdayLabels {
		if strings.EqualFold(trimmed, name) || strings.EqualFold(trimmed, name[:3]) {
			return time.Weekday(i), nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", label)
}

// ParseMonth parses a YYYY-MM month into the UTC midnight of its first day
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month must be YYYY-MM, got %q", ErrInvalidInput, month)
	}
	return t, nil
}

// ParseDate parses a YYYY-MM-DD date into UTC midnight
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, date)
	}
	return t, nil
}

// EnumerateMonth returns every date of the month in order, from the 1st to the last day
func EnumerateMonth(month string) ([]Day, error) {
	first, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	next := first.AddDate(0, 1, 0)
	days := make([]Day, 0, 31)
	for current := first; current.Before(next); current = current.AddDate(0, 0, 1) {
		days = append(days, newDay(current))
	}

	return days, nil
}

func newDay(t time.Time) Day {
	return Day{
		Date:    t.Format(dateLayout),
		Time:    t,
		Weekday: t.Weekday(),
		Label:   WeekdayLabel(t.Weekday()),
	}
}
