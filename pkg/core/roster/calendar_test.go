package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateMonth_ThirtyDayMonth(t *testing.T) {
	days, err := EnumerateMonth("2026-06")
	require.NoError(t, err)
	require.Len(t, days, 30)

	assert.Equal(t, "2026-06-01", days[0].Date)
	assert.Equal(t, time.Monday, days[0].Weekday)
	assert.Equal(t, "Monday", days[0].Label)
	assert.Equal(t, "2026-06-30", days[29].Date)

	// Dates are consecutive
	for i := 1; i < len(days); i++ {
		assert.Equal(t, days[i-1].Time.AddDate(0, 0, 1), days[i].Time)
	}
}

func TestEnumerateMonth_LeapFebruary(t *testing.T) {
	days, err := EnumerateMonth("2024-02")
	require.NoError(t, err)
	assert.Len(t, days, 29)
	assert.Equal(t, "2024-02-29", days[28].Date)
	assert.Equal(t, "Thursday", days[28].Label)
}

func TestEnumerateMonth_December(t *testing.T) {
	days, err := EnumerateMonth("2025-12")
	require.NoError(t, err)
	assert.Len(t, days, 31)
	assert.Equal(t, "2025-12-31", days[30].Date)
}

func TestEnumerateMonth_InvalidFormat(t *testing.T) {
	for _, month := range []string{"", "2026", "2026-13", "2026/06", "June 2026", "2026-06-01"} {
		_, err := EnumerateMonth(month)
		assert.Error(t, err, "month %q should be rejected", month)
		assert.True(t, errors.Is(err, ErrInvalidInput), "month %q should wrap ErrInvalidInput", month)
	}
}

func TestWeekdayLabel_SundayIsIndexZero(t *testing.T) {
	assert.Equal(t, "Sunday", WeekdayLabel(time.Weekday(0)))
	assert.Equal(t, "Saturday", WeekdayLabel(time.Weekday(6)))
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		label    string
		expected time.Weekday
	}{
		{"Sunday", time.Sunday},
		{"tuesday", time.Tuesday},
		{"SAT", time.Saturday},
		{" Wed ", time.Wednesday},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			wd, err := ParseWeekday(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, wd)
		})
	}

	_, err := ParseWeekday("Funday")
	assert.Error(t, err)
}
