package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func mustAnchor(t *testing.T, date string, parity model.WeekType) ParityAnchor {
	t.Helper()
	anchor, err := NewParityAnchor(date, parity)
	require.NoError(t, err)
	return anchor
}

func mustDate(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := ParseDate(date)
	require.NoError(t, err)
	return parsed
}

func TestWeekTypeOf_RelativeToAnchor(t *testing.T) {
	// 2026-01-18 is a Sunday, so its week starts on Monday 2026-01-12
	anchor := mustAnchor(t, "2026-01-18", model.SmallWeek)

	tests := []struct {
		date     string
		expected model.WeekType
	}{
		{"2026-01-12", model.SmallWeek}, // Monday of the anchor week
		{"2026-01-18", model.SmallWeek},
		{"2026-01-11", model.BigWeek}, // Sunday of the previous week
		{"2026-01-19", model.BigWeek},
		{"2026-01-26", model.SmallWeek},
		{"2025-12-29", model.SmallWeek}, // across the year boundary
		{"2025-12-28", model.BigWeek},
		{"2026-06-01", model.SmallWeek},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.expected, anchor.WeekTypeOf(mustDate(t, tt.date)))
		})
	}
}

func TestWeekTypeOf_PeriodTwoWeeks(t *testing.T) {
	anchor := mustAnchor(t, "2026-01-18", model.SmallWeek)

	start := mustDate(t, "2024-01-01")
	for i := 0; i < 365*4; i++ {
		date := start.AddDate(0, 0, i)
		assert.Equal(t, anchor.WeekTypeOf(date), anchor.WeekTypeOf(date.AddDate(0, 0, 14)),
			"parity should repeat every 14 days from %s", date.Format(dateLayout))
		assert.NotEqual(t, anchor.WeekTypeOf(date), anchor.WeekTypeOf(date.AddDate(0, 0, 7)),
			"parity should alternate weekly from %s", date.Format(dateLayout))
	}
}

func TestWeekTypeOf_CenturiesFromAnchor(t *testing.T) {
	anchor := mustAnchor(t, "2026-01-19", model.SmallWeek)

	for _, start := range []string{"0001-01-01", "1600-03-01", "2400-01-01", "9999-01-01"} {
		t.Run(start, func(t *testing.T) {
			first := mustDate(t, start)
			for i := 0; i < 52; i++ {
				date := first.AddDate(0, 0, 7*i)
				assert.NotEqual(t, anchor.WeekTypeOf(date), anchor.WeekTypeOf(date.AddDate(0, 0, 7)),
					"parity should alternate weekly from %s", date.Format(dateLayout))
				assert.Equal(t, anchor.WeekTypeOf(date), anchor.WeekTypeOf(date.AddDate(0, 0, 14)),
					"parity should repeat every 14 days from %s", date.Format(dateLayout))
			}
		})
	}
}

func TestWeekTypeOf_Stable(t *testing.T) {
	anchor := mustAnchor(t, "2026-01-18", model.BigWeek)
	date := mustDate(t, "2026-10-16")

	first := anchor.WeekTypeOf(date)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, anchor.WeekTypeOf(date))
	}
}

func TestIsNormalRestDay(t *testing.T) {
	assert.True(t, IsNormalRestDay(model.BigWeek, time.Sunday))
	assert.False(t, IsNormalRestDay(model.BigWeek, time.Saturday))
	assert.False(t, IsNormalRestDay(model.BigWeek, time.Monday))

	assert.True(t, IsNormalRestDay(model.SmallWeek, time.Sunday))
	assert.True(t, IsNormalRestDay(model.SmallWeek, time.Saturday))
	assert.False(t, IsNormalRestDay(model.SmallWeek, time.Friday))
}

func TestNewParityAnchor_Invalid(t *testing.T) {
	_, err := NewParityAnchor("2026-13-01", model.BigWeek)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewParityAnchor("2026-01-18", model.WeekType("medium"))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestResolveAnchor_Precedence(t *testing.T) {
	fixed := mustAnchor(t, "2026-01-18", model.SmallWeek)
	snapshot := &model.Snapshot{
		WeekRotationConfigs: []model.WeekRotationConfig{
			{Month: "2026-06", FirstWeekType: model.BigWeek},
		},
	}

	t.Run("fixed anchor by default", func(t *testing.T) {
		anchor, err := ResolveAnchor("2026-06", snapshot, Options{Anchor: fixed})
		require.NoError(t, err)
		assert.Equal(t, fixed, anchor)
	})

	t.Run("rotation config when honored", func(t *testing.T) {
		anchor, err := ResolveAnchor("2026-06", snapshot, Options{Anchor: fixed, HonorRotationConfig: true})
		require.NoError(t, err)
		assert.Equal(t, model.BigWeek, anchor.WeekTypeOf(mustDate(t, "2026-06-01")))
	})

	t.Run("rotation config for another month is ignored", func(t *testing.T) {
		anchor, err := ResolveAnchor("2026-07", snapshot, Options{Anchor: fixed, HonorRotationConfig: true})
		require.NoError(t, err)
		assert.Equal(t, fixed, anchor)
	})

	t.Run("base week type wins", func(t *testing.T) {
		anchor, err := ResolveAnchor("2026-06", snapshot, Options{
			Anchor:              fixed,
			HonorRotationConfig: true,
			BaseWeekType:        model.SmallWeek,
		})
		require.NoError(t, err)
		assert.Equal(t, model.SmallWeek, anchor.WeekTypeOf(mustDate(t, "2026-06-01")))
		assert.Equal(t, model.BigWeek, anchor.WeekTypeOf(mustDate(t, "2026-06-08")))
	})

	t.Run("missing anchor", func(t *testing.T) {
		_, err := ResolveAnchor("2026-06", snapshot, Options{})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}
