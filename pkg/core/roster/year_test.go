package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func TestGenerateYear_TwelveMonthsInOrder(t *testing.T) {
	results, err := GenerateYear(2026, testSnapshot("p1"), YearOptions{Options: testOptions(t)})
	require.NoError(t, err)
	require.Len(t, results, 12)

	expectedDays := []int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for i, result := range results {
		assert.Len(t, result.Assignments, expectedDays[i], "month %s", result.Month)
	}
	assert.Equal(t, "2026-01", results[0].Month)
	assert.Equal(t, "2026-12", results[11].Month)
}

func TestGenerateYear_BaseWeekTypeWithoutContinuity(t *testing.T) {
	opts := YearOptions{Options: Options{BaseWeekType: model.BigWeek}}

	results, err := GenerateYear(2026, testSnapshot("p1"), opts)
	require.NoError(t, err)

	// Every month restarts on a big week
	for _, result := range results {
		first := mustDate(t, result.Month+"-01")
		assert.Equal(t, model.BigWeek, result.Anchor.WeekTypeOf(first), "month %s", result.Month)
	}
}

func TestGenerateYear_ContinuityCarriesParity(t *testing.T) {
	opts := YearOptions{
		Options:    Options{BaseWeekType: model.BigWeek},
		Continuity: true,
	}

	results, err := GenerateYear(2026, testSnapshot("p1"), opts)
	require.NoError(t, err)

	// Only January takes the base week type; later months follow on from it
	january := results[0].Anchor
	for _, result := range results {
		days, err := EnumerateMonth(result.Month)
		require.NoError(t, err)
		for _, day := range days {
			assert.Equal(t, january.WeekTypeOf(day.Time), result.Anchor.WeekTypeOf(day.Time), "date %s", day.Date)
		}
	}

	// 2026-02-01 is a Sunday, so it shares the last week of January
	assert.Equal(t,
		results[0].Anchor.WeekTypeOf(mustDate(t, "2026-01-31")),
		results[1].Anchor.WeekTypeOf(mustDate(t, "2026-02-01")))
}

func TestGenerateYear_InvalidYear(t *testing.T) {
	for _, year := range []int{0, -1, 10000} {
		_, err := GenerateYear(year, testSnapshot("p1"), YearOptions{Options: testOptions(t)})
		assert.ErrorIs(t, err, ErrInvalidInput, "year %d", year)
	}
}

func TestGenerateYear_InvalidSnapshotAbortsRun(t *testing.T) {
	snapshot := testSnapshot("p1")
	snapshot.Rules.MinConsecutiveWorkDays = 9

	results, err := GenerateYear(2026, snapshot, YearOptions{Options: testOptions(t)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, results)
}
