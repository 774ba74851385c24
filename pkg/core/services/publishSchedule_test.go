package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

func TestPublishSchedule_Success(t *testing.T) {
	store := newMockGenerationStore()
	store.schedules["2026-06"] = &db.Schedule{
		Month:       "2026-06",
		Assignments: []model.DailyAssignment{{Person: "alice", Group: "Ops", Date: "2026-06-01", Status: model.StatusWork, Shift: model.ShiftA}},
		Violations:  []model.Violation{{Month: "2026-06", Date: "2026-06-01", Group: "Ops", Type: model.ViolationInsufficientCoverage}},
	}
	client := &mockSheetsClient{}

	result, err := PublishSchedule(context.Background(), store, client, testConfig(), zap.NewNop(), "2026-06")
	require.NoError(t, err)

	assert.Equal(t, "sheet-1", client.spreadsheetID)
	require.Len(t, client.published, 1)
	assert.Equal(t, store.schedules["2026-06"], client.published[0])
	assert.Equal(t, "Roster 2026-06", result.ScheduleTab)
	assert.Equal(t, 1, result.ViolationCount)
}

func TestPublishSchedule_Errors(t *testing.T) {
	t.Run("no spreadsheet configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.Publish.SpreadsheetID = ""

		_, err := PublishSchedule(context.Background(), newMockGenerationStore(), &mockSheetsClient{}, cfg, zap.NewNop(), "2026-06")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "spreadsheetID")
	})

	t.Run("month not generated", func(t *testing.T) {
		client := &mockSheetsClient{}

		_, err := PublishSchedule(context.Background(), newMockGenerationStore(), client, testConfig(), zap.NewNop(), "2026-06")
		require.Error(t, err)
		assert.True(t, errors.Is(err, db.ErrNotFound))
		assert.Contains(t, err.Error(), "run generate first")
		assert.Empty(t, client.published)
	})

	t.Run("sheets failure", func(t *testing.T) {
		store := newMockGenerationStore()
		store.schedules["2026-06"] = &db.Schedule{Month: "2026-06"}
		client := &mockSheetsClient{publishErr: errors.New("quota exceeded")}

		_, err := PublishSchedule(context.Background(), store, client, testConfig(), zap.NewNop(), "2026-06")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})
}
