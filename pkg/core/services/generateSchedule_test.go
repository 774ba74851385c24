package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
)

func statusOn(t *testing.T, result *roster.Result, person, date string) model.Status {
	t.Helper()
	for _, a := range result.AssignmentsFor(person) {
		if a.Date == date {
			return a.Status
		}
	}
	t.Fatalf("no assignment for %s on %s", person, date)
	return ""
}

func TestGenerateSchedule_SavesScheduleAndRecord(t *testing.T) {
	ctx := context.Background()
	fixClock(t, time.Date(2026, 5, 20, 9, 30, 0, 0, time.UTC))

	snapshots := &mockSnapshotStore{snapshot: opsSnapshot("alice", "bob")}
	store := newMockGenerationStore()

	got, err := GenerateSchedule(ctx, snapshots, store, testConfig(), zap.NewNop(), "2026-06", "")
	require.NoError(t, err)

	assert.Len(t, got.Result.Assignments, 60)
	assert.Empty(t, got.Result.Violations)

	saved, ok := store.schedules["2026-06"]
	require.True(t, ok)
	assert.Equal(t, got.Result.Assignments, saved.Assignments)

	require.Len(t, store.records, 1)
	record := store.records[0]
	assert.Equal(t, *got.Record, record)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "2026-06", record.Month)
	assert.Equal(t, "2026-05-20T09:30:00Z", record.GeneratedAt)
	assert.Equal(t, "v1", record.RuleVersion)
	assert.Equal(t, "ops-lead", record.Operator)
	assert.Equal(t, model.GenerationCompliant, record.Status)
	assert.Equal(t, 0, record.ViolationCount)
}

func TestGenerateSchedule_RecordsViolations(t *testing.T) {
	snapshot := opsSnapshot("alice", "bob")
	snapshot.Rules.ForbiddenRestDays = []string{"Saturday"}
	store := newMockGenerationStore()

	got, err := GenerateSchedule(context.Background(), &mockSnapshotStore{snapshot: snapshot}, store, testConfig(), zap.NewNop(), "2026-06", "")
	require.NoError(t, err)

	// Small-week Saturdays are the 13th and 27th
	assert.Len(t, got.Result.Violations, 4)
	assert.Equal(t, model.GenerationHasViolations, store.records[0].Status)
	assert.Equal(t, 4, store.records[0].ViolationCount)
	assert.Len(t, store.schedules["2026-06"].Violations, 4)
}

func TestGenerateSchedule_BaseWeekTypeOverridesAnchor(t *testing.T) {
	store := newMockGenerationStore()

	got, err := GenerateSchedule(context.Background(), &mockSnapshotStore{snapshot: opsSnapshot("alice")}, store, testConfig(), zap.NewNop(), "2026-06", model.SmallWeek)
	require.NoError(t, err)

	// The week of June 1st is big under the configured anchor, small here
	assert.Equal(t, model.StatusRest, statusOn(t, got.Result, "alice", "2026-06-06"))
	assert.Equal(t, model.StatusWork, statusOn(t, got.Result, "alice", "2026-06-13"))
}

func TestGenerateSchedule_ExpandsCalendarRules(t *testing.T) {
	cfg := testConfig()
	cfg.CalendarRules = []config.CalendarRule{
		{RRule: "FREQ=WEEKLY;BYDAY=SA", Type: "force_work", Scope: "group", Target: "Ops", Reason: "Saturday cover"},
		{RRule: "FREQ=YEARLY;BYMONTH=10;BYMONTHDAY=1,2,3", Type: "force_rest", Scope: "all", Reason: "National Day"},
	}
	snapshot := opsSnapshot("alice")
	store := newMockGenerationStore()

	got, err := GenerateSchedule(context.Background(), &mockSnapshotStore{snapshot: snapshot}, store, cfg, zap.NewNop(), "2026-06", "")
	require.NoError(t, err)

	assert.Equal(t, model.StatusWork, statusOn(t, got.Result, "alice", "2026-06-13"))
	assert.Equal(t, model.StatusWork, statusOn(t, got.Result, "alice", "2026-06-27"))
	assert.Equal(t, model.StatusRest, statusOn(t, got.Result, "alice", "2026-06-14"))
	assert.Empty(t, snapshot.CalendarOverrides, "stored snapshot is not modified")
}

func TestGenerateSchedule_InvalidSnapshotRecordsFailure(t *testing.T) {
	snapshot := opsSnapshot("alice")
	snapshot.Persons = append(snapshot.Persons, model.Person{Name: "bob", Group: "Night", Status: model.PersonParticipating})
	store := newMockGenerationStore()

	_, err := GenerateSchedule(context.Background(), &mockSnapshotStore{snapshot: snapshot}, store, testConfig(), zap.NewNop(), "2026-06", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, roster.ErrInvalidInput))

	assert.Empty(t, store.schedules)
	require.Len(t, store.records, 1)
	assert.Equal(t, model.GenerationFailed, store.records[0].Status)
	assert.Equal(t, "2026-06", store.records[0].Month)
}

func TestGenerateSchedule_Errors(t *testing.T) {
	tests := []struct {
		name      string
		snapshots *mockSnapshotStore
		store     func() *mockGenerationStore
		month     string
		wantErr   string
	}{
		{
			name:      "snapshot load fails",
			snapshots: &mockSnapshotStore{getErr: errors.New("connection refused")},
			store:     newMockGenerationStore,
			month:     "2026-06",
			wantErr:   "failed to load snapshot",
		},
		{
			name:      "malformed month",
			snapshots: &mockSnapshotStore{snapshot: opsSnapshot("alice")},
			store:     newMockGenerationStore,
			month:     "June",
			wantErr:   "month must be YYYY-MM",
		},
		{
			name:      "save fails",
			snapshots: &mockSnapshotStore{snapshot: opsSnapshot("alice")},
			store: func() *mockGenerationStore {
				s := newMockGenerationStore()
				s.saveErr = errors.New("disk full")
				return s
			},
			month:   "2026-06",
			wantErr: "failed to save schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSchedule(context.Background(), tt.snapshots, tt.store(), testConfig(), zap.NewNop(), tt.month, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
