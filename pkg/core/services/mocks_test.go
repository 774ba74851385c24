package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

type mockSnapshotStore struct {
	snapshot *model.Snapshot
	getErr   error
}

func (m *mockSnapshotStore) GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.snapshot == nil {
		return nil, db.ErrNotFound
	}
	return m.snapshot, nil
}

type mockGenerationStore struct {
	schedules map[string]*db.Schedule
	records   []model.GenerationRecord
	snapshots []*model.Snapshot

	saveErr   error
	insertErr error
}

func newMockGenerationStore() *mockGenerationStore {
	return &mockGenerationStore{schedules: make(map[string]*db.Schedule)}
}

func (m *mockGenerationStore) SaveSchedule(ctx context.Context, schedule *db.Schedule) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.schedules[schedule.Month] = schedule
	return nil
}

func (m *mockGenerationStore) GetSchedule(ctx context.Context, month string) (*db.Schedule, error) {
	schedule, ok := m.schedules[month]
	if !ok {
		return nil, fmt.Errorf("schedule %s: %w", month, db.ErrNotFound)
	}
	return schedule, nil
}

func (m *mockGenerationStore) InsertGenerationRecord(ctx context.Context, record *model.GenerationRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockGenerationStore) GetGenerationRecords(ctx context.Context, month string) ([]model.GenerationRecord, error) {
	var out []model.GenerationRecord
	for _, r := range m.records {
		if month == "" || r.Month == month {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockGenerationStore) InsertSnapshot(ctx context.Context, snapshot *model.Snapshot) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.snapshots = append(m.snapshots, snapshot)
	return int64(len(m.snapshots)), nil
}

type mockSheetsClient struct {
	published     []*db.Schedule
	spreadsheetID string
	publishErr    error
}

func (m *mockSheetsClient) PublishSchedule(spreadsheetID string, schedule *db.Schedule) (*sheetsclient.PublishResult, error) {
	if m.publishErr != nil {
		return nil, m.publishErr
	}
	m.spreadsheetID = spreadsheetID
	m.published = append(m.published, schedule)
	return &sheetsclient.PublishResult{
		ScheduleTab:    "Roster " + schedule.Month,
		ViolationsTab:  "Violations " + schedule.Month,
		ViolationCount: len(schedule.Violations),
	}, nil
}

type mockStaffClient struct {
	persons []model.Person
	listErr error
}

func (m *mockStaffClient) ListPersons(spreadsheetID, tab string) ([]model.Person, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.persons, nil
}

// opsSnapshot has one enabled group with no minimum, so June 2026 generates compliant
func opsSnapshot(names ...string) *model.Snapshot {
	snapshot := &model.Snapshot{
		Groups: []model.Group{{Name: "Ops", Enabled: true, Strategy: model.StrategyEvenSplit}},
		Rules:  model.DefaultGlobalRules(),
	}
	for _, name := range names {
		snapshot.Persons = append(snapshot.Persons, model.Person{Name: name, Group: "Ops", Status: model.PersonParticipating})
	}
	return snapshot
}

func testConfig() *config.Config {
	return &config.Config{
		Database: config.Database{Driver: "sqlite", DSN: "roster.db"},
		Parity: config.Parity{
			AnchorDate:     "2026-06-08",
			AnchorWeekType: "small",
		},
		RuleVersion: "v1",
		Operator:    "ops-lead",
		Publish:     config.Publish{SpreadsheetID: "sheet-1"},
	}
}

func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	previous := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = previous })
}
