package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
)

func TestImportSnapshot_FromSource(t *testing.T) {
	source := &mockSnapshotStore{snapshot: opsSnapshot("alice", "bob")}
	store := newMockGenerationStore()

	result, err := ImportSnapshot(context.Background(), source, store, nil, testConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.ID)
	require.Len(t, store.snapshots, 1)
	assert.Same(t, source.snapshot, store.snapshots[0])
}

func TestImportSnapshot_ReplacesPersonsFromStaffSheet(t *testing.T) {
	source := &mockSnapshotStore{snapshot: opsSnapshot("alice")}
	store := newMockGenerationStore()
	staff := &mockStaffClient{persons: []model.Person{
		{Name: "carol", Group: "Ops", Status: model.PersonParticipating},
		{Name: "dave", Group: "Ops", Status: model.PersonResigned},
	}}
	cfg := testConfig()
	cfg.StaffSheet = &config.StaffSheet{SpreadsheetID: "staff-1", Tab: "Staff"}

	result, err := ImportSnapshot(context.Background(), source, store, staff, cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, staff.persons, result.Snapshot.Persons)
	assert.Equal(t, staff.persons, store.snapshots[0].Persons)
	assert.Equal(t, "alice", source.snapshot.Persons[0].Name, "source snapshot is not modified")
}

func TestImportSnapshot_StaffClientIgnoredWithoutConfig(t *testing.T) {
	source := &mockSnapshotStore{snapshot: opsSnapshot("alice")}
	staff := &mockStaffClient{listErr: errors.New("should not be called")}

	_, err := ImportSnapshot(context.Background(), source, newMockGenerationStore(), staff, testConfig(), zap.NewNop())
	assert.NoError(t, err)
}

func TestImportSnapshot_RejectsInvalidSnapshot(t *testing.T) {
	snapshot := opsSnapshot("alice")
	snapshot.Groups = append(snapshot.Groups, model.Group{Name: "Ops"})
	store := newMockGenerationStore()

	_, err := ImportSnapshot(context.Background(), &mockSnapshotStore{snapshot: snapshot}, store, nil, testConfig(), zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, roster.ErrInvalidInput))
	assert.Empty(t, store.snapshots)
}

func TestImportSnapshot_StaffSheetFailure(t *testing.T) {
	cfg := testConfig()
	cfg.StaffSheet = &config.StaffSheet{SpreadsheetID: "staff-1", Tab: "Staff"}
	staff := &mockStaffClient{listErr: errors.New("permission denied")}

	_, err := ImportSnapshot(context.Background(), &mockSnapshotStore{snapshot: opsSnapshot("alice")}, newMockGenerationStore(), staff, cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read staff sheet")
}
