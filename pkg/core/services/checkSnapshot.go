package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// GroupSummary counts the members of one group
type GroupSummary struct {
	Name      string
	Enabled   bool
	Members   int
	Active    int
	MinOnDuty int
}

// SnapshotSummary is a validated snapshot's headline figures
type SnapshotSummary struct {
	Groups            []GroupSummary
	Persons           int
	ActivePersons     int
	Absences          int
	PersonOverrides   int
	CalendarOverrides int
	SpecialDateRules  int
}

// CheckSnapshot validates the latest snapshot and summarises it
func CheckSnapshot(ctx context.Context, snapshots db.SnapshotStore, logger *zap.Logger) (*SnapshotSummary, error) {
	snapshot, err := snapshots.GetLatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := roster.ValidateSnapshot(snapshot); err != nil {
		return nil, err
	}

	summary := summarise(snapshot)
	logger.Debug("Snapshot is valid",
		zap.Int("persons", summary.Persons),
		zap.Int("active_persons", summary.ActivePersons),
		zap.Int("groups", len(summary.Groups)))

	return summary, nil
}

func summarise(snapshot *model.Snapshot) *SnapshotSummary {
	summary := &SnapshotSummary{
		Persons:           len(snapshot.Persons),
		Absences:          len(snapshot.Absences),
		PersonOverrides:   len(snapshot.PersonOverrides),
		CalendarOverrides: len(snapshot.CalendarOverrides),
		SpecialDateRules:  len(snapshot.SpecialDateRules),
	}

	groups := make(map[string]*GroupSummary, len(snapshot.Groups))
	for _, g := range snapshot.Groups {
		groups[g.Name] = &GroupSummary{Name: g.Name, Enabled: g.Enabled, MinOnDuty: g.MinOnDuty}
	}

	for _, p := range snapshot.Persons {
		group := groups[p.Group]
		group.Members++
		if group.Enabled && p.IsParticipating() {
			group.Active++
			summary.ActivePersons++
		}
	}

	for _, g := range groups {
		summary.Groups = append(summary.Groups, *g)
	}
	sort.Slice(summary.Groups, func(i, j int) bool {
		return summary.Groups[i].Name < summary.Groups[j].Name
	})

	return summary
}
