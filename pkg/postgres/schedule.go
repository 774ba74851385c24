package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// SaveSchedule replaces the stored assignments and violations for the month
func (d *DB) SaveSchedule(ctx context.Context, schedule *db.Schedule) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM daily_assignment WHERE month = $1`, schedule.Month); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM violation WHERE month = $1`, schedule.Month); err != nil {
		return fmt.Errorf("failed to clear violations: %w", err)
	}

	assignmentRows := make([][]any, 0, len(schedule.Assignments))
	for i, a := range schedule.Assignments {
		date, err := time.Parse(dateLayout, a.Date)
		if err != nil {
			return fmt.Errorf("assignment %d has invalid date %q: %w", i, a.Date, err)
		}
		assignmentRows = append(assignmentRows, []any{
			schedule.Month, i, a.Person, a.Group, date, a.Weekday,
			string(a.Shift), string(a.Status), a.IsViolation, a.ViolationReason,
		})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"daily_assignment"},
		[]string{"month", "position", "person", "group_name", "date", "weekday", "shift", "status", "is_violation", "violation_reason"},
		pgx.CopyFromRows(assignmentRows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignments: %w", err)
	}

	violationRows := make([][]any, 0, len(schedule.Violations))
	for i, v := range schedule.Violations {
		date, err := time.Parse(dateLayout, v.Date)
		if err != nil {
			return fmt.Errorf("violation %d has invalid date %q: %w", i, v.Date, err)
		}
		violationRows = append(violationRows, []any{
			schedule.Month, i, date, v.Person, v.Group, string(v.Type), v.Description,
		})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"violation"},
		[]string{"month", "position", "date", "person", "group_name", "type", "description"},
		pgx.CopyFromRows(violationRows),
	)
	if err != nil {
		return fmt.Errorf("failed to insert violations: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSchedule loads a stored month in the order it was saved
func (d *DB) GetSchedule(ctx context.Context, month string) (*db.Schedule, error) {
	schedule := &db.Schedule{Month: month}

	rows, err := d.pool.Query(ctx, `
		SELECT person, group_name, date, weekday, shift, status, is_violation, violation_reason
		FROM daily_assignment
		WHERE month = $1
		ORDER BY position
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a model.DailyAssignment
		var date time.Time
		var shift, status string
		if err := rows.Scan(&a.Person, &a.Group, &date, &a.Weekday, &shift, &status, &a.IsViolation, &a.ViolationReason); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Date = date.Format(dateLayout)
		a.Shift = model.Shift(shift)
		a.Status = model.Status(status)
		schedule.Assignments = append(schedule.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	violations, err := d.pool.Query(ctx, `
		SELECT date, person, group_name, type, description
		FROM violation
		WHERE month = $1
		ORDER BY position
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer violations.Close()

	for violations.Next() {
		v := model.Violation{Month: month}
		var date time.Time
		var violationType string
		if err := violations.Scan(&date, &v.Person, &v.Group, &violationType, &v.Description); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		v.Date = date.Format(dateLayout)
		v.Type = model.ViolationType(violationType)
		schedule.Violations = append(schedule.Violations, v)
	}
	if err := violations.Err(); err != nil {
		return nil, fmt.Errorf("error iterating violations: %w", err)
	}

	// A month with no active staff can still carry coverage violations
	if len(schedule.Assignments) == 0 && len(schedule.Violations) == 0 {
		return nil, fmt.Errorf("schedule %s: %w", month, db.ErrNotFound)
	}

	return schedule, nil
}
