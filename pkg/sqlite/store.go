package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// GetLatestSnapshot returns the most recently imported snapshot
func (d *DB) GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var document string
	err := d.db.QueryRowContext(ctx, `SELECT document FROM snapshot ORDER BY id DESC LIMIT 1`).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no snapshot imported: %w", db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	return db.DecodeSnapshot([]byte(document))
}

// InsertSnapshot stores a new snapshot version and returns its id
func (d *DB) InsertSnapshot(ctx context.Context, snapshot *model.Snapshot) (int64, error) {
	document, err := db.EncodeSnapshot(snapshot)
	if err != nil {
		return 0, err
	}

	res, err := d.db.ExecContext(ctx, `INSERT INTO snapshot (document) VALUES (?)`, string(document))
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot id: %w", err)
	}
	return id, nil
}

// SaveSchedule replaces the stored assignments and violations for the month
func (d *DB) SaveSchedule(ctx context.Context, schedule *db.Schedule) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_assignment WHERE month = ?`, schedule.Month); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM violation WHERE month = ?`, schedule.Month); err != nil {
		return fmt.Errorf("failed to clear violations: %w", err)
	}

	insertAssignment, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_assignment (month, position, person, group_name, date, weekday, shift, status, is_violation, violation_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare assignment insert: %w", err)
	}
	defer insertAssignment.Close()

	for i, a := range schedule.Assignments {
		_, err := insertAssignment.ExecContext(ctx,
			schedule.Month, i, a.Person, a.Group, a.Date, a.Weekday,
			string(a.Shift), string(a.Status), a.IsViolation, a.ViolationReason)
		if err != nil {
			return fmt.Errorf("failed to insert assignment for %s on %s: %w", a.Person, a.Date, err)
		}
	}

	insertViolation, err := tx.PrepareContext(ctx, `
		INSERT INTO violation (month, position, date, person, group_name, type, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare violation insert: %w", err)
	}
	defer insertViolation.Close()

	for i, v := range schedule.Violations {
		_, err := insertViolation.ExecContext(ctx,
			schedule.Month, i, v.Date, v.Person, v.Group, string(v.Type), v.Description)
		if err != nil {
			return fmt.Errorf("failed to insert violation on %s: %w", v.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSchedule loads a stored month in the order it was saved
func (d *DB) GetSchedule(ctx context.Context, month string) (*db.Schedule, error) {
	schedule := &db.Schedule{Month: month}

	rows, err := d.db.QueryContext(ctx, `
		SELECT person, group_name, date, weekday, shift, status, is_violation, violation_reason
		FROM daily_assignment
		WHERE month = ?
		ORDER BY position
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a model.DailyAssignment
		var shift, status string
		if err := rows.Scan(&a.Person, &a.Group, &a.Date, &a.Weekday, &shift, &status, &a.IsViolation, &a.ViolationReason); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Shift = model.Shift(shift)
		a.Status = model.Status(status)
		schedule.Assignments = append(schedule.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	violations, err := d.db.QueryContext(ctx, `
		SELECT date, person, group_name, type, description
		FROM violation
		WHERE month = ?
		ORDER BY position
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer violations.Close()

	for violations.Next() {
		v := model.Violation{Month: month}
		var violationType string
		if err := violations.Scan(&v.Date, &v.Person, &v.Group, &violationType, &v.Description); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
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

// InsertGenerationRecord appends a record to the audit trail
func (d *DB) InsertGenerationRecord(ctx context.Context, record *model.GenerationRecord) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO generation_record (id, month, generated_at, rule_version, status, violation_count, operator)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Month, record.GeneratedAt, record.RuleVersion, string(record.Status), record.ViolationCount, record.Operator)
	if err != nil {
		return fmt.Errorf("failed to insert generation record: %w", err)
	}
	return nil
}

// GetGenerationRecords returns records oldest first, filtered by month unless month is empty
func (d *DB) GetGenerationRecords(ctx context.Context, month string) ([]model.GenerationRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, month, generated_at, rule_version, status, violation_count, operator
		FROM generation_record
		WHERE ? = '' OR month = ?
		ORDER BY generated_at, rowid
	`, month, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query generation records: %w", err)
	}
	defer rows.Close()

	var records []model.GenerationRecord
	for rows.Next() {
		var r model.GenerationRecord
		var status string
		if err := rows.Scan(&r.ID, &r.Month, &r.GeneratedAt, &r.RuleVersion, &status, &r.ViolationCount, &r.Operator); err != nil {
			return nil, fmt.Errorf("failed to scan generation record: %w", err)
		}
		r.Status = model.GenerationStatus(status)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generation records: %w", err)
	}

	return records, nil
}
