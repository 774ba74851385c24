package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// InsertGenerationRecord appends a record to the audit trail
func (d *DB) InsertGenerationRecord(ctx context.Context, record *model.GenerationRecord) error {
	generatedAt, err := time.Parse(time.RFC3339, record.GeneratedAt)
	if err != nil {
		return fmt.Errorf("record %s has invalid generated_at %q: %w", record.ID, record.GeneratedAt, err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO generation_record (id, month, generated_at, rule_version, status, violation_count, operator)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, record.ID, record.Month, generatedAt, record.RuleVersion, string(record.Status), record.ViolationCount, record.Operator)
	if err != nil {
		return fmt.Errorf("failed to insert generation record: %w", err)
	}
	return nil
}

// GetGenerationRecords returns records oldest first, filtered by month unless month is empty
func (d *DB) GetGenerationRecords(ctx context.Context, month string) ([]model.GenerationRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, month, generated_at, rule_version, status, violation_count, operator
		FROM generation_record
		WHERE $1 = '' OR month = $1
		ORDER BY generated_at, id
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query generation records: %w", err)
	}
	defer rows.Close()

	var records []model.GenerationRecord
	for rows.Next() {
		var r model.GenerationRecord
		var generatedAt time.Time
		var status string
		if err := rows.Scan(&r.ID, &r.Month, &generatedAt, &r.RuleVersion, &status, &r.ViolationCount, &r.Operator); err != nil {
			return nil, fmt.Errorf("failed to scan generation record: %w", err)
		}
		r.GeneratedAt = generatedAt.UTC().Format(time.RFC3339)
		r.Status = model.GenerationStatus(status)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generation records: %w", err)
	}

	return records, nil
}
