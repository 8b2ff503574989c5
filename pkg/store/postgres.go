package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a pgx/v5-backed ReportStore. The schema mirrors the
// teacher's seed table shape (UpsertSeed/GetSeed/ListSeeds), adapted from
// threat-seed rows to compliance-report rows:
//
//	CREATE TABLE compliance_reports (
//	  id              uuid PRIMARY KEY,
//	  task_id         text NOT NULL,
//	  capsule_version text NOT NULL,
//	  evaluated_at    timestamptz NOT NULL,
//	  report          jsonb NOT NULL
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already-configured pgxpool.Pool. Callers own
// the pool's lifecycle up to Close.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Save upserts rec by primary key.
func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	body, err := marshalReport(rec.Report)
	if err != nil {
		return fmt.Errorf("store: marshaling report %s: %w", rec.ID, err)
	}

	const q = `
INSERT INTO compliance_reports (id, task_id, capsule_version, evaluated_at, report)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
  task_id = EXCLUDED.task_id,
  capsule_version = EXCLUDED.capsule_version,
  evaluated_at = EXCLUDED.evaluated_at,
  report = EXCLUDED.report`

	if _, err := s.pool.Exec(ctx, q, rec.ID, rec.TaskID, rec.CapsuleVersion, rec.EvaluatedAt, body); err != nil {
		return fmt.Errorf("store: saving record %s: %w", rec.ID, err)
	}
	return nil
}

// Get fetches a single record by id. Returns ErrRecordNotFound when absent.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	const q = `SELECT id, task_id, capsule_version, evaluated_at, report FROM compliance_reports WHERE id = $1`

	var rec Record
	var body []byte
	err := s.pool.QueryRow(ctx, q, id).Scan(&rec.ID, &rec.TaskID, &rec.CapsuleVersion, &rec.EvaluatedAt, &body)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("store: getting record %s: %w", id, err)
	}
	if err := json.Unmarshal(body, &rec.Report); err != nil {
		return nil, fmt.Errorf("store: decoding report %s: %w", id, err)
	}
	return &rec, nil
}

// ListByTask returns up to limit records for a task, most recent first.
func (s *PostgresStore) ListByTask(ctx context.Context, taskID string, limit int) ([]*Record, error) {
	const q = `
SELECT id, task_id, capsule_version, evaluated_at, report
FROM compliance_reports
WHERE task_id = $1
ORDER BY evaluated_at DESC
LIMIT $2`

	rows, err := s.pool.Query(ctx, q, taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("store: listing records for task %s: %w", taskID, err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var rec Record
		var body []byte
		if err := rows.Scan(&rec.ID, &rec.TaskID, &rec.CapsuleVersion, &rec.EvaluatedAt, &body); err != nil {
			return nil, fmt.Errorf("store: scanning record row: %w", err)
		}
		if err := json.Unmarshal(body, &rec.Report); err != nil {
			return nil, fmt.Errorf("store: decoding report %s: %w", rec.ID, err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
