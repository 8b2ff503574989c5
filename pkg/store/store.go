// Package store provides a durable audit trail of dgp.Report evaluations,
// backed by PostgreSQL. The kernel itself has no concept of persistence;
// this package is a host-side concern (spec §1's "out of scope" list), CRUD
// shape grounded in the teacher's VectorStore / ThreatSeed interface.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgp-systems/compliance-kernel/pkg/dgp"
	"github.com/google/uuid"
)

// ErrRecordNotFound is returned by Get when no record matches the given id.
var ErrRecordNotFound = errors.New("store: record not found")

// Record is one persisted evaluation. Report is stored verbatim as jsonb;
// TaskID, CapsuleVersion, and EvaluatedAt are projected into indexed
// columns for querying without deserializing the JSON body.
type Record struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	TaskID         string     `json:"taskId" db:"task_id"`
	CapsuleVersion string     `json:"capsuleVersion" db:"capsule_version"`
	EvaluatedAt    time.Time  `json:"evaluatedAt" db:"evaluated_at"`
	Report         dgp.Report `json:"report" db:"report"`
}

// NewRecord builds a Record from a freshly computed Report.
func NewRecord(id uuid.UUID, report *dgp.Report) (Record, error) {
	evaluatedAt, err := time.Parse(time.RFC3339, report.Metadata.EvaluatedAt)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:             id,
		TaskID:         report.Task.ID,
		CapsuleVersion: report.Metadata.CapsuleVersion,
		EvaluatedAt:    evaluatedAt,
		Report:         *report,
	}, nil
}

// ReportStore is the persistence contract for evaluation records.
type ReportStore interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	ListByTask(ctx context.Context, taskID string, limit int) ([]*Record, error)
	Close()
}

// marshalReport is a small helper kept separate from PostgresStore so it
// can be unit-tested without a live database.
func marshalReport(r dgp.Report) ([]byte, error) {
	return json.Marshal(r)
}
