package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process ReportStore, used in tests and by hosts that
// don't need cross-process durability.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]Record)}
}

func (s *MemoryStore) Save(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) ListByTask(ctx context.Context, taskID string, limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*Record
	for _, rec := range s.records {
		if rec.TaskID == taskID {
			r := rec
			matches = append(matches, &r)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].EvaluatedAt.After(matches[j].EvaluatedAt)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *MemoryStore) Close() {}
