package tenant

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// OrgField is the record field carrying the owning organization id.
const OrgField = "organization_id"

// Record is one stored row.
type Record map[string]any

// Filter is a field-equality query.
type Filter map[string]any

// Store is the data-access surface the scoping adapter wraps. The concrete
// engine behind it (SQL, document store, remote API) is the host's choice.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Get returns ErrRecordNotFound for unknown ids.
type Store interface {
	Get(ctx context.Context, collection, id string) (Record, error)
	List(ctx context.Context, collection string, filter Filter) ([]Record, error)
	Insert(ctx context.Context, collection string, rec Record) (string, error)
	Update(ctx context.Context, collection, id string, changes Record) error
	Delete(ctx context.Context, collection, id string) error
}

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]Record // collection -> id -> record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]Record)}
}

// Get returns a copy of the record.
func (s *MemoryStore) Get(_ context.Context, collection, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[collection][id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return cloneRecord(rec), nil
}

// List returns copies of all records matching the filter.
func (s *MemoryStore) List(_ context.Context, collection string, filter Filter) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, rec := range s.data[collection] {
		if matches(rec, filter) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

// Insert stores the record, assigning an id when it has none.
func (s *MemoryStore) Insert(_ context.Context, collection string, rec Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, _ := rec["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	stored := cloneRecord(rec)
	stored["id"] = id
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]Record)
	}
	s.data[collection][id] = stored
	return id, nil
}

// Update merges changes into an existing record.
func (s *MemoryStore) Update(_ context.Context, collection, id string, changes Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[collection][id]
	if !ok {
		return ErrRecordNotFound
	}
	for k, v := range changes {
		rec[k] = v
	}
	return nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[collection][id]; !ok {
		return ErrRecordNotFound
	}
	delete(s.data[collection], id)
	return nil
}

func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func matches(rec Record, filter Filter) bool {
	for k, want := range filter {
		if rec[k] != want {
			return false
		}
	}
	return true
}

var _ Store = (*MemoryStore)(nil)
