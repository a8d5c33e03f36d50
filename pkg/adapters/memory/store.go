package memory

import (
	"context"
	"sync"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Verdict
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Verdict),
	}
}

// Save persists the verdict in memory.
func (s *Store) Save(ctx context.Context, key string, verdict *domain.Verdict) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := clone(verdict)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves the verdict from memory.
func (s *Store) Load(ctx context.Context, key string) (*domain.Verdict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	verdict, ok := s.data[key]
	if !ok {
		return nil, domain.ErrVerdictNotFound
	}

	// Copy on read so callers can't mutate the stored verdict through the pointer
	return clone(verdict), nil
}

// Delete removes the verdict.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len returns the number of stored verdicts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func clone(v *domain.Verdict) *domain.Verdict {
	c := *v
	c.Path = append([]domain.Snapshot(nil), v.Path...)
	return &c
}
