package store

import (
	"context"
	"sync"

	"venues-backend/venues"
)

// MemoryStore is a venues.Store kept in process memory. It backs tests and
// local runs without AWS access.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]venues.Venue
}

var _ venues.Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]venues.Venue)}
}

func (s *MemoryStore) Put(_ context.Context, v venues.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[v.VenueID] = v
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (venues.Venue, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	return v, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) ScanAll(_ context.Context) ([]venues.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]venues.Venue, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out, nil
}

// Len returns the number of stored venues.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
