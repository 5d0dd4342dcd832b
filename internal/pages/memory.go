package pages

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	page      Page
	expiresAt time.Time
}

// MemoryStore keeps pages in process memory. Expired pages are evicted when touched.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, page Page) error {
	if page.ID == "" {
		return fmt.Errorf("page id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.entries[page.ID] = &memoryEntry{page: page.clone(), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.liveLocked(id)
	if !ok {
		return nil, ErrPageNotFound
	}
	page := entry.page.clone()
	return &page, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn Mutator) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.liveLocked(id)
	if !ok {
		return nil, ErrPageNotFound
	}

	working := entry.page.clone()
	persist, err := fn(&working)
	if err != nil {
		return nil, err
	}
	if persist {
		entry.page = working.clone()
		entry.expiresAt = s.now().Add(s.ttl)
	}
	return &working, nil
}

// Len reports the number of pages that have not expired.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.entries)
}

func (s *MemoryStore) liveLocked(id string) (*memoryEntry, bool) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return nil, false
	}
	return entry, true
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
