package logbook

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/luna/internal/validation"
)

// Store is the log collection the analytics core reads from.
type Store interface {
	// Query returns userID's entries within r, oldest first.
	Query(ctx context.Context, userID string, r DateRange) ([]Entry, error)
	// Add validates and stores e, assigning an ID when it has none.
	Add(ctx context.Context, e Entry) (Entry, error)
	Close() error
}

// prepare normalises and validates an entry before it is stored.
func prepare(e Entry) (Entry, error) {
	e.UserID = strings.TrimSpace(e.UserID)
	e.Date = dateOnly(e.Date)
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := validation.Struct(e); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return e, nil
}

// MemoryStore keeps entries in process memory. It is the default store and the one used
// in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	closed  bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]Entry)}
}

// Query implements Store.
func (s *MemoryStore) Query(ctx context.Context, userID string, r DateRange) ([]Entry, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	out := []Entry{}
	for _, e := range s.entries[userID] {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// Add implements Store.
func (s *MemoryStore) Add(ctx context.Context, e Entry) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	e, err := prepare(e)
	if err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Entry{}, ErrStoreClosed
	}
	s.entries[e.UserID] = append(s.entries[e.UserID], e)
	return e, nil
}

// Close implements Store. Subsequent calls fail with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
