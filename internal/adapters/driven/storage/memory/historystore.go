// Package memory provides in-memory implementations of driven stores, used
// when no database is available and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu         sync.RWMutex
	entries    []domain.HistoryEntry // oldest first
	maxEntries int
}

// NewHistoryStore creates a history keeping at most maxEntries searches.
// A non-positive maxEntries means unbounded.
func NewHistoryStore(maxEntries int) *HistoryStore {
	return &HistoryStore{maxEntries: maxEntries}
}

// Record stores an entry, replacing one with the same ID.
func (s *HistoryStore) Record(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	s.entries = append(s.entries, entry)

	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		s.entries = append([]domain.HistoryEntry(nil), s.entries[len(s.entries)-s.maxEntries:]...)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]domain.HistoryEntry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.entries[i])
	}
	return result, nil
}

// Clear removes all entries.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
