package driven

import (
	"context"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// HistoryStore persists executed searches.
type HistoryStore interface {
	// Record stores an entry. Implementations may evict the oldest
	// entries to bound their size.
	Record(ctx context.Context, entry domain.HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
