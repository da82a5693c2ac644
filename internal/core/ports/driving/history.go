package driving

import (
	"context"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

// HistoryService exposes previously executed searches.
type HistoryService interface {
	// Recent returns up to limit searches, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear forgets all recorded searches.
	Clear(ctx context.Context) error
}
