package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driven"
)

// DefaultMaxEntries bounds the history when no size is given.
const DefaultMaxEntries = 500

var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore implements driven.HistoryStore on the search_history table.
type HistoryStore struct {
	store      *Store
	maxEntries int
}

// Record stores an entry and evicts the oldest entries beyond the bound,
// both in one transaction.
func (h *HistoryStore) Record(ctx context.Context, entry domain.HistoryEntry) (err error) {
	if entry.ID == "" {
		return fmt.Errorf("%w: history entry without id", domain.ErrInvalidInput)
	}
	if entry.SearchedAt.IsZero() {
		entry.SearchedAt = time.Now().UTC()
	}

	tx, err := h.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO search_history (id, query, sources, snippets, num_found, qtime, searched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			sources = excluded.sources,
			snippets = excluded.snippets,
			num_found = excluded.num_found,
			qtime = excluded.qtime,
			searched_at = excluded.searched_at
	`, entry.ID, entry.Query, joinSources(entry.Sources), entry.Snippets,
		entry.NumFound, entry.QTime, entry.SearchedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM search_history
		WHERE id NOT IN (
			SELECT id FROM search_history
			ORDER BY searched_at DESC, rowid DESC
			LIMIT ?
		)
	`, h.maxEntries)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (h *HistoryStore) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	rows, err := h.store.db.QueryContext(ctx, `
		SELECT id, query, sources, snippets, num_found, qtime, searched_at
		FROM search_history
		ORDER BY searched_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// Clear removes all entries.
func (h *HistoryStore) Clear(ctx context.Context) error {
	if _, err := h.store.db.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

func scanEntry(rows *sql.Rows) (domain.HistoryEntry, error) {
	var (
		entry    domain.HistoryEntry
		sources  string
		searched int64
	)
	err := rows.Scan(&entry.ID, &entry.Query, &sources, &entry.Snippets,
		&entry.NumFound, &entry.QTime, &searched)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("scanning history entry: %w", err)
	}
	entry.Sources = splitSources(sources)
	entry.SearchedAt = time.UnixMilli(searched).UTC()
	return entry, nil
}

func joinSources(sources []domain.SourceKind) string {
	tags := make([]string, len(sources))
	for i, s := range sources {
		tags[i] = s.String()
	}
	return strings.Join(tags, ",")
}

func splitSources(s string) []domain.SourceKind {
	if s == "" {
		return nil
	}
	tags := strings.Split(s, ",")
	sources := make([]domain.SourceKind, len(tags))
	for i, tag := range tags {
		sources[i] = domain.SourceKind(tag)
	}
	return sources
}
