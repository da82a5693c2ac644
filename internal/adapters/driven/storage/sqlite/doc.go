// Package sqlite provides the SQLite-backed search history store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The schema is managed through versioned migrations in the
// migrations/ directory; each migration is a pair of .up.sql and .down.sql
// files and applied versions are recorded in schema_migrations.
//
// By default, the database is stored at ~/.ocrhl/history.db.
package sqlite
