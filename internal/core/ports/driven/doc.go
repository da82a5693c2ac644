// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SearchEngine: select queries with OCR highlighting (Solr)
//   - ConfigStore: application configuration (TOML file)
//
// # Optional Interfaces
//
//   - ConfigWatcher: live reload of the configuration file. Without it,
//     settings changes apply on the next start.
//   - HistoryStore: record of executed searches (SQLite, or in memory)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
