// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - IndexStore: per-user vector index persistence
//   - StatusSink: build progress and fast-read status records
//   - SettingsStore: per-user AI settings persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.noterag/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Replace is not one transaction: it clears the previous
// index and writes chunks in bounded batches, so builds for the same user must
// be serialised by the caller.
package sqlite
