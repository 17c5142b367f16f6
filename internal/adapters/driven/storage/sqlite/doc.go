// Package sqlite provides a persistent implementation of the ContentStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It persists loaded theory
// snapshots so resolve and graph commands work in a fresh process without
// re-parsing the content files.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory as numbered .up.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.mathtrail/data/corpus.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode; ReplaceTheory runs in a transaction so a
// half-replaced snapshot is never observable.
package sqlite
