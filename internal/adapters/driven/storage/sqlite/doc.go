// Package sqlite provides a SQLite-backed host environment.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Every record category is served from one database connection:
//
//   - RecordStore: one generic store per category over the records table
//   - ElementIndexStore: element types and their index settings
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database is stored at <dataDir>/environment.db, where dataDir defaults
// to .schematic in the working directory.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
