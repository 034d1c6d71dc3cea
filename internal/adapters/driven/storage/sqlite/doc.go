// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - GuideStore / BatchStore: Guide persistence and batched import commits
//   - GameStore: Game persistence
//   - BookmarkStore / NoteStore: Annotation persistence
//   - SearchIndex: Full-text queries over the two FTS5 indexes
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// The two full-text indexes are external-content FTS5 tables kept in sync by
// triggers on the guides table: a guide write reindexes only the index whose
// backing columns changed.
//
// # Data Location
//
// By default, the database is stored at ~/.guidevault/data/library.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
