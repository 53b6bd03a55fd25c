// Package sqlite provides the durable SQLite-backed session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. One database holds the
// key-value state of every session, scoped per session id, so stored OAuth
// credentials and the tenant cache survive process restarts.
//
// # Schema
//
// The database schema is managed through versioned migrations embedded from
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.jsm-agent/data/agent.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
