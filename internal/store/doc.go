// Package store provides SQLite-backed durable run history for tapevm.
//
// The store is append-only:
//   - Programs: source bytes keyed by content hash (ir.ProgramHash)
//   - Runs: one record per execution with input, output, outcome and the
//     content-addressed result hash used to verify determinism on replay
//
// # Ordering
//
// Runs carry a seq INTEGER assigned at write time (MAX(seq)+1 inside the
// write transaction). All listings use ORDER BY seq ASC, id ASC COLLATE
// BINARY; wall-clock time is never stored.
//
// # Opening
//
// Open creates the history if needed and stamps SchemaVersion into
// PRAGMA user_version; it refuses databases stamped with a newer version.
// OpenExisting is for readers: the file must exist, carry the current
// version and contain both tables.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
