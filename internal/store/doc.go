// Package store provides SQLite-backed durable storage for SERNAlign runs.
//
// The store keeps:
//   - Runs: one row per batch comparison (UUIDv7 id)
//   - Structures: the sequences a run processed, numbered in processing order
//   - Comparisons: one row per aligned pair, stamped with the run's logical clock
//
// # Critical Patterns
//
// Idempotent writes
//   - Every insert uses ON CONFLICT DO NOTHING
//   - Re-writing a run, structure or comparison is a no-op
//
// Deterministic query results
//   - All list queries use ORDER BY seq ASC, id ASC COLLATE BINARY (or num)
//   - Comparisons are keyed by (run, seq): two files with the same codes
//     share a comparison id but still get a row each
//   - Ensures identical reports whatever order workers finished in
//
// Content-addressed comparisons
//   - Comparison ids depend only on the two structures' codes, the
//     constraints flag and the algorithm version (see internal/ir)
//   - LookupComparison reuses a distance computed by any earlier run
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
