// Package ir provides the record types and content-addressed identities
// shared by the store, the batch runner and the reports.
//
// This package contains types and pure functions only. Other internal
// packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types in hashed data - durations are int64 nanoseconds
//   - IDs of structures and comparisons are content-addressed, run IDs are UUIDv7
//   - All JSON tags use snake_case
//   - Ordering uses logical seq numbers, never wall-clock timestamps
package ir
