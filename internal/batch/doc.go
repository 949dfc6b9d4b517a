// Package batch compares every pair of structural sequences in a folder.
//
// ARCHITECTURE:
//
// Worker Pool, Single Collector:
// Each unordered pair (i < j) is an independent task. Tasks are fed to a
// pool of worker goroutines; every task builds its own DP matrices, so
// workers share no mutable state. A single collector goroutine receives
// the results, restores (i, j) order and is the only caller of the sinks.
//
// Run Flow:
// 1. List regular, non-hidden files in the input folder, sorted by name
// 2. Read each file into a structural sequence, numbering them in order
// 3. Feed every pair to the pool; workers consult the cache, then align
// 4. Collector stamps each result with Clock.Next() and delivers it
//
// CRITICAL PATTERNS:
//
// Logical Clock
// Comparisons are stamped with a monotonic seq from Clock in (i, j)
// order, never in completion order. Two runs over the same folder produce
// identical reports whatever the worker count.
//
// Content-Addressed Cache
// When a Cache is configured, a pair whose comparison id was computed by
// an earlier run reuses that distance instead of running the DP.
package batch
