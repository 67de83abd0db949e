// Package store provides SQLite-backed storage for grading attempts.
//
// The store keeps two tables:
//   - attempts: one row per (assignment, student) with the attempt count,
//     the best score so far and the lateness indicator
//   - reports: every finalized report, keyed by run ID
//
// The attempts row is what a new grading session starts from: BeginAttempt
// increments the count and returns the session.State, with the best
// recorded score as the previous score.
//
// # Ordering
//
// History queries order by attempt number, then run ID with BINARY
// collation, so results are stable across runs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait on lock contention
//   - foreign_keys=ON: Reports must reference an attempts row
package store
