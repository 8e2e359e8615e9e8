// Package journal provides SQLite-backed storage for a log of adder calls.
//
// The adder itself keeps no state. The journal is an optional record kept by
// the CLI so that a batch of calls can be listed and audited afterwards.
//
// The journal is an append-only log with:
//   - Runs: one row per CLI invocation, keyed by a UUIDv7 run ID
//   - Calls: one row per adder call, keyed by a content-addressed ID
//
// # Ordering
//
// Calls carry a logical seq from Clock, never a wall-clock timestamp. All
// call queries use ORDER BY seq ASC, id ASC COLLATE BINARY. Runs are ordered
// by ID, which sorts by creation time for UUIDv7.
//
// # Idempotency
//
// Call IDs are SHA-256 over canonical JSON with domain separation
// (see CallID). Writing the same call twice is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package journal
