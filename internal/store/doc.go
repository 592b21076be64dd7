// Package store provides a SQLite-backed storage.Backend for the persisted
// application value.
//
// The store keeps one row per storage key in the kv table:
//   - value: the JSON blob, replaced wholesale on every write
//   - revision: incremented on every write to the key
//   - run_id: the run that wrote the current value
//
// Revisions are logical counters, NEVER timestamps.
//
// # Database Configuration
//
//   - WAL mode: readers (the CLI) do not block the running game
//   - synchronous=FULL: a write is durable when Put returns
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
