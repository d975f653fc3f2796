// Package store provides SQLite-backed storage for timestamps and durations.
//
// Values are persisted as canonical codec records next to their
// fingerprint, so a reloaded value has the same fields, fold and zone name
// as the one saved. Zones are resolved by name on load.
//
// # Ordering
//
// ListDateTimes returns aware values first, ordered by UTC instant, then
// naive values ordered by their local fields. Ties break on id, compared
// as binary text.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Schema upgrades are tracked with PRAGMA user_version.
package store
