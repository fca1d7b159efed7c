// Package fetch turns logical keys into shared, settle-once units of work.
//
// # Overview
//
// Both fetchers in this package solve the same problem: several call sites
// may ask for the same resource at the same time, and only one network
// request should ever be issued for it. Each key maps to an entry with a
// done channel; the first caller creates the entry and performs the request,
// later callers block on the channel and read the settled result.
//
// # Caching and Eviction
//
// A settled entry doubles as a cache hit: the result is immutable once the
// done channel closes, so returning it to any number of later callers is
// free and race-free.
//
// Eviction is explicit, never incidental:
//
//   - Failure evicts the entry, so the next call for that key retries
//     instead of replaying the failure.
//   - Portions.Reset drops the whole table when the search term changes;
//     cached portions are only meaningful within one term's result list.
//   - Item entries are never reset: a record keyed by id does not depend on
//     term or paging, so a success is valid for the life of the process.
//
// # Concurrency
//
// The tables are the only shared mutable state. Check-then-create runs under
// a mutex so two concurrent calls can never race into two requests for one
// key. The mutex is never held across network I/O; waiters block on the
// entry's done channel, not on the lock, and honor context cancellation.
package fetch
