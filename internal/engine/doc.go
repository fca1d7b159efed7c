// Package engine reconciles client pages with server portions and owns the
// application's browsing state.
//
// # Overview
//
// The catalog API serves search results in fixed chunks of ten records
// ("portions"); the user browses at a page size of their choosing. The
// engine maps each requested page to the minimal set of portions that cover
// it, fetches only the portions not already cached for the current term,
// and publishes an immutable Selection snapshot once the page is fully
// resolved.
//
// # Core Types
//
// Selection:
//   - Immutable snapshot of term, page, page size, total count, and the
//     portions fetched so far
//   - Derived values (PagesCount, Window, DisplaySlice) are pure functions
//     of the snapshot
//   - Err and Initial flag states whose data fields must not be read
//
// Engine:
//   - Accepts Search, GoToPage, and SetPageSize actions
//   - Resolves missing portions concurrently, fail-fast
//   - Publishes to any number of subscribers; all see the same sequence
//
// # Page to Portion Mapping
//
// A page covers the half-open display-index window
//
//	[pageSize*(page-1), min(pageSize*page, count))
//
// which maps to the closed portion range
//
//	[floor(beg/10)+1, floor((end-1)/10)+1]
//
// Example: count=23, pageSize=10, page=2 covers indices [10, 20), which is
// exactly portion 2; a page-2 request with portion 2 cached issues no
// network call at all.
//
// # Action Semantics
//
//   - Search(term): always allowed, including from error and initial
//     states. Discards the portion cache, returns to page 1, fetches
//     portion 1 to learn the count, then resolves page 1's window.
//   - GoToPage(p): rejected (error state) from error or initial states.
//     A page beyond the last valid page falls back to page 1, not the last
//     page. That asymmetry is deliberate, long-standing behavior.
//   - SetPageSize(n): rejected under the same precondition. Returns to
//     page 1 and keeps the portion cache, which stays valid because only
//     the page geometry changed.
//
// # Switch-Latest Serialization
//
// Every dispatch claims the next value of a monotonically increasing
// sequence number. When a resolution completes it publishes only if its
// sequence is still the highest claimed; otherwise the result is dropped
// silently. A slow Search can therefore never clobber the state of a
// GoToPage issued after it. In-flight requests are not cancelled (they are
// idempotent GETs and their results stay reusable in the fetch tables);
// only publication is suppressed.
//
// # Failure Model
//
// There is one failure at this level: a fetch failed, cause opaque. Any
// portion failure fails the whole resolution and publishes an error state
// that preserves only the page size. There is no retry policy; the next
// user action retries naturally because failed fetch entries are evicted.
//
// # Concurrency Model
//
// Selection values are never mutated after publication, so subscribers need
// no locking. The engine's mutex guards only the current snapshot, the
// sequence counter, and the subscriber table; it is never held across
// network I/O. Within one resolution, distinct missing portions are fetched
// concurrently (fan-out) and merged once all settle (fan-in).
package engine
