// Package catalog provides an HTTP client for the remote catalog API.
//
// # Overview
//
// The catalog API serves a searchable planet collection. Search results are
// paged by the server in fixed chunks of ten records ("portions"); the client
// exposes exactly the two read operations the rest of the application needs.
//
// # API Endpoints
//
//   - GET /api/planets?page=N&search=term: one portion of matches plus the
//     total match count
//   - GET /api/planets/{id}: the complete record for a single id
//
// Both endpoints return JSON that is decoded into strongly-typed structs.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and a starcat User-Agent header
//   - Carry the configured client timeout (default 10 seconds)
//   - Return wrapped errors with context about what failed
//
// # Error Handling
//
// A 404 on an item lookup unwraps to ErrNotFound. Every other failure mode
// (network, non-2xx status, malformed JSON) is reported uniformly as a
// wrapped error; callers upstream treat them all as "fetch failed" and do
// not distinguish causes.
//
// # URL Construction
//
// The client accepts several API address formats:
//
//   - "127.0.0.1:8640" → http://127.0.0.1:8640
//   - "https://catalog.example.com" → unchanged
//
// The scheme defaults to "http://" if not specified.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
//
// # Design Rationale
//
// The package is intentionally minimal:
//   - No caching or deduplication (the fetch package owns that)
//   - No retries (a new user action is the retry mechanism)
//   - No mutations (starcat is read-only)
package catalog
