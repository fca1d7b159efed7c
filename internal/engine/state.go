package engine

import (
	"github.com/mthorley/starcat/internal/catalog"
)

// PortionSize is the fixed chunk width the catalog API serves. The server
// owns this value; the client cannot change it.
const PortionSize = 10

// Selection is an immutable snapshot of what the user is currently browsing:
// the search term, client page and page size, total match count, and every
// portion fetched so far for the term. Published Selections are never
// mutated; each action derives a fresh value from the previous one.
type Selection struct {
	// PageSize is the client-chosen page width. Always meaningful, even in
	// error and initial states.
	PageSize int

	// Term is the search term currently being browsed.
	Term string

	// Page is the current 1-based client page.
	Page int

	// Count is the total number of records matching Term. Only meaningful
	// when both Err and Initial are false.
	Count int

	// Err marks a state produced by a failed fetch or a rejected action.
	// Consumers must not read Term, Page, Count, or derived values.
	Err bool

	// Initial marks the placeholder state before any search has completed.
	Initial bool

	// portions maps 1-based portion index to that portion's records, scoped
	// to Term. Shared between derived Selections and never mutated after
	// publication; withPortions builds a fresh map.
	portions map[int][]catalog.Record
}

// initial is the placeholder published before the first search settles.
func initial(pageSize int) Selection {
	return Selection{PageSize: pageSize, Page: 1, Initial: true}
}

// failed derives an error state. Only the page size survives.
func failed(pageSize int) Selection {
	return Selection{PageSize: pageSize, Page: 1, Err: true}
}

// searched is the state right after a term's first portion settles: page 1
// of a fresh portion scope.
func searched(pageSize int, term string, count int) Selection {
	return Selection{
		PageSize: pageSize,
		Term:     term,
		Page:     1,
		Count:    count,
		portions: map[int][]catalog.Record{},
	}
}

func (s Selection) withPage(page int) Selection {
	next := s
	next.Page = page
	return next
}

func (s Selection) withPageSize(size int) Selection {
	next := s
	next.PageSize = size
	next.Page = 1
	return next
}

// withPortions merges freshly fetched portions into a copy of the cache.
func (s Selection) withPortions(fetched map[int][]catalog.Record) Selection {
	next := s
	merged := make(map[int][]catalog.Record, len(s.portions)+len(fetched))
	for index, records := range s.portions {
		merged[index] = records
	}
	for index, records := range fetched {
		merged[index] = records
	}
	next.portions = merged
	return next
}

// PagesCount returns the number of client pages for the current count and
// page size. Zero when the term matched nothing.
func (s Selection) PagesCount() int {
	if s.Count <= 0 || s.PageSize <= 0 {
		return 0
	}
	return (s.Count + s.PageSize - 1) / s.PageSize
}

// Window returns the half-open display-index range [beg, end) covered by the
// current page over the full result list.
func (s Selection) Window() (beg, end int) {
	beg = s.PageSize * (s.Page - 1)
	end = s.PageSize * s.Page
	if end > s.Count {
		end = s.Count
	}
	return beg, end
}

// portionRange maps a non-empty display window to the closed range of
// 1-based portion indices that cover it.
func portionRange(beg, end int) (first, last int) {
	return beg/PortionSize + 1, (end-1)/PortionSize + 1
}

// missingPortions lists the portions the current page needs that are not yet
// cached, in ascending order.
func (s Selection) missingPortions() []int {
	if s.Count == 0 {
		return nil
	}
	beg, end := s.Window()
	first, last := portionRange(beg, end)
	var missing []int
	for i := first; i <= last; i++ {
		if _, ok := s.portions[i]; !ok {
			missing = append(missing, i)
		}
	}
	return missing
}

// DisplaySlice returns the records visible on the current page, in order.
// Valid only on a non-error, non-initial Selection whose page window is
// fully cached; the engine only ever publishes such states.
func (s Selection) DisplaySlice() []catalog.Record {
	if s.Count == 0 {
		return nil
	}
	beg, end := s.Window()
	first, last := portionRange(beg, end)
	joined := make([]catalog.Record, 0, (last-first+1)*PortionSize)
	for i := first; i <= last; i++ {
		joined = append(joined, s.portions[i]...)
	}
	lo := beg - PortionSize*(first-1)
	hi := end - PortionSize*(first-1)
	// Tolerate a short final portion from a misbehaving server.
	if hi > len(joined) {
		hi = len(joined)
	}
	if lo > hi {
		lo = hi
	}
	return joined[lo:hi]
}
