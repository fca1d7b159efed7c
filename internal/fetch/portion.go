package fetch

import (
	"context"
	"sync"

	"github.com/mthorley/starcat/internal/catalog"
)

// PortionSource issues the actual network request for one portion.
// Implemented by *catalog.Client.
type PortionSource interface {
	FetchPortion(ctx context.Context, index int, term string) (catalog.Portion, error)
}

type portionKey struct {
	term  string
	index int
}

// portionEntry settles exactly once; portion and err are immutable after
// done is closed.
type portionEntry struct {
	done    chan struct{}
	portion catalog.Portion
	err     error
}

// Portions deduplicates and caches portion fetches. Concurrent calls for the
// same (term, index) share one in-flight request; successes are retained
// until the next Reset, failures are evicted so the next call retries.
type Portions struct {
	source PortionSource

	mu    sync.Mutex
	table map[portionKey]*portionEntry
}

// NewPortions builds a portion fetcher backed by source.
func NewPortions(source PortionSource) *Portions {
	return &Portions{
		source: source,
		table:  make(map[portionKey]*portionEntry),
	}
}

// Fetch returns the portion for (index, term), reusing a pending or settled
// entry when one exists. All callers sharing an entry observe the same
// result or the same failure.
func (p *Portions) Fetch(ctx context.Context, index int, term string) (catalog.Portion, error) {
	key := portionKey{term: term, index: index}

	p.mu.Lock()
	if entry, ok := p.table[key]; ok {
		p.mu.Unlock()
		select {
		case <-entry.done:
			return entry.portion, entry.err
		case <-ctx.Done():
			return catalog.Portion{}, ctx.Err()
		}
	}
	entry := &portionEntry{done: make(chan struct{})}
	p.table[key] = entry
	p.mu.Unlock()

	entry.portion, entry.err = p.source.FetchPortion(ctx, index, term)
	close(entry.done)

	if entry.err != nil {
		p.evict(key, entry)
	}
	return entry.portion, entry.err
}

// Reset discards every entry, pending or settled. Called when the search
// term changes; in-flight requests still settle for their current waiters
// but their results are never reused.
func (p *Portions) Reset() {
	p.mu.Lock()
	p.table = make(map[portionKey]*portionEntry)
	p.mu.Unlock()
}

// evict removes an entry only if it still owns its key, so a newer entry
// created after a Reset is never clobbered.
func (p *Portions) evict(key portionKey, entry *portionEntry) {
	p.mu.Lock()
	if current, ok := p.table[key]; ok && current == entry {
		delete(p.table, key)
	}
	p.mu.Unlock()
}
