package fetch

import (
	"context"
	"sync"

	"github.com/mthorley/starcat/internal/catalog"
)

// ItemSource issues the actual network request for one full record.
// Implemented by *catalog.Client.
type ItemSource interface {
	FetchItem(ctx context.Context, id string) (catalog.Record, error)
}

type itemEntry struct {
	done   chan struct{}
	record catalog.Record
	err    error
}

// Items deduplicates and caches single-record lookups by id. A record never
// depends on the search term or paging, so successes are retained for the
// life of the process; failures are evicted so the next call retries.
type Items struct {
	source ItemSource

	mu    sync.Mutex
	table map[string]*itemEntry
}

// NewItems builds an item fetcher backed by source.
func NewItems(source ItemSource) *Items {
	return &Items{
		source: source,
		table:  make(map[string]*itemEntry),
	}
}

// Fetch returns the record for id, reusing a pending or settled entry when
// one exists.
func (i *Items) Fetch(ctx context.Context, id string) (catalog.Record, error) {
	i.mu.Lock()
	if entry, ok := i.table[id]; ok {
		i.mu.Unlock()
		select {
		case <-entry.done:
			return entry.record, entry.err
		case <-ctx.Done():
			return catalog.Record{}, ctx.Err()
		}
	}
	entry := &itemEntry{done: make(chan struct{})}
	i.table[id] = entry
	i.mu.Unlock()

	entry.record, entry.err = i.source.FetchItem(ctx, id)
	close(entry.done)

	if entry.err != nil {
		i.mu.Lock()
		if current, ok := i.table[id]; ok && current == entry {
			delete(i.table, id)
		}
		i.mu.Unlock()
	}
	return entry.record, entry.err
}
