package engine

import (
	"context"
	"log"
	"sync"

	"github.com/mthorley/starcat/internal/catalog"
	"github.com/mthorley/starcat/internal/fetch"
)

// DefaultPageSize is used when the caller supplies no page size.
const DefaultPageSize = 10

// Engine owns the current Selection, accepts actions, resolves the portions
// each action needs, and publishes a fresh Selection to every subscriber.
//
// Actions are serialized by a monotonically increasing sequence number: each
// dispatch claims the next sequence, and a resolution publishes only if its
// sequence is still the highest claimed. A slow action superseded by a newer
// one settles quietly and its result is dropped, never published.
type Engine struct {
	portions *fetch.Portions

	// inflight counts action goroutines still running, including ones
	// whose results end up superseded and dropped.
	inflight sync.WaitGroup

	mu      sync.Mutex
	cur     Selection
	seq     uint64
	subs    map[int]chan Selection
	nextSub int
	closed  bool
}

// New builds an Engine over source and kicks off the implicit empty-term
// search. Subscribers see the initial placeholder until that search settles.
func New(source fetch.PortionSource, pageSize int) *Engine {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	e := &Engine{
		portions: fetch.NewPortions(source),
		cur:      initial(pageSize),
		subs:     make(map[int]chan Selection),
	}
	e.Search("")
	return e
}

// Current returns the latest published Selection.
func (e *Engine) Current() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur
}

// Subscribe returns a channel that yields the current Selection immediately
// and every published Selection afterwards. A slow subscriber never blocks
// publication: the channel holds only the latest snapshot, older undelivered
// ones are replaced. The returned cancel func detaches the subscriber and
// closes the channel.
func (e *Engine) Subscribe() (<-chan Selection, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan Selection, 1)
	if e.closed {
		close(ch)
		return ch, func() {}
	}
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	ch <- e.cur

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Close stops publication and closes all subscriber channels. In-flight
// resolutions settle quietly without publishing.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
}

// Search starts browsing term from page 1. Always allowed, including from
// error and initial states; the portion cache is discarded because cached
// portions are only meaningful within one term's result list.
func (e *Engine) Search(term string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.seq++
	seq := e.seq
	pageSize := e.cur.PageSize
	e.portions.Reset()
	e.mu.Unlock()

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		first, err := e.portions.Fetch(context.Background(), 1, term)
		if err != nil {
			log.Printf("search %q: portion 1 fetch failed: %v", term, err)
			e.publish(seq, failed(pageSize))
			return
		}
		sel := searched(pageSize, term, first.Count)
		if first.Count > 0 {
			sel = sel.withPortions(map[int][]catalog.Record{1: first.Records})
		}
		e.resolve(seq, pageSize, sel)
	}()
}

// GoToPage moves to a client page of the current term. Rejected from error
// and initial states. A page beyond the last valid page falls back to page 1
// (not the last page); a page below 1 likewise.
func (e *Engine) GoToPage(page int) {
	e.dispatch(func(base Selection) (Selection, bool) {
		if page < 1 || page > base.PagesCount() {
			page = 1
		}
		return base.withPage(page), true
	})
}

// SetPageSize changes the client page width and returns to page 1. The
// portion cache stays valid: only the page geometry changed, not the term.
func (e *Engine) SetPageSize(size int) {
	e.dispatch(func(base Selection) (Selection, bool) {
		if size < 1 {
			return Selection{}, false
		}
		return base.withPageSize(size), true
	})
}

// dispatch claims the next sequence number, applies derive to the latest
// published state, and resolves the result in the background. Actions other
// than Search are rejected outright from error and initial states.
func (e *Engine) dispatch(derive func(base Selection) (Selection, bool)) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.seq++
	seq := e.seq
	base := e.cur
	e.mu.Unlock()

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		if base.Err || base.Initial {
			e.publish(seq, failed(base.PageSize))
			return
		}
		next, ok := derive(base)
		if !ok {
			e.publish(seq, failed(base.PageSize))
			return
		}
		e.resolve(seq, base.PageSize, next)
	}()
}

// resolve fetches the portions sel's page still needs, concurrently and
// fail-fast, merges them, and publishes. With nothing missing it publishes
// straight from cache. An error state carries prevSize, the page size of
// the state the action was applied to: a failed action never takes effect,
// so a failed size change must not leak the size that was never adopted.
func (e *Engine) resolve(seq uint64, prevSize int, sel Selection) {
	missing := sel.missingPortions()
	if len(missing) == 0 {
		e.publish(seq, sel)
		return
	}

	type result struct {
		index   int
		portion catalog.Portion
		err     error
	}
	results := make(chan result, len(missing))
	for _, index := range missing {
		go func(index int) {
			portion, err := e.portions.Fetch(context.Background(), index, sel.Term)
			results <- result{index: index, portion: portion, err: err}
		}(index)
	}

	fetched := make(map[int][]catalog.Record, len(missing))
	for range missing {
		res := <-results
		if res.err != nil {
			// Fail fast; the channel is buffered so the
			// remaining fetches settle without a receiver.
			log.Printf("term %q: portion %d fetch failed: %v", sel.Term, res.index, res.err)
			e.publish(seq, failed(prevSize))
			return
		}
		fetched[res.index] = res.portion.Records
	}
	e.publish(seq, sel.withPortions(fetched))
}

// publish installs sel as the current state and fans it out, unless a newer
// action has been dispatched since seq was claimed.
func (e *Engine) publish(seq uint64, sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || seq != e.seq {
		return
	}
	e.cur = sel
	for _, ch := range e.subs {
		select {
		case ch <- sel:
		default:
			// Drop the undelivered older snapshot. Only publish
			// sends on subscriber channels, so after the drain the
			// buffer has room again.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- sel:
			default:
			}
		}
	}
}
