package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mthorley/starcat/internal/catalog"
)

type itemCountingSource struct {
	mu    sync.Mutex
	calls map[string]int
	fail  bool
	gate  chan struct{}
}

func newItemCountingSource() *itemCountingSource {
	return &itemCountingSource{calls: map[string]int{}}
}

func (s *itemCountingSource) FetchItem(ctx context.Context, id string) (catalog.Record, error) {
	s.mu.Lock()
	s.calls[id]++
	gate := s.gate
	fail := s.fail
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if fail {
		return catalog.Record{}, errors.New("boom")
	}
	return catalog.Record{ID: id, Name: "record " + id}, nil
}

func (s *itemCountingSource) callsFor(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

func TestItems_ConcurrentCallersShareOneRequest(t *testing.T) {
	src := newItemCountingSource()
	src.gate = make(chan struct{})
	items := NewItems(src)

	const callers = 6
	records := make(chan catalog.Record, callers)
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			rec, err := items.Fetch(context.Background(), "p-7")
			records <- rec
			errs <- err
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(src.gate)

	for i := 0; i < callers; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("caller error: %v", err)
		}
		if rec := <-records; rec.ID != "p-7" {
			t.Fatalf("caller observed %+v", rec)
		}
	}
	if got := src.callsFor("p-7"); got != 1 {
		t.Fatalf("underlying requests = %d, want 1", got)
	}
}

func TestItems_SuccessCachedForProcessLifetime(t *testing.T) {
	src := newItemCountingSource()
	items := NewItems(src)

	for i := 0; i < 4; i++ {
		rec, err := items.Fetch(context.Background(), "p-1")
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if rec.Name != "record p-1" {
			t.Fatalf("fetch %d returned %+v", i, rec)
		}
	}
	if got := src.callsFor("p-1"); got != 1 {
		t.Fatalf("underlying requests = %d, want 1", got)
	}
}

func TestItems_FailureEvictsEntry(t *testing.T) {
	src := newItemCountingSource()
	src.fail = true
	items := NewItems(src)

	if _, err := items.Fetch(context.Background(), "p-2"); err == nil {
		t.Fatal("expected a fetch error")
	}

	src.mu.Lock()
	src.fail = false
	src.mu.Unlock()

	rec, err := items.Fetch(context.Background(), "p-2")
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if rec.ID != "p-2" {
		t.Fatalf("retry returned %+v", rec)
	}
	if got := src.callsFor("p-2"); got != 2 {
		t.Fatalf("underlying requests = %d, want 2", got)
	}
}
