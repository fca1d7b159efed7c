package engine

import (
	"fmt"
	"testing"

	"github.com/mthorley/starcat/internal/catalog"
)

// populate fills sel's cache with synthetic portions covering every index
// the current count implies. Record IDs encode their global display index.
func populate(sel Selection) Selection {
	if sel.Count == 0 {
		return sel
	}
	last := (sel.Count-1)/PortionSize + 1
	fetched := make(map[int][]catalog.Record, last)
	for index := 1; index <= last; index++ {
		beg := (index - 1) * PortionSize
		end := index * PortionSize
		if end > sel.Count {
			end = sel.Count
		}
		records := make([]catalog.Record, 0, end-beg)
		for i := beg; i < end; i++ {
			records = append(records, catalog.Record{ID: fmt.Sprintf("r-%d", i)})
		}
		fetched[index] = records
	}
	return sel.withPortions(fetched)
}

func TestSelection_PortionMappingProperty(t *testing.T) {
	counts := []int{1, 5, 9, 10, 11, 23, 95, 100, 101, 250}
	sizes := []int{5, 10, 25, 100}

	for _, count := range counts {
		for _, size := range sizes {
			sel := searched(size, "t", count)
			for page := 1; page <= sel.PagesCount(); page++ {
				cur := sel.withPage(page)
				beg, end := cur.Window()
				wantFirst := beg/PortionSize + 1
				wantLast := (end-1)/PortionSize + 1

				missing := cur.missingPortions()
				if len(missing) != wantLast-wantFirst+1 {
					t.Fatalf("count=%d size=%d page=%d: missing=%v, want %d..%d",
						count, size, page, missing, wantFirst, wantLast)
				}
				for i, index := range missing {
					if index != wantFirst+i {
						t.Fatalf("count=%d size=%d page=%d: missing=%v, want %d..%d",
							count, size, page, missing, wantFirst, wantLast)
					}
				}
			}
		}
	}
}

func TestSelection_DisplaySliceCoversWindow(t *testing.T) {
	counts := []int{1, 9, 23, 101}
	sizes := []int{5, 10, 25, 100}

	for _, count := range counts {
		for _, size := range sizes {
			sel := populate(searched(size, "t", count))
			for page := 1; page <= sel.PagesCount(); page++ {
				cur := sel.withPage(page)
				beg, end := cur.Window()
				slice := cur.DisplaySlice()
				if len(slice) != end-beg {
					t.Fatalf("count=%d size=%d page=%d: slice len %d, want %d",
						count, size, page, len(slice), end-beg)
				}
				for i, rec := range slice {
					want := fmt.Sprintf("r-%d", beg+i)
					if rec.ID != want {
						t.Fatalf("count=%d size=%d page=%d: slice[%d].ID = %q, want %q",
							count, size, page, i, rec.ID, want)
					}
				}
			}
		}
	}
}

func TestSelection_PageTwoOfTwentyThree(t *testing.T) {
	// count=23, pageSize=10: page 2 spans display indices [10, 20), which
	// is exactly portion 2.
	sel := searched(10, "t", 23).withPage(2)

	if got := sel.PagesCount(); got != 3 {
		t.Fatalf("PagesCount() = %d, want 3", got)
	}
	beg, end := sel.Window()
	if beg != 10 || end != 20 {
		t.Fatalf("Window() = [%d, %d), want [10, 20)", beg, end)
	}
	missing := sel.missingPortions()
	if len(missing) != 1 || missing[0] != 2 {
		t.Fatalf("missingPortions() = %v, want [2]", missing)
	}
}

func TestSelection_CountZero(t *testing.T) {
	sel := searched(10, "t", 0)

	if got := sel.PagesCount(); got != 0 {
		t.Fatalf("PagesCount() = %d, want 0", got)
	}
	if missing := sel.missingPortions(); missing != nil {
		t.Fatalf("missingPortions() = %v, want none", missing)
	}
	if slice := sel.DisplaySlice(); len(slice) != 0 {
		t.Fatalf("DisplaySlice() = %v, want empty", slice)
	}
	if sel.Page != 1 {
		t.Fatalf("Page = %d, want 1", sel.Page)
	}
}

func TestSelection_DeriveDoesNotMutate(t *testing.T) {
	orig := populate(searched(10, "t", 23))

	derived := orig.withPage(2).withPageSize(5).withPortions(map[int][]catalog.Record{
		9: {{ID: "x"}},
	})

	if orig.Page != 1 || orig.PageSize != 10 {
		t.Fatalf("original mutated: page=%d size=%d", orig.Page, orig.PageSize)
	}
	if _, ok := orig.portions[9]; ok {
		t.Fatal("original portion cache gained a key from a derived state")
	}
	if derived.Page != 1 || derived.PageSize != 5 {
		t.Fatalf("derived = page %d size %d, want page 1 size 5", derived.Page, derived.PageSize)
	}
}

func TestSelection_ShortFinalPortionTolerated(t *testing.T) {
	// Server claims 23 matches but ships only 1 record in portion 3.
	sel := searched(10, "t", 23).withPortions(map[int][]catalog.Record{
		3: {{ID: "r-20"}},
	}).withPage(3)

	slice := sel.DisplaySlice()
	if len(slice) != 1 || slice[0].ID != "r-20" {
		t.Fatalf("DisplaySlice() = %v, want the single shipped record", slice)
	}
}

func TestSelection_InitialAndFailed(t *testing.T) {
	init := initial(25)
	if !init.Initial || init.Err || init.PageSize != 25 {
		t.Fatalf("initial(25) = %+v", init)
	}

	bad := failed(25)
	if !bad.Err || bad.Initial || bad.PageSize != 25 {
		t.Fatalf("failed(25) = %+v", bad)
	}
}
