package report

import "testing"

// TestTotalPages tests the page count formula.
func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		n        int
		pageSize int
		want     int
	}{
		{"zero records", 0, 24, 0},
		{"one record", 1, 24, 1},
		{"exactly one page", 24, 24, 1},
		{"one over a page", 25, 24, 2},
		{"thirty records", 30, 24, 2},
		{"exactly two pages", 48, 24, 2},
		{"many pages", 1000, 24, 42},
		{"negative records", -5, 24, 0},
		{"zero page size", 10, 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := TotalPages(tt.n, tt.pageSize); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.n, tt.pageSize, got, tt.want)
			}
		})
	}
}

// TestPaginate tests that pages reconstruct the input exactly.
func TestPaginate(t *testing.T) {
	t.Parallel()

	t.Run("thirty records split 24/6", func(t *testing.T) {
		t.Parallel()

		pages := Paginate(30, 24)
		if len(pages) != 2 {
			t.Fatalf("len(pages) = %d, want 2", len(pages))
		}
		if pages[0].Start != 0 || pages[0].End != 24 {
			t.Errorf("page 1 = [%d,%d), want [0,24)", pages[0].Start, pages[0].End)
		}
		if pages[1].Start != 24 || pages[1].End != 30 {
			t.Errorf("page 2 = [%d,%d), want [24,30)", pages[1].Start, pages[1].End)
		}
	})

	t.Run("zero records yields no pages", func(t *testing.T) {
		t.Parallel()

		if pages := Paginate(0, 24); pages != nil {
			t.Errorf("Paginate(0, 24) = %v, want nil", pages)
		}
	})

	t.Run("ranges cover every position once in order", func(t *testing.T) {
		t.Parallel()

		for _, n := range []int{0, 1, 23, 24, 25, 48, 49, 100, 241} {
			pages := Paginate(n, 24)
			if len(pages) != TotalPages(n, 24) {
				t.Errorf("n=%d: len(pages) = %d, want %d", n, len(pages), TotalPages(n, 24))
			}

			next := 0
			for i, pr := range pages {
				if pr.Start != next {
					t.Errorf("n=%d page %d: Start = %d, want %d", n, i+1, pr.Start, next)
				}
				if pr.End <= pr.Start {
					t.Errorf("n=%d page %d: empty range [%d,%d)", n, i+1, pr.Start, pr.End)
				}
				next = pr.End
			}
			if next != n {
				t.Errorf("n=%d: pages end at %d, want %d", n, next, n)
			}
		}
	})
}
