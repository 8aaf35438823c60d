package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		perPage int
		orphans int
		want    int
	}{
		{name: "exact fit", total: 10, perPage: 5, orphans: 0, want: 2},
		{name: "remainder adds a page", total: 11, perPage: 5, orphans: 0, want: 3},
		{name: "orphans absorbed into last page", total: 7, perPage: 5, orphans: 2, want: 1},
		{name: "leftover beyond orphans keeps its page", total: 8, perPage: 5, orphans: 2, want: 2},
		{name: "fewer items than one page", total: 3, perPage: 5, orphans: 0, want: 1},
		{name: "empty catalog", total: 0, perPage: 5, orphans: 0, want: 1},
		{name: "orphans exceed total", total: 2, perPage: 5, orphans: 4, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numPages(tt.total, tt.perPage, tt.orphans))
		})
	}
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		perPage   int
		orphans   int
		page      int
		wantStart int
		wantEnd   int
	}{
		{name: "first of two pages", total: 10, perPage: 5, orphans: 0, page: 1, wantStart: 0, wantEnd: 5},
		{name: "second of two pages", total: 10, perPage: 5, orphans: 0, page: 2, wantStart: 5, wantEnd: 10},
		{name: "single page absorbs orphans", total: 7, perPage: 5, orphans: 2, page: 1, wantStart: 0, wantEnd: 7},
		{name: "last page takes the leftovers", total: 12, perPage: 5, orphans: 2, page: 2, wantStart: 5, wantEnd: 12},
		{name: "page past the end is empty", total: 4, perPage: 5, orphans: 0, page: 3, wantStart: 4, wantEnd: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := pageBounds(tt.total, tt.perPage, tt.orphans, tt.page)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

// The packing must cover every item exactly once, whatever the knobs.
func TestPageBoundsPartitionCatalog(t *testing.T) {
	for total := 0; total <= 12; total++ {
		for perPage := 1; perPage <= 6; perPage++ {
			for orphans := 0; orphans <= 3; orphans++ {
				covered := 0
				pages := numPages(total, perPage, orphans)
				for page := 1; page <= pages; page++ {
					start, end := pageBounds(total, perPage, orphans, page)
					assert.Equal(t, covered, start,
						"gap at total=%d perPage=%d orphans=%d page=%d", total, perPage, orphans, page)
					covered = end
				}
				assert.Equal(t, total, covered,
					"items dropped at total=%d perPage=%d orphans=%d", total, perPage, orphans)
			}
		}
	}
}
