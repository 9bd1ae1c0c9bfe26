package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	tests := []struct {
		name           string
		items          []int
		page, size     int
		wantItems      []int
		wantTotalPages int
		wantNext       bool
	}{
		{name: "first page", items: items, page: 1, size: 5, wantItems: []int{1, 2, 3, 4, 5}, wantTotalPages: 3, wantNext: true},
		{name: "last partial page", items: items, page: 3, size: 5, wantItems: []int{11, 12}, wantTotalPages: 3},
		{name: "past the end", items: items, page: 4, size: 5, wantTotalPages: 3},
		{name: "page zero", items: items, page: 0, size: 5, wantTotalPages: 3},
		{name: "default size", items: items, page: 2, size: 0, wantItems: []int{6, 7, 8, 9, 10}, wantTotalPages: 3, wantNext: true},
		{name: "exact fit", items: items, page: 2, size: 6, wantItems: []int{7, 8, 9, 10, 11, 12}, wantTotalPages: 2},
		{name: "empty listing still has one page", items: nil, page: 1, size: 5, wantTotalPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.items, tt.page, tt.size)
			assert.Equal(t, tt.wantItems, p.Items)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
			assert.Equal(t, len(tt.items), p.Total)
			assert.Equal(t, tt.wantNext, p.HasNext())
		})
	}
}
