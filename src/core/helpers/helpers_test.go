package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		perPage    int
		rawPage    string
		wantNumber int
		wantPages  int
		wantOffset int
	}{
		{name: "empty listing still has one page", total: 0, perPage: 10, rawPage: "", wantNumber: 1, wantPages: 1, wantOffset: 0},
		{name: "missing page lands on first", total: 25, perPage: 10, rawPage: "", wantNumber: 1, wantPages: 3, wantOffset: 0},
		{name: "middle page", total: 25, perPage: 10, rawPage: "2", wantNumber: 2, wantPages: 3, wantOffset: 10},
		{name: "exact multiple of page size", total: 20, perPage: 10, rawPage: "2", wantNumber: 2, wantPages: 2, wantOffset: 10},
		{name: "beyond last clamps to last", total: 25, perPage: 10, rawPage: "9", wantNumber: 3, wantPages: 3, wantOffset: 20},
		{name: "zero clamps to last", total: 25, perPage: 10, rawPage: "0", wantNumber: 3, wantPages: 3, wantOffset: 20},
		{name: "negative clamps to last", total: 25, perPage: 10, rawPage: "-4", wantNumber: 3, wantPages: 3, wantOffset: 20},
		{name: "garbage lands on first", total: 25, perPage: 10, rawPage: "two", wantNumber: 1, wantPages: 3, wantOffset: 0},
		{name: "remainder fills the last page", total: 13, perPage: 10, rawPage: "2", wantNumber: 2, wantPages: 2, wantOffset: 10},
		{name: "single page", total: 7, perPage: 10, rawPage: "1", wantNumber: 1, wantPages: 1, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(tt.total, tt.perPage, tt.rawPage)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.wantOffset, page.Offset)
			assert.Equal(t, tt.total, page.TotalItems)
		})
	}
}

func TestPageNavigation(t *testing.T) {
	first := Paginate(25, 10, "1")
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())
	assert.Equal(t, 2, first.NextNumber())

	middle := Paginate(25, 10, "2")
	assert.True(t, middle.HasPrev())
	assert.True(t, middle.HasNext())
	assert.Equal(t, 1, middle.PrevNumber())
	assert.Equal(t, 3, middle.NextNumber())

	last := Paginate(25, 10, "3")
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())

	assert.Equal(t, []int{1, 2, 3}, last.Range())
}

func TestPaginateLastPageWindow(t *testing.T) {
	// 13 items in pages of 10: the second page holds the 3 left over.
	page := Paginate(13, 10, "2")
	remaining := page.TotalItems - int64(page.Offset)
	assert.EqualValues(t, 3, remaining)
}
