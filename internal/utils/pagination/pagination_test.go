package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/altaerp/ledger_backend/internal/utils/pagination"
)

func TestParams_Disabled(t *testing.T) {
	p := pagination.Params{}
	assert.False(t, p.Enabled())
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 1, p.TotalPages(1000))
}

func TestParams_OffsetAndTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		totalCount int64
		wantOffset int
		wantPages  int
	}{
		{"first page", 1, 10, 35, 0, 4},
		{"third page", 3, 10, 35, 20, 4},
		{"exact division", 2, 10, 30, 10, 3},
		{"single row", 1, 10, 1, 0, 1},
		{"empty result still one page", 1, 10, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.Params{Page: tt.page, PageSize: tt.pageSize}
			assert.Equal(t, tt.wantOffset, p.Offset())
			assert.Equal(t, tt.wantPages, p.TotalPages(tt.totalCount))
		})
	}
}

func TestParams_WithDefaultSize(t *testing.T) {
	p := pagination.Params{Page: 2}.WithDefaultSize(20)
	assert.Equal(t, 20, p.PageSize)
	assert.True(t, p.Enabled())

	// An explicit size is never overridden, and no page means no pagination.
	assert.Equal(t, 5, pagination.Params{Page: 1, PageSize: 5}.WithDefaultSize(20).PageSize)
	assert.False(t, pagination.Params{}.WithDefaultSize(20).Enabled())
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, items, pagination.Slice(items, pagination.Params{}))
	assert.Equal(t, []int{3, 4}, pagination.Slice(items, pagination.Params{Page: 2, PageSize: 2}))
	assert.Equal(t, []int{5}, pagination.Slice(items, pagination.Params{Page: 3, PageSize: 2}))
	assert.Empty(t, pagination.Slice(items, pagination.Params{Page: 4, PageSize: 2}))
}
