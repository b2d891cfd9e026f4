package pagination

import "math"

// Params carries page/pageSize pagination inputs. A zero Page or PageSize
// means "no pagination": the caller receives the full result set and
// TotalPages reports 1.
type Params struct {
	Page     int
	PageSize int
}

// Enabled reports whether the caller asked for a specific page.
func (p Params) Enabled() bool {
	return p.Page > 0 && p.PageSize > 0
}

// WithDefaultSize fills in PageSize when a page was requested without one.
func (p Params) WithDefaultSize(size int) Params {
	if p.Page > 0 && p.PageSize <= 0 && size > 0 {
		p.PageSize = size
	}
	return p
}

// Offset returns the number of rows to skip: (page-1) * pageSize.
func (p Params) Offset() int {
	if !p.Enabled() {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceil(totalCount / pageSize), or 1 when pagination is
// disabled. An empty result set still reports one (empty) page.
func (p Params) TotalPages(totalCount int64) int {
	if !p.Enabled() || totalCount == 0 {
		return 1
	}
	return int(math.Ceil(float64(totalCount) / float64(p.PageSize)))
}

// Slice applies the pagination window to an in-memory result set.
func Slice[T any](items []T, p Params) []T {
	if !p.Enabled() {
		return items
	}
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
