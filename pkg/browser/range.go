package browser

import "fmt"

// Range is the visible window of a paginated list.
type Range struct {
	Page    int  `json:"page" yaml:"page"`
	Start   int  `json:"start" yaml:"start"`       // 1-based index of the first shown item
	End     int  `json:"end" yaml:"end"`           // 1-based index of the last shown item
	Count   int  `json:"count" yaml:"count"`       // total items across all pages
	Pages   int  `json:"pages" yaml:"pages"`       // number of pages, at least 1
	HasPrev bool `json:"has_prev" yaml:"has_prev"`
	HasNext bool `json:"has_next" yaml:"has_next"`
}

// NewRange computes the window for a 1-based page of perPage items, of which shown
// were returned, out of count total.
// back is disabled on the first page, forward once the last item is in view.
func NewRange(page, perPage, count, shown int) Range {
	page = max(page, 1)
	offset := (page - 1) * perPage
	r := Range{Page: page, Count: count, Start: offset + 1, End: min(offset+shown, count)}
	if r.End < r.Start {
		r.Start = r.End
	}
	r.Pages = 1
	if perPage > 0 && count > 0 {
		r.Pages = (count + perPage - 1) / perPage
	}
	r.HasPrev = page > 1
	r.HasNext = r.End < count
	return r
}

// String formats the range as "start-end of count".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d of %d", r.Start, r.End, r.Count)
}
