package feed

import "strconv"

// PageResult is one page of an ordered sequence.
type PageResult[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_previous"`
}

// Paginate slices an already ordered sequence into the requested page. It
// never re-sorts and never fails: page numbers below 1 mean the first page,
// past the end they clamp to the last one. An empty sequence is a single
// empty page.
func Paginate[T any](items []T, pageSize, page int) PageResult[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	pageItems := make([]T, 0, end-start)
	pageItems = append(pageItems, items[start:end]...)

	return PageResult[T]{
		Items:      pageItems,
		Page:       page,
		TotalItems: len(items),
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// PageNumber parses a raw page query parameter. Absent or garbage values mean
// the first page; clamping to the last page is Paginate's job.
func PageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
