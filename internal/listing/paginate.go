package listing

import (
	"fmt"

	"vanguard/core"
)

// Page one page of a filtered collection
type Page struct {
	Items      []*core.UnifiedItem `json:"items"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Total      int                 `json:"total"`
}

// TotalPages max(1, ceil(n / perPage))
func TotalPages(n, perPage int) int {
	mustPerPage(perPage)

	pages := (n + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}

	return pages
}

// Paginate slice page (1-indexed) out of items. Pages outside
// [1, TotalPages] are empty, use ClampPage before calling to avoid that.
// perPage must be positive.
func Paginate(items []*core.UnifiedItem, page, perPage int) Page {
	p := Page{
		Items:      []*core.UnifiedItem{},
		Page:       page,
		TotalPages: TotalPages(len(items), perPage),
		Total:      len(items),
	}

	if page < 1 {
		return p
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return p
	}

	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	p.Items = items[start:end]
	return p
}

// ClampPage move page into [1, totalPages]
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}

	if page < 1 {
		page = 1
	}

	return page
}

func mustPerPage(perPage int) {
	if perPage <= 0 {
		panic(fmt.Sprintf("listing: perPage must be positive, got %d", perPage))
	}
}
