package listing

import (
	"strings"

	"vanguard/core"
)

// ActiveFilter filter on is_active
type ActiveFilter string

const (
	ActiveAll      ActiveFilter = "all"
	ActiveOnly     ActiveFilter = "active"
	ActiveInactive ActiveFilter = "inactive"
)

// Query filters composed with AND, zero value matches everything
type Query struct {
	// Term free text over name, overview, slug and category
	Term string
	// Category exact match ignoring case, empty or "All" for no filter
	Category string
	// Kind empty for both kinds
	Kind   core.Kind
	Active ActiveFilter
}

// Filter keep the items matching q, order is preserved
func Filter(items []*core.UnifiedItem, q Query) []*core.UnifiedItem {
	term := strings.ToLower(strings.TrimSpace(q.Term))
	category := strings.ToLower(q.Category)
	if category == strings.ToLower(AllCategories) {
		category = ""
	}

	out := make([]*core.UnifiedItem, 0, len(items))
	for _, item := range items {
		if q.Kind != "" && item.Kind != q.Kind {
			continue
		}

		if !matchActive(item, q.Active) {
			continue
		}

		if category != "" && strings.ToLower(item.Category) != category {
			continue
		}

		if term != "" && !matchTerm(item, term) {
			continue
		}

		out = append(out, item)
	}

	return out
}

func matchActive(item *core.UnifiedItem, f ActiveFilter) bool {
	switch f {
	case ActiveOnly:
		return item.IsActive
	case ActiveInactive:
		return !item.IsActive
	default:
		return true
	}
}

func matchTerm(item *core.UnifiedItem, term string) bool {
	for _, field := range []string{item.Name, item.Overview, item.Slug, item.Category} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}
