package listing

import (
	"vanguard/core"
)

// AllCategories sentinel matching every category
const AllCategories = "All"

// Categories "All" followed by every distinct non-empty category in first seen order
func Categories(items []*core.UnifiedItem) []string {
	seen := map[string]bool{AllCategories: true}
	categories := []string{AllCategories}

	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}

		seen[item.Category] = true
		categories = append(categories, item.Category)
	}

	return categories
}
