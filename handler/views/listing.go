package views

import (
	"vanguard/core"
	"vanguard/pkg/number"
	svc "vanguard/service/listing"

	"github.com/shopspring/decimal"
)

// Listing listing view
type Listing struct {
	*core.UnifiedItem
	// Display preformatted headline number, min investment or price
	Display   string `json:"display"`
	CanManage bool   `json:"can_manage"`
}

// Page one page of listings
type Page struct {
	Items      []*Listing `json:"items"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	Total      int        `json:"total"`
	Categories []string   `json:"categories"`
}

// ListingView render item for session
func ListingView(item *core.UnifiedItem, session *core.Session) *Listing {
	return &Listing{
		UnifiedItem: item,
		Display:     headline(item),
		CanManage:   session.CanManage(item),
	}
}

// PageView render a view snapshot
func PageView(snap svc.Snapshot, session *core.Session) *Page {
	items := make([]*Listing, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, ListingView(item, session))
	}

	return &Page{
		Items:      items,
		Page:       snap.Page,
		TotalPages: snap.TotalPages,
		Total:      snap.Total,
		Categories: snap.Categories,
	}
}

func headline(item *core.UnifiedItem) string {
	switch {
	case item.Asset != nil:
		return number.Display(decimal.NewNullDecimal(item.Asset.MinInvestment))
	case item.Coin != nil:
		return number.Display(decimal.NewNullDecimal(item.Coin.Price))
	default:
		return number.Placeholder
	}
}

// Removed answer of a delete
type Removed struct {
	ID       string    `json:"id"`
	Kind     core.Kind `json:"kind"`
	SourceID int64     `json:"source_id"`
}

// RemovedView id must already be validated
func RemovedView(id string) *Removed {
	kind, sourceID, _ := core.ParseItemID(id)
	return &Removed{ID: id, Kind: kind, SourceID: sourceID}
}
