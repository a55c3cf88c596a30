// Package listing unifies asset and coin listings into one sorted,
// filterable and paginated collection.
package listing

import (
	"sort"
	"strings"
	"time"

	"vanguard/core"

	"github.com/spf13/cast"
)

// Normalize map both collections into unified items, newest first.
// Records keep their relative order when created_at ties. Nil records are
// skipped, every non-nil record yields exactly one item.
func Normalize(assets []*core.RawAssetRecord, coins []*core.RawCoinRecord) []*core.UnifiedItem {
	items := make([]*core.UnifiedItem, 0, len(assets)+len(coins))

	for _, a := range assets {
		if a != nil {
			items = append(items, FromAsset(a))
		}
	}

	for _, c := range coins {
		if c != nil {
			items = append(items, FromCoin(c))
		}
	}

	SortNewest(items)
	return items
}

// FromAsset unified item of an asset record
func FromAsset(a *core.RawAssetRecord) *core.UnifiedItem {
	return &core.UnifiedItem{
		ID:         core.ItemID(core.KindAsset, a.ID),
		SourceID:   a.ID,
		Kind:       core.KindAsset,
		Name:       a.Name,
		Slug:       a.Slug,
		Category:   a.Category,
		Overview:   a.Overview,
		Risk:       a.Risk,
		IsActive:   a.IsActive,
		IsFeatured: a.IsFeatured,
		CreatedAt:  ParseTime(a.CreatedAt),
		UpdatedAt:  ParseTime(a.UpdatedAt),
		Asset: &core.AssetPayload{
			MinInvestment:  a.MinInvestment,
			ExpectedReturn: a.ExpectedReturn,
			Duration:       a.Duration,
		},
		Raw: a,
	}
}

// FromCoin unified item of a coin record
func FromCoin(c *core.RawCoinRecord) *core.UnifiedItem {
	return &core.UnifiedItem{
		ID:         core.ItemID(core.KindCoin, c.ID),
		SourceID:   c.ID,
		Kind:       core.KindCoin,
		Name:       c.Name,
		Slug:       c.Slug,
		Category:   c.Category,
		Overview:   c.Overview,
		Risk:       c.Risk,
		IsActive:   c.IsActive,
		IsFeatured: c.IsFeatured,
		CreatedAt:  ParseTime(c.CreatedAt),
		UpdatedAt:  ParseTime(c.UpdatedAt),
		Coin: &core.CoinPayload{
			Price:     c.Price,
			MarketCap: c.MarketCap,
			Hours:     c.Hours,
			Metrics:   c.Metrics,
		},
		Raw: c,
	}
}

// SortNewest stable sort by created_at, descending
func SortNewest(items []*core.UnifiedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return sortKey(items[i].CreatedAt) > sortKey(items[j].CreatedAt)
	})
}

// sortKey missing timestamps count as the unix epoch
func sortKey(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixMilli()
}

// ParseTime parse an api timestamp, zero when empty or malformed
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	t, err := cast.ToTimeE(s)
	if err != nil {
		return time.Time{}
	}

	return t.UTC()
}
