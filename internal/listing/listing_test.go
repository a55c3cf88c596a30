package listing

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"vanguard/core"
	"vanguard/pkg/number"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCategories = []string{"Equity", "Crypto", "Bonds", "equity", ""}
	testTimes      = []string{
		"2024-01-01T00:00:00Z",
		"2024-02-01T00:00:00Z",
		"2024-02-01T00:00:00Z",
		"2023-12-31 23:59:59",
		"",
		"yesterday",
	}
)

// randomRecords deterministic records for seed, source ids are unique per kind
func randomRecords(seed int64, nAssets, nCoins int) ([]*core.RawAssetRecord, []*core.RawCoinRecord) {
	r := rand.New(rand.NewSource(seed))

	assets := make([]*core.RawAssetRecord, 0, nAssets)
	for i := 0; i < nAssets; i++ {
		assets = append(assets, &core.RawAssetRecord{
			ID:            int64(i + 1),
			Name:          fmt.Sprintf("Fund %d", r.Intn(100)),
			Category:      testCategories[r.Intn(len(testCategories))],
			MinInvestment: decimal.NewFromInt(int64(r.Intn(10000))),
			IsActive:      r.Intn(2) == 0,
			CreatedAt:     testTimes[r.Intn(len(testTimes))],
		})
	}

	coins := make([]*core.RawCoinRecord, 0, nCoins)
	for i := 0; i < nCoins; i++ {
		coins = append(coins, &core.RawCoinRecord{
			ID:        int64(i + 1),
			Name:      fmt.Sprintf("Coin %d", r.Intn(100)),
			Category:  testCategories[r.Intn(len(testCategories))],
			Price:     decimal.NewFromInt(int64(r.Intn(100))),
			Overview:  "fund of coins",
			IsActive:  r.Intn(2) == 0,
			CreatedAt: testTimes[r.Intn(len(testTimes))],
		})
	}

	return assets, coins
}

func sameItems(a, b []*core.UnifiedItem) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestNormalizeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every record becomes exactly one item", prop.ForAll(
		func(seed int64, nAssets, nCoins int) bool {
			assets, coins := randomRecords(seed, nAssets, nCoins)
			return len(Normalize(assets, coins)) == nAssets+nCoins
		},
		gen.Int64(),
		gen.IntRange(0, 30),
		gen.IntRange(0, 30),
	))

	properties.Property("ids are unique across kinds", prop.ForAll(
		func(seed int64, nAssets, nCoins int) bool {
			assets, coins := randomRecords(seed, nAssets, nCoins)
			seen := map[string]bool{}
			for _, item := range Normalize(assets, coins) {
				if seen[item.ID] {
					return false
				}
				seen[item.ID] = true
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 30),
		gen.IntRange(0, 30),
	))

	properties.Property("items are sorted newest first", prop.ForAll(
		func(seed int64, nAssets, nCoins int) bool {
			assets, coins := randomRecords(seed, nAssets, nCoins)
			items := Normalize(assets, coins)
			for i := 1; i < len(items); i++ {
				if sortKey(items[i-1].CreatedAt) < sortKey(items[i].CreatedAt) {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(0, 30),
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFilterProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	queries := gen.OneConstOf(
		Query{},
		Query{Term: "fund"},
		Query{Term: "COIN 1"},
		Query{Category: "equity"},
		Query{Category: AllCategories},
		Query{Kind: core.KindCoin},
		Query{Active: ActiveOnly},
		Query{Active: ActiveInactive, Category: "Bonds"},
	)

	properties.Property("filtering twice equals filtering once", prop.ForAll(
		func(seed int64, q Query) bool {
			assets, coins := randomRecords(seed, 20, 20)
			items := Normalize(assets, coins)
			once := Filter(items, q)
			return sameItems(once, Filter(once, q))
		},
		gen.Int64(),
		queries,
	))

	properties.Property("filter order does not matter", prop.ForAll(
		func(seed int64, q1, q2 Query) bool {
			assets, coins := randomRecords(seed, 20, 20)
			items := Normalize(assets, coins)
			return sameItems(Filter(Filter(items, q1), q2), Filter(Filter(items, q2), q1))
		},
		gen.Int64(),
		queries,
		queries,
	))

	properties.Property("the filtered result is an ordered subsequence", prop.ForAll(
		func(seed int64, q Query) bool {
			assets, coins := randomRecords(seed, 20, 20)
			items := Normalize(assets, coins)
			j := 0
			for _, item := range Filter(items, q) {
				for j < len(items) && items[j] != item {
					j++
				}
				if j == len(items) {
					return false
				}
				j++
			}
			return true
		},
		gen.Int64(),
		queries,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPaginateProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("pages cover the collection exactly once", prop.ForAll(
		func(n, perPage int) bool {
			assets, _ := randomRecords(int64(n), n, 0)
			items := Normalize(assets, nil)

			var joined []*core.UnifiedItem
			pages := TotalPages(len(items), perPage)
			for page := 1; page <= pages; page++ {
				p := Paginate(items, page, perPage)
				if len(p.Items) > perPage || p.TotalPages != pages {
					return false
				}
				joined = append(joined, p.Items...)
			}

			return sameItems(joined, items)
		},
		gen.IntRange(0, 60),
		gen.IntRange(1, 15),
	))

	properties.Property("clamped pages are always in range", prop.ForAll(
		func(page, total int) bool {
			p := ClampPage(page, total)
			return p >= 1 && p <= total
		},
		gen.IntRange(-10, 50),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestApplyPatchProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a patch only touches its target", prop.ForAll(
		func(seed int64, pick int, remove bool) bool {
			assets, coins := randomRecords(seed, 8, 8)
			items := Normalize(assets, coins)
			snapshot := append([]*core.UnifiedItem(nil), items...)
			target := items[pick%len(items)]
			wasActive := target.IsActive

			active := !target.IsActive
			m, err := ApplyPatch(items, target.ID, core.Patch{IsActive: &active, Remove: remove})
			if err != nil {
				return false
			}

			if !sameItems(m.Previous, snapshot) || target.IsActive != wasActive {
				return false
			}

			for _, item := range m.Applied {
				if item.ID == target.ID {
					if remove || item == target || item.IsActive != active {
						return false
					}
					continue
				}

				if IndexOf(snapshot, item.ID) < 0 || snapshot[IndexOf(snapshot, item.ID)] != item {
					return false
				}
			}

			if remove {
				return len(m.Applied) == len(items)-1
			}
			return len(m.Applied) == len(items)
		},
		gen.Int64(),
		gen.IntRange(0, 100),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNormalizeMapsRecords(t *testing.T) {
	assets := []*core.RawAssetRecord{{
		ID:            7,
		Name:          "Tesla Growth",
		Category:      "Equity",
		MinInvestment: decimal.RequireFromString("1234.50"),
		Risk:          core.RiskHigh,
		IsActive:      true,
		CreatedBy:     "3",
		CreatedAt:     "2024-03-01T10:00:00Z",
	}}
	coins := []*core.RawCoinRecord{{
		ID:        7,
		Name:      "Solar",
		Price:     decimal.NewFromInt(2),
		Metrics:   core.Metrics{Blockchain: "Ethereum"},
		CreatedAt: "2024-03-02T10:00:00Z",
	}}

	items := Normalize(assets, coins)
	require.Len(t, items, 2)

	coin, asset := items[0], items[1]
	assert.Equal(t, "coin:7", coin.ID)
	assert.Equal(t, core.KindCoin, coin.Kind)
	require.NotNil(t, coin.Coin)
	assert.Nil(t, coin.Asset)
	assert.Equal(t, "Ethereum", coin.Coin.Metrics.Blockchain)

	assert.Equal(t, "asset:7", asset.ID)
	assert.Equal(t, int64(7), asset.SourceID)
	require.NotNil(t, asset.Asset)
	assert.Equal(t, "1234.5", asset.Asset.MinInvestment.String())
	assert.Equal(t, "3", asset.Raw.Owner())
	assert.True(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Equal(asset.CreatedAt))
}

func TestNormalizeKeepsOrderOnTies(t *testing.T) {
	assets := []*core.RawAssetRecord{{ID: 1, CreatedAt: "bad"}, {ID: 2}}
	coins := []*core.RawCoinRecord{{ID: 1}, {ID: 2, CreatedAt: "2024-01-01T00:00:00Z"}}

	var ids []string
	for _, item := range Normalize(assets, coins) {
		ids = append(ids, item.ID)
	}

	assert.Equal(t, []string{"coin:2", "asset:1", "asset:2", "coin:1"}, ids)
}

func TestNormalizeSkipsNilRecords(t *testing.T) {
	items := Normalize(
		[]*core.RawAssetRecord{nil, {ID: 1}, nil},
		[]*core.RawCoinRecord{nil, {ID: 1}},
	)

	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEqual(t, int64(0), item.SourceID)
	}
	assert.Equal(t, -1, IndexOf(items, "asset:0"))
	assert.Equal(t, -1, IndexOf(items, "coin:0"))
}

func TestParseTime(t *testing.T) {
	assert.True(t, ParseTime("").IsZero())
	assert.True(t, ParseTime("not a date").IsZero())
	assert.Equal(t, 2024, ParseTime("2024-05-06T07:08:09+02:00").Year())
	assert.Equal(t, 5, ParseTime("2024-05-06T07:08:09+02:00").Hour())
}

func TestCategories(t *testing.T) {
	items := []*core.UnifiedItem{
		{Category: "Equity"},
		{Category: ""},
		{Category: "Crypto"},
		{Category: "Equity"},
		{Category: "All"},
	}

	assert.Equal(t, []string{"All", "Equity", "Crypto"}, Categories(items))
	assert.Equal(t, []string{"All"}, Categories(nil))
}

func TestFilter(t *testing.T) {
	items := []*core.UnifiedItem{
		{ID: "asset:1", Kind: core.KindAsset, Name: "Tesla Growth", Category: "Equity", IsActive: true},
		{ID: "coin:1", Kind: core.KindCoin, Name: "Solar", Category: "Crypto", Overview: "green energy token"},
		{ID: "asset:2", Kind: core.KindAsset, Name: "Bond Ladder", Category: "Bonds", Slug: "bond-ladder", IsActive: true},
	}

	ids := func(items []*core.UnifiedItem) []string {
		out := []string{}
		for _, item := range items {
			out = append(out, item.ID)
		}
		return out
	}

	cases := []struct {
		name  string
		query Query
		want  []string
	}{
		{"empty", Query{}, []string{"asset:1", "coin:1", "asset:2"}},
		{"term on name", Query{Term: "  tesla "}, []string{"asset:1"}},
		{"term on overview", Query{Term: "ENERGY"}, []string{"coin:1"}},
		{"term on slug", Query{Term: "ladder"}, []string{"asset:2"}},
		{"category ignores case", Query{Category: "equity"}, []string{"asset:1"}},
		{"all categories", Query{Category: "All"}, []string{"asset:1", "coin:1", "asset:2"}},
		{"kind", Query{Kind: core.KindAsset}, []string{"asset:1", "asset:2"}},
		{"inactive", Query{Active: ActiveInactive}, []string{"coin:1"}},
		{"combined", Query{Kind: core.KindAsset, Active: ActiveOnly, Term: "bond"}, []string{"asset:2"}},
		{"no match", Query{Term: "gold"}, []string{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ids(Filter(items, c.query)))
		})
	}
}

func TestPaginate(t *testing.T) {
	assets, _ := randomRecords(1, 5, 0)
	items := Normalize(assets, nil)

	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 3, TotalPages(5, 2))

	p := Paginate(items, 3, 2)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 5, p.Total)
	assert.Len(t, p.Items, 1)

	assert.Empty(t, Paginate(items, 4, 2).Items)
	assert.Empty(t, Paginate(items, 0, 2).Items)
	assert.Empty(t, Paginate(nil, 1, 2).Items)

	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 3, ClampPage(9, 3))

	assert.Panics(t, func() { Paginate(items, 1, 0) })
	assert.Panics(t, func() { TotalPages(1, -1) })
}

func TestApplyPatch(t *testing.T) {
	assets, coins := randomRecords(2, 2, 2)
	items := Normalize(assets, coins)

	_, err := ApplyPatch(items, "asset:99", core.Patch{Remove: true})
	assert.True(t, errors.Is(err, core.ErrListingNotFound))

	_, err = ApplyPatch(items, "asset:1", core.Patch{Coin: &core.CoinPayload{}})
	assert.True(t, errors.Is(err, core.ErrInvalidPatch))

	target, ok := Find(items, "coin:2")
	require.True(t, ok)

	wrongKind := *target
	wrongKind.Kind = core.KindAsset
	_, err = ApplyPatch(items, "coin:2", core.Patch{Replace: &wrongKind})
	assert.True(t, errors.Is(err, core.ErrInvalidPatch))

	name := "Renamed"
	m, err := ApplyPatch(items, "coin:2", core.Patch{Name: &name})
	require.Nil(t, err)

	next, _ := Find(m.Applied, "coin:2")
	assert.Equal(t, "Renamed", next.Name)
	assert.NotEqual(t, "Renamed", target.Name)
	assert.True(t, next.Coin == target.Coin)

	replaced := *target
	replaced.Raw = nil
	replaced.Overview = "new"
	m, err = ApplyPatch(items, "coin:2", core.Patch{Replace: &replaced})
	require.Nil(t, err)

	next, _ = Find(m.Applied, "coin:2")
	assert.Equal(t, "new", next.Overview)
	assert.Equal(t, target.Raw, next.Raw)
}

func TestScenarios(t *testing.T) {
	t.Run("newest first across kinds", func(t *testing.T) {
		items := Normalize(
			[]*core.RawAssetRecord{{ID: 1, CreatedAt: "2025-01-01"}, {ID: 2, CreatedAt: "2025-02-01"}},
			[]*core.RawCoinRecord{{ID: 5, CreatedAt: "2025-03-01"}},
		)

		require.Len(t, items, 3)
		assert.Equal(t, "coin:5", items[0].ID)
		assert.Equal(t, "asset:2", items[1].ID)
		assert.Equal(t, "asset:1", items[2].ID)
	})

	t.Run("category filter", func(t *testing.T) {
		items := Normalize([]*core.RawAssetRecord{
			{ID: 1, Category: "Equity"},
			{ID: 2, Category: "ETF"},
			{ID: 3, Category: "Equity"},
		}, nil)

		filtered := Filter(items, Query{Category: "Equity"})
		require.Len(t, filtered, 2)
		for _, item := range filtered {
			assert.Equal(t, core.KindAsset, item.Kind)
		}
	})

	t.Run("search is trimmed and ignores case", func(t *testing.T) {
		items := Normalize(nil, []*core.RawCoinRecord{{ID: 1, Name: "Bitcoin (BTC)"}})
		assert.Len(t, Filter(items, Query{Term: " bitcoin "}), 1)
	})

	t.Run("25 items over pages of 10", func(t *testing.T) {
		assets, _ := randomRecords(25, 25, 0)
		items := Normalize(assets, nil)

		first := Paginate(items, 1, 10)
		assert.Len(t, first.Items, 10)
		assert.Equal(t, 3, first.TotalPages)
		assert.Len(t, Paginate(items, 3, 10).Items, 5)
	})

	t.Run("string numerics compare as numbers", func(t *testing.T) {
		price := number.Coerce("1234.50")
		assert.True(t, price.Equal(decimal.RequireFromString("1234.5")))
		assert.True(t, price.GreaterThan(decimal.NewFromInt(1000)))
	})
}

func TestRestore(t *testing.T) {
	assets, coins := randomRecords(3, 3, 0)
	items := Normalize(assets, coins)
	require.Len(t, items, 3)

	ids := func(items []*core.UnifiedItem) []string {
		out := []string{}
		for _, item := range items {
			out = append(out, item.ID)
		}
		return out
	}

	target := items[1]

	// removed by a failed mutation, another item changed meanwhile
	removed, err := ApplyPatch(items, target.ID, core.Patch{Remove: true})
	require.Nil(t, err)
	name := "Other"
	other, err := ApplyPatch(removed.Applied, items[2].ID, core.Patch{Name: &name})
	require.Nil(t, err)

	restored := Restore(other.Applied, removed.Previous, target.ID)
	assert.Equal(t, ids(items), ids(restored))
	assert.True(t, restored[1] == target)
	assert.Equal(t, "Other", restored[2].Name)

	// patched target goes back to the old pointer
	active := !target.IsActive
	toggled, err := ApplyPatch(items, target.ID, core.Patch{IsActive: &active})
	require.Nil(t, err)
	restored = Restore(toggled.Applied, toggled.Previous, target.ID)
	assert.True(t, restored[1] == target)
	assert.True(t, restored[0] == items[0])

	// removing the head re-inserts it first
	head, err := ApplyPatch(items, items[0].ID, core.Patch{Remove: true})
	require.Nil(t, err)
	assert.Equal(t, ids(items), ids(Restore(head.Applied, head.Previous, items[0].ID)))

	// an item unknown to previous is dropped
	assert.Equal(t, ids(items[1:]), ids(Restore(items, items[1:], items[0].ID)))
}
