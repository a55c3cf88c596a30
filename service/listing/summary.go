package listing

import (
	"context"

	"vanguard/core"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Summarize dashboard numbers, the four lists are fetched concurrently
func Summarize(ctx context.Context, listings core.ListingStore, directory core.DirectoryStore) (*core.Summary, error) {
	var (
		assets    []*core.RawAssetRecord
		coins     []*core.RawCoinRecord
		customers []*core.Person
		staff     []*core.Person
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		assets, err = listings.ListAssets(ctx, 0, 0)
		return
	})

	g.Go(func() (err error) {
		coins, err = listings.ListCoins(ctx, 0, 0)
		return
	})

	g.Go(func() (err error) {
		customers, err = directory.ListCustomers(ctx)
		return
	})

	g.Go(func() (err error) {
		staff, err = directory.ListStaff(ctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &core.Summary{
		Assets:          len(assets),
		Coins:           len(coins),
		Customers:       len(customers),
		Staff:           len(staff),
		AssetTotal:      AssetTotal(assets),
		CoinMarketTotal: CoinMarketTotal(coins),
	}

	s.Allocation = []core.Allocation{
		{Name: "Assets", Value: s.AssetTotal},
		{Name: "Coins", Value: s.CoinMarketTotal},
	}

	return s, nil
}

// AssetTotal sum of minimum investments
func AssetTotal(assets []*core.RawAssetRecord) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.MinInvestment)
	}

	return total
}

// CoinMarketTotal sum of price x circulating supply, a missing or zero supply counts as 1
func CoinMarketTotal(coins []*core.RawCoinRecord) decimal.Decimal {
	total := decimal.Zero
	for _, c := range coins {
		supply := decimal.NewFromInt(1)
		if s := c.Metrics.CirculatingSupply; s.Valid && !s.Decimal.IsZero() {
			supply = s.Decimal
		}

		total = total.Add(c.Price.Mul(supply))
	}

	return total
}
