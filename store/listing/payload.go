package listing

import (
	"encoding/json"

	"vanguard/core"

	"github.com/shopspring/decimal"
	"github.com/yiplee/structs"
)

type assetFields struct {
	InvestmentName string      `json:"investment_name"`
	Category       string      `json:"category"`
	MinInvestment  json.Number `json:"min_investment"`
	ExpectedReturn json.Number `json:"expected_return"`
	Duration       string      `json:"duration"`
	Overview       string      `json:"overview"`
	Risk           *string     `json:"risk"`
	IsFeatured     int         `json:"is_featured"`
	IsActive       int         `json:"is_active"`
}

type coinFields struct {
	CoinName          string       `json:"coin_name"`
	Category          string       `json:"category"`
	Price             json.Number  `json:"price"`
	Hours             int64        `json:"hours"`
	MarketCap         json.Number  `json:"market_cap"`
	Overview          string       `json:"overview"`
	CirculatingSupply *json.Number `json:"circulating_supply"`
	MaxSupply         *json.Number `json:"max_supply"`
	Blockchain        *string      `json:"blockchain"`
	Risk              *string      `json:"risk"`
	IsFeatured        int          `json:"is_featured"`
	IsActive          int          `json:"is_active"`
}

// UpdateFields PUT body of a fully edited item, numbers as numbers and flags as 0/1
func UpdateFields(item *core.UnifiedItem) map[string]interface{} {
	var v interface{}

	switch item.Kind {
	case core.KindCoin:
		coin := item.Coin
		if coin == nil {
			coin = &core.CoinPayload{}
		}

		v = coinFields{
			CoinName:          item.Name,
			Category:          item.Category,
			Price:             jsonNumber(coin.Price),
			Hours:             coin.Hours,
			MarketCap:         jsonNumber(coin.MarketCap),
			Overview:          item.Overview,
			CirculatingSupply: nullNumber(coin.Metrics.CirculatingSupply),
			MaxSupply:         nullNumber(coin.Metrics.MaxSupply),
			Blockchain:        nullString(coin.Metrics.Blockchain),
			Risk:              nullString(string(item.Risk)),
			IsFeatured:        Flag(item.IsFeatured),
			IsActive:          Flag(item.IsActive),
		}
	default:
		asset := item.Asset
		if asset == nil {
			asset = &core.AssetPayload{}
		}

		v = assetFields{
			InvestmentName: item.Name,
			Category:       item.Category,
			MinInvestment:  jsonNumber(asset.MinInvestment),
			ExpectedReturn: jsonNumber(asset.ExpectedReturn),
			Duration:       asset.Duration,
			Overview:       item.Overview,
			Risk:           nullString(string(item.Risk)),
			IsFeatured:     Flag(item.IsFeatured),
			IsActive:       Flag(item.IsActive),
		}
	}

	s := structs.New(v)
	s.TagName = "json"
	return s.Map()
}

// ActiveFields PUT body toggling is_active only
func ActiveFields(active bool) map[string]interface{} {
	return map[string]interface{}{"is_active": Flag(active)}
}

// Flag bool as the 0/1 the api expects
func Flag(b bool) int {
	if b {
		return 1
	}

	return 0
}

func jsonNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func nullNumber(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}

	n := jsonNumber(d.Decimal)
	return &n
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
