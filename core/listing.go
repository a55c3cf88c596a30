package core

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind listing kind
type Kind string

const (
	// KindAsset asset / equity listing, published under /api/tesla
	KindAsset Kind = "asset"
	// KindCoin token listing, published under /api/coins
	KindCoin Kind = "coin"
)

// Endpoint rest resource of the kind
func (k Kind) Endpoint() string {
	if k == KindCoin {
		return "coins"
	}

	return "tesla"
}

// Valid check kind
func (k Kind) Valid() bool {
	return k == KindAsset || k == KindCoin
}

// Risk risk level
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// ParseRisk match risk case-insensitively, unknown values are empty
func ParseRisk(s string) Risk {
	for _, r := range []Risk{RiskLow, RiskMedium, RiskHigh} {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r
		}
	}

	return ""
}

// Record raw listing record as returned by the api
type Record interface {
	Kind() Kind
	// Owner created_by of the record, empty if unknown
	Owner() string
}

// RawAssetRecord asset listing
type RawAssetRecord struct {
	ID             int64           `json:"tesla_id"`
	Name           string          `json:"investment_name"`
	Slug           string          `json:"slug,omitempty"`
	Category       string          `json:"category"`
	MinInvestment  decimal.Decimal `json:"min_investment"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	Duration       string          `json:"duration"`
	Overview       string          `json:"overview"`
	Risk           Risk            `json:"risk"`
	IsActive       bool            `json:"is_active"`
	IsFeatured     bool            `json:"is_featured"`
	Views          int64           `json:"views,omitempty"`
	CreatedBy      string          `json:"created_by,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
	UpdatedAt      string          `json:"updated_at,omitempty"`
}

func (r *RawAssetRecord) Kind() Kind    { return KindAsset }
func (r *RawAssetRecord) Owner() string { return r.CreatedBy }

// Metrics coin supply metrics
type Metrics struct {
	CirculatingSupply decimal.NullDecimal `json:"circulating_supply"`
	MaxSupply         decimal.NullDecimal `json:"max_supply"`
	Blockchain        string              `json:"blockchain,omitempty"`
}

// RawCoinRecord coin listing
type RawCoinRecord struct {
	ID         int64           `json:"coin_id"`
	Name       string          `json:"coin_name"`
	Slug       string          `json:"slug,omitempty"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	MarketCap  decimal.Decimal `json:"market_cap"`
	Hours      int64           `json:"hours"`
	Overview   string          `json:"overview"`
	Metrics    Metrics         `json:"metrics"`
	Risk       Risk            `json:"risk"`
	IsActive   bool            `json:"is_active"`
	IsFeatured bool            `json:"is_featured"`
	Views      int64           `json:"views,omitempty"`
	CreatedBy  string          `json:"created_by,omitempty"`
	CreatedAt  string          `json:"created_at,omitempty"`
	UpdatedAt  string          `json:"updated_at,omitempty"`
}

func (r *RawCoinRecord) Kind() Kind    { return KindCoin }
func (r *RawCoinRecord) Owner() string { return r.CreatedBy }

// AssetPayload asset only fields of a unified item
type AssetPayload struct {
	MinInvestment  decimal.Decimal `json:"min_investment"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	Duration       string          `json:"duration"`
}

// CoinPayload coin only fields of a unified item
type CoinPayload struct {
	Price     decimal.Decimal `json:"price"`
	MarketCap decimal.Decimal `json:"market_cap"`
	Hours     int64           `json:"hours"`
	Metrics   Metrics         `json:"metrics"`
}

// UnifiedItem common projection of both listing kinds.
// Exactly one of Asset and Coin is set, matching Kind.
type UnifiedItem struct {
	ID         string        `json:"id"`
	SourceID   int64         `json:"source_id"`
	Kind       Kind          `json:"kind"`
	Name       string        `json:"name"`
	Slug       string        `json:"slug,omitempty"`
	Category   string        `json:"category"`
	Overview   string        `json:"overview,omitempty"`
	Risk       Risk          `json:"risk,omitempty"`
	IsActive   bool          `json:"is_active"`
	IsFeatured bool          `json:"is_featured"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Asset      *AssetPayload `json:"asset,omitempty"`
	Coin       *CoinPayload  `json:"coin,omitempty"`
	Raw        Record        `json:"-"`
}

// ItemID composite id of a listing
func ItemID(kind Kind, sourceID int64) string {
	return string(kind) + ":" + strconv.FormatInt(sourceID, 10)
}

// ParseItemID split a composite id into kind and source id
func ParseItemID(id string) (Kind, int64, error) {
	parts := strings.SplitN(id, ":", 2)
	if len(parts) != 2 {
		return "", 0, &Error{Code: ErrListingNotFound, Op: "parse id", Msg: id}
	}

	kind := Kind(parts[0])
	if kind == "tesla" {
		kind = KindAsset
	}

	sourceID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || !kind.Valid() {
		return "", 0, &Error{Code: ErrListingNotFound, Op: "parse id", Msg: id}
	}

	return kind, sourceID, nil
}

// Patch partial update of a unified item
type Patch struct {
	// Remove drop the item from the collection
	Remove bool
	// Replace swap the whole item, the id must not change
	Replace *UnifiedItem

	Name       *string
	Category   *string
	Overview   *string
	Risk       *Risk
	IsActive   *bool
	IsFeatured *bool
	Asset      *AssetPayload
	Coin       *CoinPayload
}

// Mutation optimistic view and the snapshot to restore on failure
type Mutation struct {
	Applied  []*UnifiedItem
	Previous []*UnifiedItem
}

// AssetForm create asset request
type AssetForm struct {
	InvestmentName string          `json:"investmentName" valid:"required"`
	Category       string          `json:"category" valid:"required"`
	MinInvestment  decimal.Decimal `json:"minInvestment"`
	ExpectedReturn decimal.Decimal `json:"expectedReturn"`
	Duration       string          `json:"duration"`
	Overview       string          `json:"overview"`
	Risk           Risk            `json:"risk" valid:"in(Low|Medium|High)"`
	IsFeatured     bool            `json:"is_featured"`
}

// CoinForm create coin request
type CoinForm struct {
	CoinName          string           `json:"coin_name" valid:"required"`
	Category          string           `json:"category" valid:"required"`
	Price             decimal.Decimal  `json:"price"`
	Hours             int64            `json:"hours"`
	MarketCap         decimal.Decimal  `json:"market_cap"`
	Overview          string           `json:"overview"`
	CirculatingSupply *decimal.Decimal `json:"circulating_supply"`
	MaxSupply         *decimal.Decimal `json:"max_supply"`
	Blockchain        *string          `json:"blockchain"`
	Risk              Risk             `json:"risk" valid:"in(Low|Medium|High)"`
	IsFeatured        bool             `json:"is_featured"`
}

type freshKey struct{}

// WithFresh ctx asking caching stores to read through their cache
func WithFresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshKey{}, true)
}

// IsFresh reports whether ctx asks for a fresh read
func IsFresh(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshKey{}).(bool)
	return fresh
}

// ListingStore rest backend of the listings
type ListingStore interface {
	// ListInvestments both kinds from the unified endpoint
	ListInvestments(ctx context.Context, limit, offset int) ([]*RawAssetRecord, []*RawCoinRecord, error)
	ListAssets(ctx context.Context, limit, offset int) ([]*RawAssetRecord, error)
	ListCoins(ctx context.Context, limit, offset int) ([]*RawCoinRecord, error)
	CreateAsset(ctx context.Context, form *AssetForm) error
	CreateCoin(ctx context.Context, form *CoinForm) error
	// SetActive flip is_active only
	SetActive(ctx context.Context, kind Kind, id int64, active bool) error
	// Save write every editable field of item
	Save(ctx context.Context, item *UnifiedItem) error
	Delete(ctx context.Context, kind Kind, id int64) error
}
