package listing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"vanguard/core"
	"vanguard/pkg/resthttp"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAssetsCoercesStrings(t *testing.T) {
	raw := json.RawMessage(`[{
		"tesla_id": "7",
		"investment_name": "Tesla Growth",
		"category": "Equity",
		"min_investment": "1234.50",
		"expected_return": 12,
		"risk": "high",
		"is_active": 1,
		"is_featured": "0",
		"created_at": "2024-03-01T10:00:00Z"
	}]`)

	assets, err := DecodeAssets(raw)
	require.Nil(t, err)
	require.Len(t, assets, 1)

	a := assets[0]
	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, "Tesla Growth", a.Name)
	assert.Equal(t, "1234.5", a.MinInvestment.String())
	assert.Equal(t, "12", a.ExpectedReturn.String())
	assert.Equal(t, core.RiskHigh, a.Risk)
	assert.True(t, a.IsActive)
	assert.False(t, a.IsFeatured)
}

func TestDecodeAssetsGarbageNumbersBecomeZero(t *testing.T) {
	raw := json.RawMessage(`[{"id": 1, "min_investment": "n/a", "expected_return": null, "risk": "extreme"}]`)

	assets, err := DecodeAssets(raw)
	require.Nil(t, err)
	require.Len(t, assets, 1)
	assert.True(t, assets[0].MinInvestment.IsZero())
	assert.True(t, assets[0].ExpectedReturn.IsZero())
	assert.Equal(t, core.Risk(""), assets[0].Risk)
}

func TestDecodeMissingIDFails(t *testing.T) {
	_, err := DecodeAssets(json.RawMessage(`[{"tesla_id": 1}, {"investment_name": "no id"}]`))
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidRecord))

	_, err = DecodeCoins(json.RawMessage(`[{"coin_name": "no id"}]`))
	assert.True(t, errors.Is(err, core.ErrInvalidRecord))
}

func TestDecodeCoinMetrics(t *testing.T) {
	raw := json.RawMessage(`[
		{"coin_id": 1, "price": "2.5", "metrics": {"circulating_supply": "1000", "max_supply": null, "blockchain": "Ethereum"}},
		{"coin_id": 2, "price": 3, "circulatingSupply": 50}
	]`)

	coins, err := DecodeCoins(raw)
	require.Nil(t, err)
	require.Len(t, coins, 2)

	assert.True(t, coins[0].Metrics.CirculatingSupply.Valid)
	assert.Equal(t, "1000", coins[0].Metrics.CirculatingSupply.Decimal.String())
	assert.False(t, coins[0].Metrics.MaxSupply.Valid)
	assert.Equal(t, "Ethereum", coins[0].Metrics.Blockchain)

	assert.True(t, coins[1].Metrics.CirculatingSupply.Valid)
	assert.Equal(t, "50", coins[1].Metrics.CirculatingSupply.Decimal.String())
}

func TestUnwrapEnvelopes(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		assets int
		coins  int
	}{
		{"data object", `{"data": {"tesla": [{"tesla_id": 1}], "coins": [{"coin_id": 1}, {"coin_id": 2}]}}`, 1, 2},
		{"investments", `{"investments": [{"tesla_id": 1}, {"tesla_id": 2}], "coins": []}`, 2, 0},
		{"top level", `{"tesla": [{"tesla_id": 1}], "coins": [{"coin_id": 3}]}`, 1, 1},
		{"empty", ``, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env, err := unwrap([]byte(c.body))
			require.Nil(t, err)

			assets, err := DecodeAssets(env.assetsOrList())
			require.Nil(t, err)
			coins, err := DecodeCoins(env.coins)
			require.Nil(t, err)

			assert.Len(t, assets, c.assets)
			assert.Len(t, coins, c.coins)
		})
	}
}

func TestUnwrapBareArray(t *testing.T) {
	env, err := unwrap([]byte(` [{"coin_id": 4}] `))
	require.Nil(t, err)

	coins, err := DecodeCoins(env.coinsOrList())
	require.Nil(t, err)
	require.Len(t, coins, 1)
	assert.Equal(t, int64(4), coins[0].ID)
}

func TestUpdateFields(t *testing.T) {
	item := &core.UnifiedItem{
		ID:       "coin:3",
		Kind:     core.KindCoin,
		Name:     "Solar",
		IsActive: true,
		Coin:     &core.CoinPayload{Hours: 24},
	}

	fields := UpdateFields(item)
	assert.Equal(t, "Solar", fields["coin_name"])
	assert.Equal(t, 1, fields["is_active"])
	assert.Equal(t, 0, fields["is_featured"])
	assert.Equal(t, int64(24), fields["hours"])

	body, err := json.Marshal(fields)
	require.Nil(t, err)
	assert.Contains(t, string(body), `"price":0`)
	assert.Contains(t, string(body), `"max_supply":null`)
}

func newTestStore(t *testing.T, h http.HandlerFunc) core.ListingStore {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(resthttp.New(srv.URL, time.Second))
}

func TestListInvestments(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/investments", r.URL.Path)
		assert.Equal(t, "200", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		_, _ = io.WriteString(w, `{"data": {"tesla": [{"tesla_id": 1, "min_investment": "1234.50"}], "coins": [{"coin_id": 2}]}}`)
	})

	assets, coins, err := store.ListInvestments(context.Background(), 200, 0)
	require.Nil(t, err)
	require.Len(t, assets, 1)
	require.Len(t, coins, 1)
	assert.Equal(t, "1234.5", assets[0].MinInvestment.String())
}

func TestListFailureCarriesStatus(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"message": "maintenance"}`)
	})

	_, err := store.ListAssets(context.Background(), 0, 0)
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, core.ErrFetchFailed))

	var e *core.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, http.StatusServiceUnavailable, e.Status)
	assert.Equal(t, "maintenance", e.Message())
}

func TestUpdateAndDelete(t *testing.T) {
	var got map[string]interface{}
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			assert.Equal(t, "/api/coins/3", r.URL.Path)
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			assert.Equal(t, "/api/tesla/9", r.URL.Path)
			w.WriteHeader(http.StatusForbidden)
		}
	})

	ctx := context.Background()
	require.Nil(t, store.SetActive(ctx, core.KindCoin, 3, false))
	assert.Equal(t, float64(0), got["is_active"])

	err := store.Delete(ctx, core.KindAsset, 9)
	assert.True(t, errors.Is(err, core.ErrMutationFailed))
}

func TestCacheSharesAndPurges(t *testing.T) {
	var calls int32
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&calls, 1)
			_, _ = io.WriteString(w, `[{"coin_id": 1}]`)
		}
	})

	cached := Cache(store, 8, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		coins, err := cached.ListCoins(ctx, 10, 0)
		require.Nil(t, err)
		require.Len(t, coins, 1)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	require.Nil(t, cached.SetActive(ctx, core.KindCoin, 1, true))

	_, err := cached.ListCoins(ctx, 10, 0)
	require.Nil(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCacheCancelledCallerDoesNotFailOthers(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = io.WriteString(w, `[{"coin_id": 1}]`)
	})

	cached := Cache(store, 8, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := cached.ListCoins(ctx, 10, 0)
		first <- err
	}()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		coins []*core.RawCoinRecord
		err   error
	}
	second := make(chan result, 1)
	go func() {
		coins, err := cached.ListCoins(context.Background(), 10, 0)
		second <- result{coins, err}
	}()

	// let the second caller join the shared request
	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.True(t, errors.Is(<-first, context.Canceled))

	close(release)
	r := <-second
	require.Nil(t, r.err)
	assert.Len(t, r.coins, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCacheFreshReadsThrough(t *testing.T) {
	var count int32 = 1
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.LoadInt32(&count)
		records := make([]map[string]int32, n)
		for i := range records {
			records[i] = map[string]int32{"coin_id": int32(i + 1)}
		}
		_ = json.NewEncoder(w).Encode(records)
	})

	cached := Cache(store, 8, time.Hour)
	ctx := context.Background()

	coins, err := cached.ListCoins(ctx, 10, 0)
	require.Nil(t, err)
	assert.Len(t, coins, 1)

	atomic.StoreInt32(&count, 2)

	coins, _ = cached.ListCoins(ctx, 10, 0)
	assert.Len(t, coins, 1)

	coins, err = cached.ListCoins(core.WithFresh(ctx), 10, 0)
	require.Nil(t, err)
	assert.Len(t, coins, 2)

	// the fresh read refilled the cache
	coins, _ = cached.ListCoins(ctx, 10, 0)
	assert.Len(t, coins, 2)
}

func TestCreateValidatesForm(t *testing.T) {
	var posted int32
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&posted, 1)
		assert.Equal(t, "/api/tesla", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	})

	ctx := context.Background()

	err := store.CreateAsset(ctx, &core.AssetForm{Category: "Equity"})
	assert.True(t, errors.Is(err, core.ErrInvalidForm))

	err = store.CreateAsset(ctx, &core.AssetForm{InvestmentName: "Fund", Category: "Equity", Risk: "Extreme"})
	assert.True(t, errors.Is(err, core.ErrInvalidForm))

	err = store.CreateAsset(ctx, &core.AssetForm{
		InvestmentName: "Fund",
		Category:       "Equity",
		MinInvestment:  decimal.NewFromInt(-1),
	})
	assert.True(t, errors.Is(err, core.ErrInvalidForm))
	assert.Equal(t, int32(0), atomic.LoadInt32(&posted))

	err = store.CreateAsset(ctx, &core.AssetForm{
		InvestmentName: "Fund",
		Category:       "Equity",
		MinInvestment:  decimal.NewFromInt(100),
		Risk:           core.RiskLow,
	})
	require.Nil(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&posted))
}
