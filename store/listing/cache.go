package listing

import (
	"context"
	"fmt"
	"time"

	"vanguard/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi/middleware"
	"golang.org/x/sync/singleflight"
)

type investments struct {
	assets []*core.RawAssetRecord
	coins  []*core.RawCoinRecord
}

// Cache lru cache in front of the list calls, concurrent identical calls share one request.
// Any mutation purges the cache. A ctx marked with core.WithFresh skips the cached value
// and refills it. The shared request is detached from its callers, a cancelled caller
// stops waiting without failing the others.
func Cache(store core.ListingStore, size int, exp time.Duration) core.ListingStore {
	return &cacheListingStore{
		ListingStore: store,
		cache:        gcache.New(size).LRU().Expiration(exp).Build(),
		sf:           &singleflight.Group{},
	}
}

type cacheListingStore struct {
	core.ListingStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheListingStore) ListInvestments(ctx context.Context, limit, offset int) ([]*core.RawAssetRecord, []*core.RawCoinRecord, error) {
	v, err := s.load(ctx, s.key("investments", limit, offset), func(ctx context.Context) (interface{}, error) {
		assets, coins, err := s.ListingStore.ListInvestments(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		return &investments{assets: assets, coins: coins}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	inv := v.(*investments)
	return inv.assets, inv.coins, nil
}

func (s *cacheListingStore) ListAssets(ctx context.Context, limit, offset int) ([]*core.RawAssetRecord, error) {
	v, err := s.load(ctx, s.key("assets", limit, offset), func(ctx context.Context) (interface{}, error) {
		return s.ListingStore.ListAssets(ctx, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.RawAssetRecord), nil
}

func (s *cacheListingStore) ListCoins(ctx context.Context, limit, offset int) ([]*core.RawCoinRecord, error) {
	v, err := s.load(ctx, s.key("coins", limit, offset), func(ctx context.Context) (interface{}, error) {
		return s.ListingStore.ListCoins(ctx, limit, offset)
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.RawCoinRecord), nil
}

func (s *cacheListingStore) CreateAsset(ctx context.Context, form *core.AssetForm) error {
	defer s.cache.Purge()
	return s.ListingStore.CreateAsset(ctx, form)
}

func (s *cacheListingStore) CreateCoin(ctx context.Context, form *core.CoinForm) error {
	defer s.cache.Purge()
	return s.ListingStore.CreateCoin(ctx, form)
}

func (s *cacheListingStore) SetActive(ctx context.Context, kind core.Kind, id int64, active bool) error {
	defer s.cache.Purge()
	return s.ListingStore.SetActive(ctx, kind, id, active)
}

func (s *cacheListingStore) Save(ctx context.Context, item *core.UnifiedItem) error {
	defer s.cache.Purge()
	return s.ListingStore.Save(ctx, item)
}

func (s *cacheListingStore) Delete(ctx context.Context, kind core.Kind, id int64) error {
	defer s.cache.Purge()
	return s.ListingStore.Delete(ctx, kind, id)
}

func (s *cacheListingStore) load(ctx context.Context, key string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	group := key
	if core.IsFresh(ctx) {
		group = "fresh:" + key
	} else if v, err := s.cache.Get(key); err == nil {
		return v, nil
	}

	detached := logger.WithContext(context.Background(), logger.FromContext(ctx))
	if rid := middleware.GetReqID(ctx); rid != "" {
		detached = context.WithValue(detached, middleware.RequestIDKey, rid)
	}
	ch := s.sf.DoChan(group, func() (interface{}, error) {
		v, err := fn(detached)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(key, v)
		return v, nil
	})

	select {
	case r := <-ch:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *cacheListingStore) key(name string, limit, offset int) string {
	return fmt.Sprintf("listing:%s:%d:%d", name, limit, offset)
}
