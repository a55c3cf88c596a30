package listing

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"vanguard/core"
	"vanguard/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

type listingStore struct {
	client *resty.Client
}

// New new rest listing store
func New(client *resty.Client) core.ListingStore {
	return &listingStore{
		client: client,
	}
}

func (s *listingStore) ListInvestments(ctx context.Context, limit, offset int) ([]*core.RawAssetRecord, []*core.RawCoinRecord, error) {
	env, err := s.list(ctx, "/api/investments", limit, offset)
	if err != nil {
		return nil, nil, fetchError("list investments", err)
	}

	assets, err := DecodeAssets(env.assetsOrList())
	if err != nil {
		return nil, nil, fetchError("list investments", err)
	}

	coins, err := DecodeCoins(env.coins)
	if err != nil {
		return nil, nil, fetchError("list investments", err)
	}

	logger.FromContext(ctx).Debugf("list investments: %d assets, %d coins", len(assets), len(coins))
	return assets, coins, nil
}

func (s *listingStore) ListAssets(ctx context.Context, limit, offset int) ([]*core.RawAssetRecord, error) {
	env, err := s.list(ctx, "/api/tesla", limit, offset)
	if err != nil {
		return nil, fetchError("list assets", err)
	}

	assets, err := DecodeAssets(env.assetsOrList())
	if err != nil {
		return nil, fetchError("list assets", err)
	}

	return assets, nil
}

func (s *listingStore) ListCoins(ctx context.Context, limit, offset int) ([]*core.RawCoinRecord, error) {
	env, err := s.list(ctx, "/api/coins", limit, offset)
	if err != nil {
		return nil, fetchError("list coins", err)
	}

	coins, err := DecodeCoins(env.coinsOrList())
	if err != nil {
		return nil, fetchError("list coins", err)
	}

	return coins, nil
}

func (s *listingStore) list(ctx context.Context, path string, limit, offset int) (envelope, error) {
	req := resthttp.Request(ctx, s.client)
	if limit > 0 {
		req = req.SetQueryParam("limit", strconv.Itoa(limit))
		req = req.SetQueryParam("offset", strconv.Itoa(offset))
	}

	resp, err := req.Get(path)
	if err != nil {
		return envelope{}, err
	}

	if err := resthttp.ParseResponse(resp, nil); err != nil {
		return envelope{}, err
	}

	return unwrap(resp.Body())
}

func (s *listingStore) CreateAsset(ctx context.Context, form *core.AssetForm) error {
	if err := ValidateAsset(form); err != nil {
		return err
	}

	if _, err := resthttp.Execute(resthttp.Request(ctx, s.client), "POST", "/api/tesla", form, nil); err != nil {
		return mutationError("create asset", err)
	}

	return nil
}

func (s *listingStore) CreateCoin(ctx context.Context, form *core.CoinForm) error {
	if err := ValidateCoin(form); err != nil {
		return err
	}

	if _, err := resthttp.Execute(resthttp.Request(ctx, s.client), "POST", "/api/coins", form, nil); err != nil {
		return mutationError("create coin", err)
	}

	return nil
}

func (s *listingStore) SetActive(ctx context.Context, kind core.Kind, id int64, active bool) error {
	return s.put(ctx, kind, id, ActiveFields(active))
}

func (s *listingStore) Save(ctx context.Context, item *core.UnifiedItem) error {
	return s.put(ctx, item.Kind, item.SourceID, UpdateFields(item))
}

func (s *listingStore) put(ctx context.Context, kind core.Kind, id int64, fields map[string]interface{}) error {
	url := fmt.Sprintf("/api/%s/%d", kind.Endpoint(), id)
	if _, err := resthttp.Execute(resthttp.Request(ctx, s.client), "PUT", url, fields, nil); err != nil {
		return mutationError("update "+core.ItemID(kind, id), err)
	}

	return nil
}

func (s *listingStore) Delete(ctx context.Context, kind core.Kind, id int64) error {
	url := fmt.Sprintf("/api/%s/%d", kind.Endpoint(), id)
	if _, err := resthttp.Execute(resthttp.Request(ctx, s.client), "DELETE", url, nil, nil); err != nil {
		return mutationError("delete "+core.ItemID(kind, id), err)
	}

	return nil
}

func fetchError(op string, err error) error {
	return wrap(core.ErrFetchFailed, op, err)
}

func mutationError(op string, err error) error {
	return wrap(core.ErrMutationFailed, op, err)
}

// wrap keep the status and message of api errors
func wrap(code core.ErrorCode, op string, err error) error {
	e := &core.Error{Code: code, Op: op, Err: err}

	var se *resthttp.StatusError
	if errors.As(err, &se) {
		e.Status = se.Status
		e.Msg = se.Message
	}

	return e
}
