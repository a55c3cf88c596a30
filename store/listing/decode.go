package listing

import (
	"bytes"
	"encoding/json"
	"fmt"

	"vanguard/core"
	"vanguard/pkg/number"

	"github.com/spf13/cast"
)

type object map[string]interface{}

// envelope collections found in a list response
type envelope struct {
	// list bare array, or an array under data
	list   json.RawMessage
	assets json.RawMessage
	coins  json.RawMessage
}

func (e envelope) assetsOrList() json.RawMessage {
	if e.assets != nil {
		return e.assets
	}

	return e.list
}

func (e envelope) coinsOrList() json.RawMessage {
	if e.coins != nil {
		return e.coins
	}

	return e.list
}

// unwrap accepts {data:{tesla,coins}}, {investments}, {data:[...]} and bare arrays
func unwrap(body []byte) (envelope, error) {
	var env envelope

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return env, nil
	}

	if body[0] == '[' {
		env.list = body
		return env, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return env, &core.Error{Code: core.ErrInvalidRecord, Op: "decode", Msg: "malformed response body", Err: err}
	}

	scopes := make([]map[string]json.RawMessage, 0, 2)
	if data := bytes.TrimSpace(top["data"]); len(data) > 0 {
		switch data[0] {
		case '[':
			env.list = data
		case '{':
			var inner map[string]json.RawMessage
			if err := json.Unmarshal(data, &inner); err != nil {
				return env, &core.Error{Code: core.ErrInvalidRecord, Op: "decode", Msg: "malformed data", Err: err}
			}
			scopes = append(scopes, inner)
		}
	}
	scopes = append(scopes, top)

	for _, scope := range scopes {
		if env.assets == nil {
			env.assets = first(scope, "tesla", "investments")
		}

		if env.coins == nil {
			env.coins = first(scope, "coins")
		}
	}

	return env, nil
}

func first(scope map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, key := range keys {
		raw := bytes.TrimSpace(scope[key])
		if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
			return raw
		}
	}

	return nil
}

func decodeObjects(raw json.RawMessage) ([]object, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var objects []object
	if err := dec.Decode(&objects); err != nil {
		return nil, &core.Error{Code: core.ErrInvalidRecord, Op: "decode", Msg: "expected an array of records", Err: err}
	}

	return objects, nil
}

// DecodeAssets decode asset records, only a record without id is an error
func DecodeAssets(raw json.RawMessage) ([]*core.RawAssetRecord, error) {
	objects, err := decodeObjects(raw)
	if err != nil {
		return nil, err
	}

	assets := make([]*core.RawAssetRecord, 0, len(objects))
	for idx, o := range objects {
		asset, err := decodeAsset(o)
		if err != nil {
			return nil, fmt.Errorf("asset #%d: %w", idx, err)
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

// DecodeCoins decode coin records, only a record without id is an error
func DecodeCoins(raw json.RawMessage) ([]*core.RawCoinRecord, error) {
	objects, err := decodeObjects(raw)
	if err != nil {
		return nil, err
	}

	coins := make([]*core.RawCoinRecord, 0, len(objects))
	for idx, o := range objects {
		coin, err := decodeCoin(o)
		if err != nil {
			return nil, fmt.Errorf("coin #%d: %w", idx, err)
		}
		coins = append(coins, coin)
	}

	return coins, nil
}

func decodeAsset(o object) (*core.RawAssetRecord, error) {
	id, ok := o.integer("tesla_id", "id")
	if !ok {
		return nil, &core.Error{Code: core.ErrInvalidRecord, Op: "decode asset", Msg: "missing id"}
	}

	return &core.RawAssetRecord{
		ID:             id,
		Name:           o.text("investment_name", "name"),
		Slug:           o.text("slug"),
		Category:       o.text("category"),
		MinInvestment:  number.Coerce(o.value("min_investment")),
		ExpectedReturn: number.Coerce(o.value("expected_return")),
		Duration:       o.text("duration"),
		Overview:       o.text("overview"),
		Risk:           core.ParseRisk(o.text("risk")),
		IsActive:       o.flag("is_active"),
		IsFeatured:     o.flag("is_featured"),
		Views:          o.integerOrZero("views"),
		CreatedBy:      o.text("created_by"),
		CreatedAt:      o.text("created_at"),
		UpdatedAt:      o.text("updated_at"),
	}, nil
}

func decodeCoin(o object) (*core.RawCoinRecord, error) {
	id, ok := o.integer("coin_id", "id")
	if !ok {
		return nil, &core.Error{Code: core.ErrInvalidRecord, Op: "decode coin", Msg: "missing id"}
	}

	// metrics arrive flat or nested under "metrics"
	metrics := o
	if nested, ok := o.value("metrics").(map[string]interface{}); ok {
		metrics = nested
	}

	return &core.RawCoinRecord{
		ID:        id,
		Name:      o.text("coin_name", "name"),
		Slug:      o.text("slug"),
		Category:  o.text("category"),
		Price:     number.Coerce(o.value("price")),
		MarketCap: number.Coerce(o.value("market_cap")),
		Hours:     o.integerOrZero("hours"),
		Overview:  o.text("overview"),
		Metrics: core.Metrics{
			CirculatingSupply: number.NullCoerce(metrics.value("circulating_supply", "circulatingSupply")),
			MaxSupply:         number.NullCoerce(metrics.value("max_supply", "maxSupply")),
			Blockchain:        metrics.text("blockchain"),
		},
		Risk:       core.ParseRisk(o.text("risk")),
		IsActive:   o.flag("is_active"),
		IsFeatured: o.flag("is_featured"),
		Views:      o.integerOrZero("views"),
		CreatedBy:  o.text("created_by"),
		CreatedAt:  o.text("created_at"),
		UpdatedAt:  o.text("updated_at"),
	}, nil
}

// value first non null value of keys, json numbers become strings
func (o object) value(keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := o[key]; ok && v != nil {
			if n, ok := v.(json.Number); ok {
				return n.String()
			}
			return v
		}
	}

	return nil
}

func (o object) text(keys ...string) string {
	switch v := o.value(keys...).(type) {
	case nil, map[string]interface{}, []interface{}:
		return ""
	default:
		return cast.ToString(v)
	}
}

func (o object) integer(keys ...string) (int64, bool) {
	v := o.value(keys...)
	if v == nil {
		return 0, false
	}

	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false
	}

	return n, true
}

func (o object) integerOrZero(keys ...string) int64 {
	n, _ := o.integer(keys...)
	return n
}

func (o object) flag(keys ...string) bool {
	b, err := cast.ToBoolE(o.value(keys...))
	if err != nil {
		return false
	}

	return b
}
