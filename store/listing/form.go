package listing

import (
	"vanguard/core"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
)

// ValidateAsset check an asset form before it is sent
func ValidateAsset(form *core.AssetForm) error {
	if err := validate("asset form", form); err != nil {
		return err
	}

	return nonNegative("asset form",
		field{"minInvestment", form.MinInvestment},
		field{"expectedReturn", form.ExpectedReturn},
	)
}

// ValidateCoin check a coin form before it is sent
func ValidateCoin(form *core.CoinForm) error {
	if err := validate("coin form", form); err != nil {
		return err
	}

	fields := []field{
		{"price", form.Price},
		{"market_cap", form.MarketCap},
		{"hours", decimal.NewFromInt(form.Hours)},
	}

	if form.CirculatingSupply != nil {
		fields = append(fields, field{"circulating_supply", *form.CirculatingSupply})
	}

	if form.MaxSupply != nil {
		fields = append(fields, field{"max_supply", *form.MaxSupply})
	}

	return nonNegative("coin form", fields...)
}

type field struct {
	name  string
	value decimal.Decimal
}

func validate(op string, form interface{}) error {
	if _, err := govalidator.ValidateStruct(form); err != nil {
		return &core.Error{Code: core.ErrInvalidForm, Op: op, Msg: err.Error(), Err: err}
	}

	return nil
}

func nonNegative(op string, fields ...field) error {
	for _, f := range fields {
		if f.value.IsNegative() {
			return &core.Error{Code: core.ErrInvalidForm, Op: op, Msg: f.name + " must not be negative"}
		}
	}

	return nil
}
