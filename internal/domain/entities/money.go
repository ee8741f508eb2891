package entities

import "github.com/shopspring/decimal"

// CurrencyPrecision is the number of decimal places kept for monetary amounts.
const CurrencyPrecision int32 = 2

var hundred = decimal.NewFromInt(100)

// RoundCurrency rounds half away from zero to CurrencyPrecision places.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPrecision)
}

// ValidateAmount rejects negative monetary values and percentages.
func ValidateAmount(d decimal.Decimal) error {
	if d.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
