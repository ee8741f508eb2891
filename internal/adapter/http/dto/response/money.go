package response

import (
	"automobile_shop/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// money renders amounts with a fixed two-decimal scale.
func money(d decimal.Decimal) string {
	return d.StringFixed(entities.CurrencyPrecision)
}
