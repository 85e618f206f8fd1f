package domain

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency preference is known.
const DefaultCurrency = money.USD

// FormatCurrency renders amount using the display conventions of the
// given ISO 4217 currency code. Empty or unknown codes fall back to USD.
// Sign and magnitude survive the rounding to the currency's fraction.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}
