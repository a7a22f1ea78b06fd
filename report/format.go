// Package report renders ledger contents and metrics as plain text.
package report

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amount in currency, e.g. "$1,200.00". Amounts are rounded
// to the currency's minor unit. Unknown currency codes fall back to
// "1200.00 XYZ".
func Money(amount float64, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return decimal.NewFromFloat(amount).StringFixed(2) + " " + currency
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// Percent formats v as "12.34%".
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

// Price formats a unit price. Prices keep up to four decimals, trimmed to
// at least two.
func Price(v float64) string {
	d := decimal.NewFromFloat(v).Round(4)
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

// OptPrice formats an optional price, "-" when unset.
func OptPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return Price(*p)
}

// Ratio formats a profit factor; +Inf prints as "inf".
func Ratio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Qty formats a quantity without trailing zeros.
func Qty(v float64) string {
	return decimal.NewFromFloat(v).String()
}
