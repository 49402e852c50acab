package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders amount in the given ISO currency, rounded to whole
// units. Unknown codes fall back to rupiah.
func FormatCurrency(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(money.IDR)
	}
	minor := amount.Round(0).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatIDR renders amount in rupiah.
func FormatIDR(amount decimal.Decimal) string {
	return FormatCurrency(amount, money.IDR)
}
