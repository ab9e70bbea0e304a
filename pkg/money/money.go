// Package money provides precise cost arithmetic for line items and totals.
// Spreadsheet cells arrive as float64; all multiplication and summation goes
// through shopspring/decimal so filtered recomputation stays exact.
package money

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// LineTotal returns qty * unitCost rounded to 2 decimal places.
func LineTotal(qty, unitCost float64) float64 {
	total := decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(unitCost))
	f, _ := total.Round(2).Float64()
	return f
}

// Sum adds a list of amounts with decimal precision.
func Sum(amounts ...float64) float64 {
	acc := decimal.Zero
	for _, a := range amounts {
		acc = acc.Add(decimal.NewFromFloat(a))
	}
	f, _ := acc.Round(2).Float64()
	return f
}

// ValidCurrency reports whether code is a known ISO-4217 currency. Guards
// the currency a caller supplies with an upload.
func ValidCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
