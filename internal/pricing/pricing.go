// Package pricing does money arithmetic in decimal so that totals do not drift
// the way repeated float64 additions do.
package pricing

import "github.com/shopspring/decimal"

// Line is anything with a unit price and a quantity.
type Line interface {
	UnitPrice() float64
	Quantity() int
}

// LineTotal returns price × qty rounded to cents.
func LineTotal(price float64, qty int) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))).Round(2).InexactFloat64()
}

// Sum returns Σ price × qty over lines, rounded to cents.
func Sum[L Line](lines []L) float64 {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(l.UnitPrice()).Mul(decimal.NewFromInt(int64(l.Quantity()))))
	}
	return total.Round(2).InexactFloat64()
}
