// Package money implements the fixed-point arithmetic used for every
// monetary amount in the system. Amounts are shopspring decimals finalized
// at 2 decimal places with round-half-up; native floats are never stored
// or compared.
package money

import "github.com/shopspring/decimal"

// Places is the number of decimal places every finalized amount carries.
const Places = 2

var (
	Zero    = decimal.Zero
	Hundred = decimal.NewFromInt(100)
)

// Round finalizes an amount at 2 decimal places. decimal.Round rounds half
// away from zero, which is half-up for the non-negative amounts handled here.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// LineSubtotal is unit price times quantity, tax excluded. Prices already
// carry 2 decimal places, so the product is exact.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// LineTax is the tax amount for one line: round(lineSubtotal * rate, 2).
// The rate is a fraction (0.14 for 14% IVA).
func LineTax(lineSubtotal, rate decimal.Decimal) decimal.Decimal {
	return Round(lineSubtotal.Mul(rate))
}

// Discount converts a percent rate (10 for 10%) into a rounded discount
// amount over the pre-tax subtotal.
func Discount(subtotal, ratePercent decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Mul(ratePercent).Div(Hundred))
}

// Total reconciles the grand total: round(subtotal - discount + tax, 2).
func Total(subtotal, discount, tax decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Sub(discount).Add(tax))
}
