package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestLineSubtotal(t *testing.T) {
	assert.True(t, dec("1.00").Equal(LineSubtotal(dec("0.50"), 2)))
	assert.True(t, dec("7.47").Equal(LineSubtotal(dec("2.49"), 3)))
}

func TestLineTax(t *testing.T) {
	// 2 x 0.50 at 14% IVA
	assert.True(t, dec("0.14").Equal(LineTax(dec("1.00"), dec("0.14"))))
	// exempt line
	assert.True(t, LineTax(dec("9.99"), dec("0")).IsZero())
	// 7% over 1.05 = 0.0735, rounds half-up to 0.07
	assert.Equal(t, "0.07", LineTax(dec("1.05"), dec("0.07")).StringFixed(2))
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, "0.13", Round(dec("0.125")).StringFixed(2))
	assert.Equal(t, "0.12", Round(dec("0.1249")).StringFixed(2))
	assert.Equal(t, "1.00", Round(dec("0.995")).StringFixed(2))
}

func TestDiscount(t *testing.T) {
	// 10% card discount over 1.00
	assert.Equal(t, "0.10", Discount(dec("1.00"), dec("10")).StringFixed(2))
	// 12.5% over 3.33 = 0.41625 -> 0.42
	assert.Equal(t, "0.42", Discount(dec("3.33"), dec("12.5")).StringFixed(2))
	assert.True(t, Discount(dec("50.00"), dec("0")).IsZero())
}

func TestTotalReconciles(t *testing.T) {
	subtotal := dec("1.00")
	tax := dec("0.14")

	assert.Equal(t, "1.14", Total(subtotal, Zero, tax).StringFixed(2))
	assert.Equal(t, "1.04", Total(subtotal, dec("0.10"), tax).StringFixed(2))
}
