package models

import "github.com/shopspring/decimal"

// FinalPrice computes price * (1 - discount/100) rounded to 2 decimals.
// Computed through decimals so 19.99 with 15% stays exact instead of
// drifting on float arithmetic.
func FinalPrice(price, discount float64) float64 {
	if discount <= 0 {
		return round2(price)
	}
	if discount > 100 {
		discount = 100
	}
	p := decimal.NewFromFloat(price)
	factor := decimal.NewFromInt(100).Sub(decimal.NewFromFloat(discount)).Div(decimal.NewFromInt(100))
	f, _ := p.Mul(factor).Round(2).Float64()
	return f
}

// LineTotal is quantity × unit price, 2-decimal rounded.
func LineTotal(unitPrice float64, quantity int) float64 {
	t, _ := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity))).Round(2).Float64()
	return t
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
