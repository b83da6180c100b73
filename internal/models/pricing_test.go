package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 20.00, 0, 20.00},
		{"quarter off", 20.00, 25, 15.00},
		{"odd cents round to 2dp", 19.99, 15, 16.99},
		{"full discount", 49.90, 100, 0},
		{"discount clamped above 100", 10, 150, 0},
		{"tenth of a percent", 100, 0.5, 99.50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FinalPrice(tt.price, tt.discount), 1e-9)
		})
	}
}

func TestRecalculateKeepsFinalPriceConsistent(t *testing.T) {
	p := Product{Price: 20, Discount: 25}
	p.Recalculate()
	assert.Equal(t, 15.00, p.FinalPrice)

	// Editing price or discount must be followed by Recalculate, after
	// which the derived value is consistent again.
	p.Price = 40
	p.Recalculate()
	assert.Equal(t, 30.00, p.FinalPrice)

	p.Discount = 0
	p.Recalculate()
	assert.Equal(t, 40.00, p.FinalPrice)
}

func TestUnitPriceUsesFinalPriceOnlyWhenDiscounted(t *testing.T) {
	discounted := Product{Price: 20, Discount: 25}
	discounted.Recalculate()
	assert.Equal(t, 15.00, discounted.UnitPrice())

	plain := Product{Price: 20}
	plain.Recalculate()
	assert.Equal(t, 20.00, plain.UnitPrice())
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 30.00, LineTotal(15.00, 2))
	assert.Equal(t, 50.97, LineTotal(16.99, 3))
}
