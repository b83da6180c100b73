package search

import (
	"testing"

	"glowmart_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func product(name, brand, category, description string) models.Product {
	return models.Product{Name: name, Brand: brand, Category: category, Description: description}
}

func TestScoreNameTiers(t *testing.T) {
	tests := []struct {
		name string
		p    models.Product
		q    string
		want int
	}{
		{"exact name", product("Cream", "", "", ""), "cream", 100},
		{"prefix name", product("Cream Deluxe", "", "", ""), "cream", 80},
		{"substring name", product("Night Cream", "", "", ""), "cream", 60},
		{"no match", product("Lipstick", "", "", ""), "cream", 0},
		{"case insensitive", product("CREAM", "", "", ""), "CrEaM", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.p, tt.q))
		})
	}
}

func TestScoreIsAdditiveAcrossFields(t *testing.T) {
	// name substring (60) + brand exact (50) + category prefix (20) +
	// description substring (5).
	p := product("Night Glow", "glow", "glow kits", "a glow serum")
	assert.Equal(t, 135, Score(p, "glow"))
}

func TestScoreTiersMutuallyExclusivePerField(t *testing.T) {
	// An exact name match is also a prefix and substring match; only the
	// top tier may count.
	assert.Equal(t, 100, Score(product("Cream", "", "", ""), "cream"))
}

func TestScoreEmptyQuery(t *testing.T) {
	assert.Equal(t, 0, Score(product("Cream", "", "", ""), ""))
	assert.False(t, Matches(product("Cream", "", "", ""), ""))
}

func TestMatchesChecksAllFourFields(t *testing.T) {
	q := "rose"
	assert.True(t, Matches(product("Rose Water", "", "", ""), q))
	assert.True(t, Matches(product("Toner", "Rosedale", "", ""), q))
	assert.True(t, Matches(product("Toner", "", "rose care", ""), q))
	assert.True(t, Matches(product("Toner", "", "", "with rose extract"), q))
	assert.False(t, Matches(product("Toner", "Lux", "skincare", "gentle"), q))
}
