package search

import (
	"testing"

	"glowmart_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withPrice(name string, price, discount, rating float64) models.Product {
	p := models.Product{Name: name, Price: price, Discount: discount, Rating: rating}
	p.Recalculate()
	return p
}

func TestSearchFilterAndScoreAreSeparatePasses(t *testing.T) {
	products := []models.Product{
		product("Cream", "", "", ""),
		product("Night Cream", "", "", ""),
		product("Toner", "", "", "pairs well with any cream"),
		product("Lipstick", "Lux", "makeup", "matte finish"),
	}

	got := Search(products, "cream", SortRelevance)

	// The lipstick fails the substring filter and never appears,
	// regardless of score.
	require.Len(t, got, 3)
	for _, p := range got {
		assert.NotEqual(t, "Lipstick", p.Name)
	}
}

func TestSearchRelevanceOrdering(t *testing.T) {
	// Exact "Cream" (100) above substring "Night Cream" (60) above a
	// description-only hit (5); brand/category held constant.
	products := []models.Product{
		product("Toner", "", "", "pairs well with any cream"),
		product("Night Cream", "", "", ""),
		product("Cream", "", "", ""),
	}

	got := Search(products, "cream", SortRelevance)
	require.Len(t, got, 3)
	assert.Equal(t, "Cream", got[0].Name)
	assert.Equal(t, "Night Cream", got[1].Name)
	assert.Equal(t, "Toner", got[2].Name)
}

func TestSearchTiesKeepInputOrder(t *testing.T) {
	products := []models.Product{
		product("Cream A", "", "", ""),
		product("Cream B", "", "", ""),
	}
	got := Search(products, "cream", SortRelevance)
	require.Len(t, got, 2)
	assert.Equal(t, "Cream A", got[0].Name)
	assert.Equal(t, "Cream B", got[1].Name)
}

func TestNonRelevanceSortsIgnoreScore(t *testing.T) {
	products := []models.Product{
		withPrice("Cream", 30, 0, 3.5),       // best score, mid price
		withPrice("Night Cream", 10, 0, 5),   // lower score, cheapest
		withPrice("Creamy Scrub", 50, 20, 4), // finalPrice 40
	}

	low := Search(products, "cream", SortPriceLow)
	require.Len(t, low, 3)
	assert.Equal(t, "Night Cream", low[0].Name)
	assert.Equal(t, "Cream", low[1].Name)
	assert.Equal(t, "Creamy Scrub", low[2].Name)

	high := Search(products, "cream", SortPriceHigh)
	assert.Equal(t, "Creamy Scrub", high[0].Name)

	rating := Search(products, "cream", SortRating)
	assert.Equal(t, "Night Cream", rating[0].Name)
}

func TestNameSortIsIdempotent(t *testing.T) {
	products := []models.Product{
		withPrice("bravo", 1, 0, 0),
		withPrice("Alpha", 2, 0, 0),
		withPrice("charlie", 3, 0, 0),
	}
	Sort(products, SortName)
	first := []string{products[0].Name, products[1].Name, products[2].Name}
	Sort(products, SortName)
	second := []string{products[0].Name, products[1].Name, products[2].Name}

	assert.Equal(t, []string{"Alpha", "bravo", "charlie"}, first)
	assert.Equal(t, first, second)
}

func TestParseSortBy(t *testing.T) {
	got, err := ParseSortBy("")
	require.NoError(t, err)
	assert.Equal(t, SortRelevance, got)

	got, err = ParseSortBy("price-low")
	require.NoError(t, err)
	assert.Equal(t, SortPriceLow, got)

	_, err = ParseSortBy("popularity")
	assert.Error(t, err)
}

func TestFilterCategoryAndPrice(t *testing.T) {
	skincare := withPrice("Cream", 20, 25, 0) // finalPrice 15
	skincare.Category = "Skincare"
	makeup := withPrice("Lipstick", 12, 0, 0)
	makeup.Category = "Makeup"
	pricey := withPrice("Serum", 80, 0, 0)
	pricey.Category = "Skincare"

	products := []models.Product{skincare, makeup, pricey}

	minP, maxP := 10.0, 20.0
	got := Filter(products, "skincare", &minP, &maxP)
	require.Len(t, got, 1)
	// The discounted price is the one compared against the bounds.
	assert.Equal(t, "Cream", got[0].Name)

	all := Filter(products, "", nil, nil)
	assert.Len(t, all, 3)
}

func TestTypeaheadCapAndOrder(t *testing.T) {
	products := []models.Product{
		product("Rose Cream 1", "", "", ""),
		product("Rose Cream 2", "", "", ""),
		product("Rose Cream 3", "", "", ""),
		product("Rose Cream 4", "", "", ""),
		product("Rose Cream 5", "", "", ""),
		product("Rose Cream 6", "", "", ""),
	}
	got := Typeahead(products, "rose")
	require.Len(t, got, 5)
	// First five matches in list order, no ranking.
	assert.Equal(t, "Rose Cream 1", got[0].Name)
	assert.Equal(t, "Rose Cream 5", got[4].Name)
}

func TestTypeaheadTokenTolerant(t *testing.T) {
	products := []models.Product{product("Hydra Boost Cream", "", "", "")}
	assert.Len(t, Typeahead(products, "boo"), 1)
	assert.Empty(t, Typeahead(products, "hydraboost"))
	assert.Empty(t, Typeahead(products, ""))
}
