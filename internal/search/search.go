package search

import (
	"fmt"
	"sort"
	"strings"

	"glowmart_back_end/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortBy selects the ordering of a result set. Non-relevance sorts compare
// the named field directly and ignore the score.
type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortRating    SortBy = "rating"
	SortName      SortBy = "name"
)

// ParseSortBy accepts the wire value, defaulting empty to relevance.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortRelevance:
		return SortRelevance, nil
	case SortPriceLow:
		return SortPriceLow, nil
	case SortPriceHigh:
		return SortPriceHigh, nil
	case SortRating:
		return SortRating, nil
	case SortName:
		return SortName, nil
	default:
		return "", fmt.Errorf("unknown sort %q", s)
	}
}

// Search runs the two passes: substring filter, then order the survivors.
// The input slice is never mutated; ties keep the filtered input order
// (stable sort).
func Search(products []models.Product, query string, sortBy SortBy) []models.Product {
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, query) {
			matched = append(matched, p)
		}
	}
	if sortBy == SortRelevance {
		sort.SliceStable(matched, func(i, j int) bool {
			return Score(matched[i], query) > Score(matched[j], query)
		})
		return matched
	}
	Sort(matched, sortBy)
	return matched
}

// Sort orders products in place by the given key. Relevance is meaningless
// without a query and is treated as a no-op here; Search handles it.
func Sort(products []models.Product, sortBy SortBy) {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].FinalPrice < products[j].FinalPrice
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].FinalPrice > products[j].FinalPrice
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortName:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// Filter is the category/price predicate used on category and listing
// pages, independent of search scoring. Bounds are inclusive; a nil bound
// is open. The price compared is the discounted price when one applies.
func Filter(products []models.Product, category string, minPrice, maxPrice *float64) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !p.MatchesCategory(category) {
			continue
		}
		price := p.UnitPrice()
		if minPrice != nil && price < *minPrice {
			continue
		}
		if maxPrice != nil && price > *maxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}
