package models

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CategorySummary is derived on the fly by grouping products on their
// category string. Nothing here is persisted; callers recompute per fetch.
type CategorySummary struct {
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Count        int       `json:"count"`
	AveragePrice float64   `json:"averagePrice"`
	TopBrands    []string  `json:"topBrands"`
	Sample       []Product `json:"sample"`
}

const categorySampleSize = 4

// BuildCategorySummaries groups products case-insensitively by category.
// Result is sorted by name for a stable listing.
func BuildCategorySummaries(products []Product) []CategorySummary {
	type group struct {
		name     string
		products []Product
		brands   map[string]int
	}
	groups := map[string]*group{}

	for _, p := range products {
		key := strings.ToLower(strings.TrimSpace(p.Category))
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{name: strings.TrimSpace(p.Category), brands: map[string]int{}}
			groups[key] = g
		}
		g.products = append(g.products, p)
		if p.Brand != "" {
			g.brands[p.Brand]++
		}
	}

	summaries := make([]CategorySummary, 0, len(groups))
	for key, g := range groups {
		sum := decimal.Zero
		for _, p := range g.products {
			sum = sum.Add(decimal.NewFromFloat(p.UnitPrice()))
		}
		avg, _ := sum.Div(decimal.NewFromInt(int64(len(g.products)))).Round(2).Float64()

		sample := g.products
		if len(sample) > categorySampleSize {
			sample = sample[:categorySampleSize]
		}

		summaries = append(summaries, CategorySummary{
			Name:         g.name,
			Slug:         key,
			Count:        len(g.products),
			AveragePrice: avg,
			TopBrands:    topBrands(g.brands, 3),
			Sample:       sample,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Slug < summaries[j].Slug })
	return summaries
}

func topBrands(counts map[string]int, n int) []string {
	brands := make([]string, 0, len(counts))
	for b := range counts {
		brands = append(brands, b)
	}
	sort.Slice(brands, func(i, j int) bool {
		if counts[brands[i]] != counts[brands[j]] {
			return counts[brands[i]] > counts[brands[j]]
		}
		return brands[i] < brands[j]
	})
	if len(brands) > n {
		brands = brands[:n]
	}
	return brands
}
