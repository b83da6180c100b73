package search

import (
	"strings"

	"glowmart_back_end/internal/models"
)

const typeaheadLimit = 5

// Typeahead returns the first matches in list order, capped at five, with
// no scoring pass. Matching is word-boundary tolerant: the query hits if
// any space-separated token of name, brand or category contains it.
func Typeahead(products []models.Product, query string) []models.Product {
	q := normalize(query)
	if q == "" {
		return nil
	}

	out := make([]models.Product, 0, typeaheadLimit)
	for _, p := range products {
		if tokenContains(p.Name, q) || tokenContains(p.Brand, q) || tokenContains(p.Category, q) {
			out = append(out, p)
			if len(out) == typeaheadLimit {
				break
			}
		}
	}
	return out
}

func tokenContains(value, q string) bool {
	for _, token := range strings.Fields(normalize(value)) {
		if strings.Contains(token, q) {
			return true
		}
	}
	return false
}
