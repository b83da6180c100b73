package search

import (
	"strings"

	"glowmart_back_end/internal/models"
)

// Weight tiers per field. Tiers within a field are mutually exclusive;
// only the highest applicable one contributes.
const (
	nameExact    = 100
	namePrefix   = 80
	nameContains = 60

	brandExact    = 50
	brandPrefix   = 40
	brandContains = 30

	categoryExact    = 30
	categoryPrefix   = 20
	categoryContains = 10

	descriptionContains = 5
)

// Score computes the additive, case-insensitive relevance of a product for
// a query. It orders results only; inclusion is decided by Matches.
func Score(p models.Product, query string) int {
	q := normalize(query)
	if q == "" {
		return 0
	}

	score := fieldScore(p.Name, q, nameExact, namePrefix, nameContains)
	score += fieldScore(p.Brand, q, brandExact, brandPrefix, brandContains)
	score += fieldScore(p.Category, q, categoryExact, categoryPrefix, categoryContains)

	// Description has a single substring tier.
	if strings.Contains(normalize(p.Description), q) {
		score += descriptionContains
	}
	return score
}

// Matches is the inclusion filter: any of the four fields contains the
// query as a substring. Kept separate from Score on purpose; filtering and
// ranking are two passes.
func Matches(p models.Product, query string) bool {
	q := normalize(query)
	if q == "" {
		return false
	}
	return strings.Contains(normalize(p.Name), q) ||
		strings.Contains(normalize(p.Brand), q) ||
		strings.Contains(normalize(p.Category), q) ||
		strings.Contains(normalize(p.Description), q)
}

func fieldScore(value, q string, exact, prefix, contains int) int {
	v := normalize(value)
	switch {
	case v == "":
		return 0
	case v == q:
		return exact
	case strings.HasPrefix(v, q):
		return prefix
	case strings.Contains(v, q):
		return contains
	default:
		return 0
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
