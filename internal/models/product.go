package models

import (
	"strings"
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Brand       string     `json:"brand" db:"brand"`
	Category    string     `json:"category" db:"category"`
	Price       float64    `json:"price" db:"price"`
	Discount    float64    `json:"discount" db:"discount"`
	FinalPrice  float64    `json:"finalPrice" db:"final_price"`
	Stock       int        `json:"stock" db:"stock"`
	Rating      float64    `json:"rating" db:"rating"`
	Features    []string   `json:"features" db:"features"`
	Ingredients []string   `json:"ingredients" db:"ingredients"`
	Tags        []string   `json:"tags" db:"tags"`

	// Variant attributes, category-dependent and optional.
	Sizes          []string `json:"sizes,omitempty" db:"sizes"`
	Color          string   `json:"color,omitempty" db:"color"`
	Material       string   `json:"material,omitempty" db:"material"`
	Shade          string   `json:"shade,omitempty" db:"shade"`
	Volume         string   `json:"volume,omitempty" db:"volume"`
	SkinType       string   `json:"skinType,omitempty" db:"skin_type"`
	ExpirationDate string   `json:"expirationDate,omitempty" db:"expiration_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Recalculate derives FinalPrice from Price and Discount. Every write path
// must call it; FinalPrice is never mutated independently.
func (p *Product) Recalculate() {
	p.FinalPrice = FinalPrice(p.Price, p.Discount)
}

// UnitPrice is the price a cart or order line pays for this product:
// the discounted price when a discount applies, the list price otherwise.
func (p *Product) UnitPrice() float64 {
	if p.Discount > 0 {
		return p.FinalPrice
	}
	return p.Price
}

// InStock reports whether the product can be purchased. Zero stock means
// unavailable; the catalog still lists it.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// MatchesCategory compares the free-text category against a URL slug,
// case-insensitively.
func (p *Product) MatchesCategory(slug string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Category), strings.TrimSpace(slug))
}
