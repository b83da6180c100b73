package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"` // unit price captured at add time
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cart is the server-side mirror of the browser's local-storage cart.
// The local copy stays authoritative; this one is a best-effort sync target.
type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// Set stores the quantity for a product. Quantity 0 (or less) deletes the
// entry; a zero-quantity row must never persist.
func (c *Cart) Set(item CartItem) {
	if item.Quantity <= 0 {
		c.Remove(item.ProductID)
		return
	}
	item.UpdatedAt = time.Now()
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i] = item
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Add increments the quantity for a product, creating the entry on first add.
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			item.Quantity += c.Items[i].Quantity
			c.Items[i] = item
			c.Items[i].UpdatedAt = time.Now()
			return
		}
	}
	item.UpdatedAt = time.Now()
	c.Items = append(c.Items, item)
}

func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Get(productID string) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

// Merge folds a client-side cart into this one. The client copy wins on
// conflicting quantities since local storage is the source of truth for
// the active session.
func (c *Cart) Merge(client Cart) {
	for _, it := range client.Items {
		c.Set(it)
	}
}

// Total is always derived, never stored: Σ quantity × unit price over the
// current entries.
func (c *Cart) Total() float64 {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	f, _ := total.Round(2).Float64()
	return f
}

func (c *Cart) Count() int {
	return len(c.Items)
}
