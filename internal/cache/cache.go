package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"glowmart_back_end/internal/database"
	"glowmart_back_end/internal/models"
)

const (
	ProductCacheTTL = 10 * time.Minute
	productsKey     = "products:all"
)

// GetProducts returns the full catalog, from Redis when warm, from
// ScyllaDB otherwise. Search, typeahead and the derived category
// aggregates all recompute over this list per request; the cache only
// bounds the fetch cost, it never holds derived results.
func GetProducts(ctx context.Context) ([]models.Product, error) {
	data, err := database.Redis.Get(ctx, productsKey).Result()
	if err == nil && data != "" {
		var products []models.Product
		if json.Unmarshal([]byte(data), &products) == nil {
			return products, nil
		}
	}

	products, err := loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, productsKey, jsonData, ProductCacheTTL)
	}
	return products, nil
}

// InvalidateProducts drops the cached catalog. Called by every admin write.
func InvalidateProducts(ctx context.Context) {
	if err := database.Redis.Del(ctx, productsKey).Err(); err != nil {
		log.Println("⚠️ Product cache invalidation failed:", err)
	}
}

func loadProducts(ctx context.Context) ([]models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`
		SELECT product_id, name, description, brand, category, price, discount, final_price,
		       stock, rating, features, ingredients, tags, sizes, color, material, shade,
		       volume, skin_type, expiration_date, created_at, updated_at
		FROM products`).WithContext(ctx).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Brand, &p.Category, &p.Price, &p.Discount,
		&p.FinalPrice, &p.Stock, &p.Rating, &p.Features, &p.Ingredients, &p.Tags, &p.Sizes,
		&p.Color, &p.Material, &p.Shade, &p.Volume, &p.SkinType, &p.ExpirationDate,
		&p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}
