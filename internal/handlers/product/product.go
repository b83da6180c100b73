package product

import (
	"log"
	"net/http"
	"time"

	"glowmart_back_end/internal/cache"
	"glowmart_back_end/internal/database"
	"glowmart_back_end/internal/models"
	"glowmart_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

type productInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Discount    float64  `json:"discount" binding:"gte=0,lte=100"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Rating      float64  `json:"rating" binding:"gte=0,lte=5"`
	Features    []string `json:"features"`
	Ingredients []string `json:"ingredients"`
	Tags        []string `json:"tags"`

	Sizes          []string `json:"sizes"`
	Color          string   `json:"color"`
	Material       string   `json:"material"`
	Shade          string   `json:"shade"`
	Volume         string   `json:"volume"`
	SkinType       string   `json:"skinType"`
	ExpirationDate string   `json:"expirationDate"`
}

func (in *productInput) toProduct(id gocql.UUID, createdAt time.Time) models.Product {
	p := models.Product{
		ID:             id,
		Name:           in.Name,
		Description:    in.Description,
		Brand:          in.Brand,
		Category:       in.Category,
		Price:          in.Price,
		Discount:       in.Discount,
		Stock:          in.Stock,
		Rating:         in.Rating,
		Features:       in.Features,
		Ingredients:    in.Ingredients,
		Tags:           in.Tags,
		Sizes:          in.Sizes,
		Color:          in.Color,
		Material:       in.Material,
		Shade:          in.Shade,
		Volume:         in.Volume,
		SkinType:       in.SkinType,
		ExpirationDate: in.ExpirationDate,
		CreatedAt:      createdAt,
		UpdatedAt:      time.Now(),
	}
	// FinalPrice is derived on every write; it never arrives from the client.
	p.Recalculate()
	return p
}

// CreateProduct is the admin surface for adding a product.
func CreateProduct(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product data", "details": err.Error()})
		return
	}

	p := in.toProduct(gocql.UUID(uuid.New()), time.Now())

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	err = session.Query(`
		INSERT INTO products (product_id, name, description, brand, category, price, discount, final_price,
			stock, rating, features, ingredients, tags, sizes, color, material, shade, volume,
			skin_type, expiration_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Brand, p.Category, p.Price, p.Discount, p.FinalPrice,
		p.Stock, p.Rating, p.Features, p.Ingredients, p.Tags, p.Sizes, p.Color, p.Material,
		p.Shade, p.Volume, p.SkinType, p.ExpirationDate, p.CreatedAt, p.UpdatedAt,
	).WithContext(c.Request.Context()).Exec()
	if err != nil {
		log.Println("❌ Product insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Product creation failed"})
		return
	}

	services.IndexProduct(c.Request.Context(), p)
	cache.InvalidateProducts(c.Request.Context())

	log.Printf("✅ Product created: %s (%s)", p.Name, p.ID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": p})
}

// UpdateProduct replaces a product's editable fields and rederives
// FinalPrice.
func UpdateProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product data", "details": err.Error()})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	var createdAt time.Time
	if err := session.Query(`SELECT created_at FROM products WHERE product_id = ?`, id).
		WithContext(c.Request.Context()).Scan(&createdAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	p := in.toProduct(id, createdAt)

	err = session.Query(`
		UPDATE products SET name = ?, description = ?, brand = ?, category = ?, price = ?, discount = ?,
			final_price = ?, stock = ?, rating = ?, features = ?, ingredients = ?, tags = ?, sizes = ?,
			color = ?, material = ?, shade = ?, volume = ?, skin_type = ?, expiration_date = ?, updated_at = ?
		WHERE product_id = ?`,
		p.Name, p.Description, p.Brand, p.Category, p.Price, p.Discount, p.FinalPrice,
		p.Stock, p.Rating, p.Features, p.Ingredients, p.Tags, p.Sizes, p.Color, p.Material,
		p.Shade, p.Volume, p.SkinType, p.ExpirationDate, p.UpdatedAt, p.ID,
	).WithContext(c.Request.Context()).Exec()
	if err != nil {
		log.Println("❌ Product update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Product update failed"})
		return
	}

	services.IndexProduct(c.Request.Context(), p)
	cache.InvalidateProducts(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// DeleteProduct removes a product from the catalog and the index.
func DeleteProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Println("❌ Product delete failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Product deletion failed"})
		return
	}

	services.DeleteProduct(c.Request.Context(), id.String())
	cache.InvalidateProducts(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

// GetProduct fetches a single product by id.
func GetProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	products, err := cache.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Product fetch failed", "retryable": true})
		return
	}

	for _, p := range products {
		if p.ID == id {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
}
