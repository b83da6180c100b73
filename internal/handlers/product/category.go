package product

import (
	"net/http"

	"glowmart_back_end/internal/cache"
	"glowmart_back_end/internal/models"
	"glowmart_back_end/internal/search"

	"github.com/gin-gonic/gin"
)

// GetCategories derives the category listing by grouping products on the
// fly. Categories are not stored; the aggregates are recomputed per fetch.
func GetCategories(c *gin.Context) {
	products, err := cache.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Category fetch failed", "retryable": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": models.BuildCategorySummaries(products)})
}

// GetCategoryProducts lists the products of one category slug with the
// usual price filter and sort.
func GetCategoryProducts(c *gin.Context) {
	slug := c.Param("slug")

	products, err := cache.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Product fetch failed", "retryable": true})
		return
	}

	minPrice, maxPrice, ok := priceBounds(c)
	if !ok {
		return
	}

	filtered := search.Filter(products, slug, minPrice, maxPrice)
	if len(filtered) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No products in category " + slug})
		return
	}

	sortBy, err := search.ParseSortBy(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if sortBy != search.SortRelevance {
		search.Sort(filtered, sortBy)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": filtered, "count": len(filtered)})
}
