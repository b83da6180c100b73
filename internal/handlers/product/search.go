package product

import (
	"net/http"
	"strconv"

	"glowmart_back_end/internal/cache"
	"glowmart_back_end/internal/search"

	"github.com/gin-gonic/gin"
)

// GetProducts lists the catalog, optionally filtered by category and price
// bounds and ordered by the sort key. Filter and sort are recombined on
// every call; nothing incremental is cached.
func GetProducts(c *gin.Context) {
	products, err := cache.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Product fetch failed", "retryable": true})
		return
	}

	minPrice, maxPrice, ok := priceBounds(c)
	if !ok {
		return
	}

	filtered := search.Filter(products, c.Query("category"), minPrice, maxPrice)

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

// SearchProducts is the relevance-ranked free-text search: substring
// filter first, then score ordering (or a direct field sort).
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Query parameter q is required"})
		return
	}

	sortBy, err := search.ParseSortBy(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	products, err := cache.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Product fetch failed", "retryable": true})
		return
	}

	minPrice, maxPrice, ok := priceBounds(c)
	if !ok {
		return
	}
	if category := c.Query("category"); category != "" || minPrice != nil || maxPrice != nil {
		products = search.Filter(products, category, minPrice, maxPrice)
	}

	results := search.Search(products, query, sortBy)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": results, "count": len(results)})
}

// Typeahead serves the navigation suggestions: first five token matches in
// list order, no ranking.
func Typeahead(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []any{}})
		return
	}

	products, err := cache.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Product fetch failed", "retryable": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": search.Typeahead(products, query)})
}

func priceBounds(c *gin.Context) (minPrice, maxPrice *float64, ok bool) {
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid min_price"})
			return nil, nil, false
		}
		minPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid max_price"})
			return nil, nil, false
		}
		maxPrice = &v
	}
	return minPrice, maxPrice, true
}
