package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"glowmart_back_end/internal/database"
	"glowmart_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const CartTTL = 30 * 24 * time.Hour // 30 days

// The server-side cart is a best-effort mirror of the browser's
// local-storage copy. The browser syncs fire-and-forget; divergence is
// tolerated and the local copy always wins (see the merge endpoint).

func cartKey(userID string) string { return "cart:" + userID }

func loadCart(ctx context.Context, userID string) models.Cart {
	cart := models.Cart{UserID: userID}
	data, err := database.Redis.Get(ctx, cartKey(userID)).Result()
	if err != nil || data == "" {
		return cart
	}
	if err := json.Unmarshal([]byte(data), &cart.Items); err != nil {
		log.Println("⚠️ Cart decode failed, starting empty:", err)
		cart.Items = nil
	}
	return cart
}

func saveCart(ctx context.Context, cart models.Cart) error {
	data, err := json.Marshal(cart.Items)
	if err != nil {
		return err
	}
	if err := database.Redis.Set(ctx, cartKey(cart.UserID), data, CartTTL).Err(); err != nil {
		return err
	}
	// Wake any open websocket for this user. Best effort.
	database.Redis.Publish(ctx, cartKey(cart.UserID), "updated")
	return nil
}

func cartResponse(cart models.Cart) gin.H {
	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return gin.H{"success": true, "data": gin.H{
		"items": items,
		"total": cart.Total(),
		"count": cart.Count(),
	}}
}

// GetCart returns the mirror. Redis only; no fallback store.
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(loadCart(c.Request.Context(), userID)))
}

// UpdateCart sets a product's quantity. Quantity 0 deletes the entry.
func UpdateCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cart data"})
		return
	}

	ctx := c.Request.Context()
	cart := loadCart(ctx, userID)

	if input.Quantity == 0 {
		cart.Remove(input.ProductID)
	} else {
		item, err := resolveCartItem(ctx, input.ProductID, input.Quantity)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		if item == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Insufficient stock"})
			return
		}
		cart.Set(*item)
	}

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cart save failed"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// RemoveFromCart deletes one product from the mirror.
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}
	productID := c.Query("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "productId is required"})
		return
	}

	ctx := c.Request.Context()
	cart := loadCart(ctx, userID)
	cart.Remove(productID)

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cart save failed"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// MergeCart folds the client's local-storage cart into the mirror. The
// client copy is authoritative for the session, so its quantities win.
func MergeCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var input struct {
		Items []struct {
			ProductID string `json:"productId" binding:"required"`
			Quantity  int    `json:"quantity" binding:"gte=0"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid cart data"})
		return
	}

	ctx := c.Request.Context()
	client := models.Cart{UserID: userID}
	for _, in := range input.Items {
		if in.Quantity == 0 {
			continue
		}
		item, err := resolveCartItem(ctx, in.ProductID, in.Quantity)
		if err != nil || item == nil {
			// Unresolvable lines are skipped, not fatal: a stale local
			// cart must not block the rest of the merge.
			continue
		}
		client.Set(*item)
	}

	cart := loadCart(ctx, userID)
	cart.Merge(client)

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cart save failed"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// ClearCart wipes the mirror, used after a successful checkout.
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	ctx := c.Request.Context()
	if err := database.Redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Cart clear failed"})
		return
	}
	database.Redis.Publish(ctx, cartKey(userID), "cleared")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

// resolveCartItem validates the product and freezes its current unit
// price into the cart line. Returns (nil, nil) on insufficient stock.
func resolveCartItem(ctx context.Context, productID string, quantity int) (*models.CartItem, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}
	id, err := gocql.ParseUUID(productID)
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = session.Query(`SELECT product_id, name, price, discount, final_price, stock FROM products WHERE product_id = ?`, id).
		WithContext(ctx).Scan(&p.ID, &p.Name, &p.Price, &p.Discount, &p.FinalPrice, &p.Stock)
	if err != nil {
		return nil, err
	}
	if p.Stock < quantity {
		return nil, nil
	}

	return &models.CartItem{
		ProductID: productID,
		Name:      p.Name,
		Price:     p.UnitPrice(),
		Quantity:  quantity,
	}, nil
}
