package order

import (
	"log"
	"net/http"

	"glowmart_back_end/internal/models"
	"glowmart_back_end/internal/orders"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// Handler exposes the order endpoints over the order service.
type Handler struct {
	Orders *orders.Service
}

func NewHandler(svc *orders.Service) *Handler {
	return &Handler{Orders: svc}
}

type createOrderInput struct {
	Items []struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
}

// CreateOrder turns the submitted cart snapshot into a persisted order
// with status created. Validation failures never reach the database.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order data", "details": err.Error()})
		return
	}

	items := make([]models.CartItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, models.CartItem{ProductID: in.ProductID, Quantity: in.Quantity})
	}

	order, err := h.Orders.Create(c.Request.Context(), userID, items, input.ShippingAddress)
	if err != nil {
		if orders.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		log.Println("❌ Order creation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Order creation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
}

// GetMyOrders lists the authenticated user's orders, newest first.
func (h *Handler) GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	list, err := h.Orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Order listing failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Order fetch failed"})
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// GetOrder fetches one order; only its owner may read it.
func (h *Handler) GetOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	order, err := h.Orders.Get(c.Request.Context(), id)
	if err != nil || order.UserID != userID {
		// Same answer for missing and foreign orders.
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}
