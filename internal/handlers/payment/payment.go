package payment

import (
	"errors"
	"log"
	"net/http"

	"glowmart_back_end/internal/models"
	"glowmart_back_end/internal/orders"
	"glowmart_back_end/internal/payment"

	"github.com/gin-gonic/gin"
)

// Handler exposes payment initiation and the gateway callbacks.
type Handler struct {
	Orders      *orders.Service
	Coordinator *payment.Coordinator
	Validator   payment.Validator
	Guard       TranGuard
	FrontendURL string

	// OnPaid runs after a confirmed payment (confirmation email, cart
	// cleanup). Always fire-and-forget.
	OnPaid func(order models.Order)
}

type initiateInput struct {
	OrderID       string  `json:"orderId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	Customer      struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Phone      string `json:"phone" binding:"required"`
		Address    string `json:"address"`
		City       string `json:"city"`
		PostalCode string `json:"postalCode"`
		Country    string `json:"country"`
	} `json:"customerInfo" binding:"required"`
}

// InitiatePayment dispatches checkout for an order. COD resolves here;
// everything else answers with the gateway URL for a full-page redirect.
func (h *Handler) InitiatePayment(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var input initiateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment data", "details": err.Error()})
		return
	}

	method, err := models.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	order, err := h.Orders.Lookup(c.Request.Context(), input.OrderID)
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}

	result, err := h.Coordinator.Initiate(c.Request.Context(), order, method, input.Amount, payment.CustomerInfo{
		Name:       input.Customer.Name,
		Email:      input.Customer.Email,
		Phone:      input.Customer.Phone,
		Address:    input.Customer.Address,
		City:       input.Customer.City,
		PostalCode: input.Customer.PostalCode,
		Country:    input.Customer.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrAmountMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, payment.ErrStoreCredentials):
			// The reclassified gateway misconfiguration: actionable for
			// the user, and notably not the raw gateway string.
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, orders.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Order is not payable in its current state"})
		default:
			// Gateway init failures pass through verbatim.
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
		}
		return
	}

	if method == models.MethodCOD && h.OnPaid != nil {
		go h.OnPaid(*order)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Success is the gateway's verification callback. Contract: it must never
// surface an error to the gateway — every path ends in a redirect, with
// failures only logged. A handler that errors out makes the gateway retry
// forever or abandon the transaction.
func (h *Handler) Success(c *gin.Context) {
	ctx := c.Request.Context()
	tranID := c.PostForm("tran_id")
	valID := c.PostForm("val_id")
	orderRef := c.PostForm("value_a")

	if tranID != "" && h.Guard.Processed(ctx, tranID) {
		// Gateway retry of an already-processed transaction.
		log.Printf("🔁 Duplicate callback for txn %s, redirecting without revalidation", tranID)
		h.redirectSuccess(c, orderRef)
		return
	}

	if valID == "" {
		valID = tranID
	}
	if valID == "" {
		log.Println("❌ Callback without tran_id/val_id")
		h.redirectFailure(c)
		return
	}

	// Server-to-server validation; never trust the browser-posted form.
	result, err := h.Validator.Validate(ctx, valID)
	if err != nil {
		log.Printf("❌ Gateway validation call failed for %s: %v", valID, err)
		h.redirectFailure(c)
		return
	}
	if !result.Trusted() {
		log.Printf("⚠️ Validation status %q for txn %s, not trusting", result.Status, tranID)
		h.redirectFailure(c)
		return
	}

	order, err := h.Orders.Lookup(ctx, orderRef)
	if err != nil {
		// Same outcome as a validation failure; existence is not leaked.
		log.Printf("❌ No order for callback reference %q", orderRef)
		h.redirectFailure(c)
		return
	}

	if err := h.Orders.MarkPaid(ctx, order, tranID, result.Status, result.Raw); err != nil {
		log.Printf("❌ Mark-paid failed for order %s: %v", order.LegacyRef, err)
		h.redirectFailure(c)
		return
	}

	if tranID != "" {
		h.Guard.MarkProcessed(ctx, tranID)
	}
	if h.OnPaid != nil {
		go h.OnPaid(*order)
	}

	log.Printf("✅ Order %s paid (txn %s)", order.LegacyRef, tranID)
	h.redirectSuccess(c, order.LegacyRef)
}

// Fail is the gateway's explicit-failure callback.
func (h *Handler) Fail(c *gin.Context) {
	ctx := c.Request.Context()
	orderRef := c.PostForm("value_a")

	if order, err := h.Orders.Lookup(ctx, orderRef); err == nil {
		if err := h.Orders.MarkFailed(ctx, order, c.PostForm("status")); err != nil {
			log.Printf("⚠️ Mark-failed skipped for order %s: %v", order.LegacyRef, err)
		}
	}
	h.redirectFailure(c)
}

// Cancel covers the user backing out on the gateway page. The order stays
// pending; a retry regenerates the attempt.
func (h *Handler) Cancel(c *gin.Context) {
	log.Printf("ℹ️ Payment cancelled for reference %q", c.PostForm("value_a"))
	c.Redirect(http.StatusFound, h.FrontendURL+"/payment/cancelled")
}

func (h *Handler) redirectSuccess(c *gin.Context, orderRef string) {
	c.Redirect(http.StatusFound, h.FrontendURL+"/payment/success?order="+orderRef)
}

func (h *Handler) redirectFailure(c *gin.Context) {
	// Generic on purpose: no order details, no error detail.
	c.Redirect(http.StatusFound, h.FrontendURL+"/payment/failed")
}
