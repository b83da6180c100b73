package payment

import (
	"context"
	"fmt"
	"log"

	"glowmart_back_end/internal/models"
	"glowmart_back_end/internal/orders"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coordinator dispatches checkout over the payment-method union. One
// initiator per redirect gateway; COD never leaves the process.
type Coordinator struct {
	orders     *orders.Service
	sslcommerz Initiator
	bkash      Initiator
	rocket     Initiator
	nagad      Initiator
}

func NewCoordinator(orderSvc *orders.Service, sslcommerz, bkash, rocket, nagad Initiator) *Coordinator {
	return &Coordinator{
		orders:     orderSvc,
		sslcommerz: sslcommerz,
		bkash:      bkash,
		rocket:     rocket,
		nagad:      nagad,
	}
}

// InitiateResult is either a confirmation route (COD) or a gateway URL the
// browser must be redirected to.
type InitiateResult struct {
	Status            models.OrderStatus `json:"status"`
	RedirectURL       string             `json:"paymentUrl,omitempty"`
	ConfirmationRoute string             `json:"confirmationRoute,omitempty"`
	TransactionID     string             `json:"transactionId,omitempty"`
}

// Initiate checks the amount against the order's stored total, then
// dispatches on the method. The amount check happens before any external
// call; a mismatch is a hard error, never silently corrected.
func (c *Coordinator) Initiate(ctx context.Context, order *models.Order, method models.PaymentMethod, amount float64, customer CustomerInfo) (InitiateResult, error) {
	if !decimal.NewFromFloat(amount).Equal(decimal.NewFromFloat(order.TotalPrice)) {
		return InitiateResult{}, fmt.Errorf("%w: got %.2f, order total is %.2f",
			ErrAmountMismatch, amount, order.TotalPrice)
	}

	switch method {
	case models.MethodCOD:
		if err := c.orders.MarkCODConfirmed(ctx, order); err != nil {
			return InitiateResult{}, err
		}
		log.Printf("💵 Order %s confirmed as cash on delivery", order.LegacyRef)
		return InitiateResult{
			Status:            models.OrderCODConfirmed,
			ConfirmationRoute: "/order-confirmation/" + order.LegacyRef,
		}, nil
	case models.MethodSSLCommerz:
		return c.redirectFlow(ctx, order, method, amount, customer, c.sslcommerz)
	case models.MethodBkash:
		return c.redirectFlow(ctx, order, method, amount, customer, c.bkash)
	case models.MethodRocket:
		return c.redirectFlow(ctx, order, method, amount, customer, c.rocket)
	case models.MethodNagad:
		return c.redirectFlow(ctx, order, method, amount, customer, c.nagad)
	default:
		return InitiateResult{}, fmt.Errorf("unsupported payment method %s", method)
	}
}

func (c *Coordinator) redirectFlow(ctx context.Context, order *models.Order, method models.PaymentMethod, amount float64, customer CustomerInfo, gateway Initiator) (InitiateResult, error) {
	transactionID := uuid.NewString()
	redirectURL, err := gateway.CreateSession(ctx, InitRequest{
		TransactionID: transactionID,
		Amount:        amount,
		Currency:      "BDT",
		OrderRef:      order.ID.String(),
		Customer:      customer,
	})
	if err != nil {
		log.Printf("❌ %s init failed for order %s: %v", method, order.LegacyRef, err)
		return InitiateResult{}, err
	}
	if err := c.orders.MarkPendingPayment(ctx, order, method.String(), transactionID); err != nil {
		return InitiateResult{}, err
	}
	log.Printf("💳 %s session opened for order %s (txn %s)", method, order.LegacyRef, transactionID)
	return InitiateResult{
		Status:        models.OrderPendingPayment,
		RedirectURL:   redirectURL,
		TransactionID: transactionID,
	}, nil
}
