package models

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
)

// OrderStatus values. Mutations happen only through the order service;
// the browser never writes a status.
type OrderStatus string

const (
	OrderCreated        OrderStatus = "created"
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderPaid           OrderStatus = "paid"
	OrderPaymentFailed  OrderStatus = "payment_failed"
	OrderCODConfirmed   OrderStatus = "cash_on_delivery_confirmed"
)

// OrderItem is a line frozen at order-creation time. Later product price
// edits must not leak into it.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // unit price at creation
}

type ShippingAddress struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

// PaymentInfo records the gateway side of an order for audit.
type PaymentInfo struct {
	Method            string     `json:"method,omitempty"`
	TransactionID     string     `json:"transactionId,omitempty"`
	GatewayStatus     string     `json:"gatewayStatus,omitempty"`
	ValidationPayload string     `json:"validationPayload,omitempty"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
}

type Order struct {
	ID       gocql.UUID `json:"id"`
	UserID   string     `json:"user_id"`
	// LegacyRef is the string reference round-tripped through the gateway
	// (value_a). Lookup falls back to it when the primary id does not parse.
	LegacyRef       string          `json:"ref"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	TotalPrice      float64         `json:"totalPrice"`
	Status          OrderStatus     `json:"status"`
	PaymentInfo     PaymentInfo     `json:"paymentInfo"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SnapshotTotal sums the frozen line items; it is the authoritative amount
// for any payment attempt.
func SnapshotTotal(items []OrderItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	f, _ := total.Round(2).Float64()
	return f
}
