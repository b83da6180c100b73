package orders

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"glowmart_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// Service owns the order lifecycle. Status moves only through its Mark*
// methods; nothing else writes a status.
type Service struct {
	store   Store
	catalog Catalog
}

func NewService(store Store, catalog Catalog) *Service {
	return &Service{store: store, catalog: catalog}
}

// Create turns a cart snapshot into a durable order with status created.
// Each item must resolve to a known product with stock; the unit price and
// name are frozen here so later product edits never track into the order.
// Stock itself is not decremented; it gates order creation only.
func (s *Service) Create(ctx context.Context, userID string, items []models.CartItem, addr models.ShippingAddress) (*models.Order, error) {
	if len(items) == 0 {
		return nil, validationErrorf("cart is empty")
	}

	snapshot := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, validationErrorf("invalid quantity %d for product %s", item.Quantity, item.ProductID)
		}
		product, err := s.catalog.ProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, validationErrorf("unknown product %s", item.ProductID)
		}
		if !product.InStock() {
			return nil, validationErrorf("product %s is out of stock", product.Name)
		}
		snapshot = append(snapshot, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.UnitPrice(),
		})
	}

	id := gocql.UUID(uuid.New())
	now := time.Now()
	order := &models.Order{
		ID:              id,
		UserID:          userID,
		LegacyRef:       orderRef(id),
		Items:           snapshot,
		ShippingAddress: addr,
		TotalPrice:      models.SnapshotTotal(snapshot),
		Status:          models.OrderCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	log.Printf("📦 Order %s created for %s (%.2f, %d items)", order.LegacyRef, userID, order.TotalPrice, len(snapshot))
	return order, nil
}

// MarkPendingPayment records a non-COD payment attempt. Allowed from
// created, from a previous pending attempt, and from payment_failed (a
// retry regenerates pending).
func (s *Service) MarkPendingPayment(ctx context.Context, order *models.Order, method, transactionID string) error {
	switch order.Status {
	case models.OrderCreated, models.OrderPendingPayment, models.OrderPaymentFailed:
	default:
		return fmt.Errorf("%w: %s → pending_payment", ErrInvalidTransition, order.Status)
	}
	order.Status = models.OrderPendingPayment
	order.PaymentInfo.Method = method
	order.PaymentInfo.TransactionID = transactionID
	order.UpdatedAt = time.Now()
	return s.store.Update(ctx, order)
}

// MarkCODConfirmed is the cash-on-delivery short circuit: terminal, no
// gateway involved.
func (s *Service) MarkCODConfirmed(ctx context.Context, order *models.Order) error {
	if order.Status != models.OrderCreated {
		return fmt.Errorf("%w: %s → cash_on_delivery_confirmed", ErrInvalidTransition, order.Status)
	}
	order.Status = models.OrderCODConfirmed
	order.PaymentInfo.Method = models.MethodCOD.String()
	order.UpdatedAt = time.Now()
	return s.store.Update(ctx, order)
}

// MarkPaid is the idempotent success transition invoked by the verification
// callback. A repeat call for an already-paid order (gateway retry) is a
// no-op success, not an error.
func (s *Service) MarkPaid(ctx context.Context, order *models.Order, transactionID, gatewayStatus, validationPayload string) error {
	if order.Status == models.OrderPaid {
		log.Printf("🔁 Order %s already paid, ignoring duplicate callback", order.LegacyRef)
		return nil
	}
	if order.Status != models.OrderPendingPayment {
		return fmt.Errorf("%w: %s → paid", ErrInvalidTransition, order.Status)
	}
	now := time.Now()
	order.Status = models.OrderPaid
	order.PaymentInfo.TransactionID = transactionID
	order.PaymentInfo.GatewayStatus = gatewayStatus
	order.PaymentInfo.ValidationPayload = validationPayload
	order.PaymentInfo.PaidAt = &now
	order.UpdatedAt = now
	return s.store.Update(ctx, order)
}

// MarkFailed records a gateway-reported failure. Terminal until the user
// retries, which goes back through MarkPendingPayment.
func (s *Service) MarkFailed(ctx context.Context, order *models.Order, gatewayStatus string) error {
	if order.Status != models.OrderPendingPayment {
		return fmt.Errorf("%w: %s → payment_failed", ErrInvalidTransition, order.Status)
	}
	order.Status = models.OrderPaymentFailed
	order.PaymentInfo.GatewayStatus = gatewayStatus
	order.UpdatedAt = time.Now()
	return s.store.Update(ctx, order)
}

// Lookup resolves the opaque reference the gateway round-trips: first as a
// UUID primary key, then as the legacy string reference, first hit wins.
func (s *Service) Lookup(ctx context.Context, ref string) (*models.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrOrderNotFound
	}
	if id, err := gocql.ParseUUID(ref); err == nil {
		if order, err := s.store.GetByID(ctx, id); err == nil {
			return order, nil
		}
	}
	return s.store.GetByRef(ctx, ref)
}

// Get fetches an order by primary id.
func (s *Service) Get(ctx context.Context, id gocql.UUID) (*models.Order, error) {
	return s.store.GetByID(ctx, id)
}

// ListByUser returns a user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	list, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// orderRef builds the short human reference carried in value_a.
func orderRef(id gocql.UUID) string {
	return "GM-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}
