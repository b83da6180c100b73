package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"glowmart_back_end/internal/database"
	"glowmart_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaStore persists orders in the orders keyspace. Line items, shipping
// address and payment info are frozen snapshots, stored as JSON text
// columns; they are never queried field-by-field.
type ScyllaStore struct{}

func NewScyllaStore() *ScyllaStore {
	return &ScyllaStore{}
}

func (s *ScyllaStore) Insert(ctx context.Context, order *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	items, addr, pay, err := marshalOrder(order)
	if err != nil {
		return err
	}
	return session.Query(`
		INSERT INTO orders (order_id, order_ref, user_id, items, shipping_address, payment_info, total_price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.LegacyRef, order.UserID, items, addr, pay,
		order.TotalPrice, string(order.Status), order.CreatedAt, order.UpdatedAt,
	).WithContext(ctx).Exec()
}

func (s *ScyllaStore) Update(ctx context.Context, order *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	items, addr, pay, err := marshalOrder(order)
	if err != nil {
		return err
	}
	return session.Query(`
		UPDATE orders SET items = ?, shipping_address = ?, payment_info = ?, total_price = ?, status = ?, updated_at = ?
		WHERE order_id = ?`,
		items, addr, pay, order.TotalPrice, string(order.Status), order.UpdatedAt, order.ID,
	).WithContext(ctx).Exec()
}

func (s *ScyllaStore) GetByID(ctx context.Context, id gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	return scanOrder(session.Query(`
		SELECT order_id, order_ref, user_id, items, shipping_address, payment_info, total_price, status, created_at, updated_at
		FROM orders WHERE order_id = ?`, id).WithContext(ctx))
}

func (s *ScyllaStore) GetByRef(ctx context.Context, ref string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	// order_ref carries a secondary index; the reference is what the
	// gateway round-trips.
	return scanOrder(session.Query(`
		SELECT order_id, order_ref, user_id, items, shipping_address, payment_info, total_price, status, created_at, updated_at
		FROM orders WHERE order_ref = ?`, ref).WithContext(ctx))
}

func (s *ScyllaStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	iter := session.Query(`
		SELECT order_id, order_ref, user_id, items, shipping_address, payment_info, total_price, status, created_at, updated_at
		FROM orders WHERE user_id = ? ALLOW FILTERING`, userID).WithContext(ctx).Iter()

	var out []models.Order
	for {
		order, ok := scanOrderRow(iter)
		if !ok {
			break
		}
		out = append(out, *order)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func marshalOrder(order *models.Order) (items, addr, pay string, err error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal items: %w", err)
	}
	addrJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal shipping address: %w", err)
	}
	payJSON, err := json.Marshal(order.PaymentInfo)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal payment info: %w", err)
	}
	return string(itemsJSON), string(addrJSON), string(payJSON), nil
}

func scanOrder(q *gocql.Query) (*models.Order, error) {
	var (
		order            models.Order
		items, addr, pay string
		status           string
	)
	err := q.Scan(&order.ID, &order.LegacyRef, &order.UserID, &items, &addr, &pay,
		&order.TotalPrice, &status, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := unmarshalOrder(&order, items, addr, pay, status); err != nil {
		return nil, err
	}
	return &order, nil
}

func scanOrderRow(iter *gocql.Iter) (*models.Order, bool) {
	var (
		order            models.Order
		items, addr, pay string
		status           string
	)
	if !iter.Scan(&order.ID, &order.LegacyRef, &order.UserID, &items, &addr, &pay,
		&order.TotalPrice, &status, &order.CreatedAt, &order.UpdatedAt) {
		return nil, false
	}
	if err := unmarshalOrder(&order, items, addr, pay, status); err != nil {
		return nil, false
	}
	return &order, true
}

func unmarshalOrder(order *models.Order, items, addr, pay, status string) error {
	order.Status = models.OrderStatus(status)
	if err := json.Unmarshal([]byte(items), &order.Items); err != nil {
		return fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal([]byte(addr), &order.ShippingAddress); err != nil {
		return fmt.Errorf("unmarshal shipping address: %w", err)
	}
	if err := json.Unmarshal([]byte(pay), &order.PaymentInfo); err != nil {
		return fmt.Errorf("unmarshal payment info: %w", err)
	}
	return nil
}

// ScyllaCatalog resolves products from the products keyspace for
// order-creation validation.
type ScyllaCatalog struct{}

func NewScyllaCatalog() *ScyllaCatalog {
	return &ScyllaCatalog{}
}

func (c *ScyllaCatalog) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}
	productID, err := gocql.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", id, err)
	}
	var p models.Product
	err = session.Query(`
		SELECT product_id, name, brand, category, price, discount, final_price, stock
		FROM products WHERE product_id = ?`, productID).WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.Price, &p.Discount, &p.FinalPrice, &p.Stock)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
