package orders

import (
	"context"
	"sort"
	"sync"

	"glowmart_back_end/internal/models"

	"github.com/gocql/gocql"
)

// MemoryStore keeps orders in a map. Used by tests and local development;
// production uses the Scylla store.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[gocql.UUID]models.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[gocql.UUID]models.Order)}
}

func (s *MemoryStore) Insert(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = *order
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; !ok {
		return ErrOrderNotFound
	}
	s.orders[order.ID] = *order
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id gocql.UUID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

func (s *MemoryStore) GetByRef(ctx context.Context, ref string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.orders {
		if order.LegacyRef == ref {
			o := order
			return &o, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MemoryCatalog is the test Catalog: a fixed product set keyed by id.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryCatalog(products ...models.Product) *MemoryCatalog {
	c := &MemoryCatalog{products: make(map[string]models.Product)}
	for _, p := range products {
		c.products[p.ID.String()] = p
	}
	return c
}

func (c *MemoryCatalog) Put(id string, p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[id] = p
}

func (c *MemoryCatalog) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return nil, gocql.ErrNotFound
	}
	return &p, nil
}
