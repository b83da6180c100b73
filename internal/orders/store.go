package orders

import (
	"context"

	"glowmart_back_end/internal/models"

	"github.com/gocql/gocql"
)

// Store persists orders. The Scylla implementation backs production; the
// memory one backs tests and local development.
type Store interface {
	Insert(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id gocql.UUID) (*models.Order, error)
	GetByRef(ctx context.Context, ref string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

// Catalog resolves cart lines against the product store at order-creation
// time.
type Catalog interface {
	ProductByID(ctx context.Context, id string) (*models.Product, error)
}
