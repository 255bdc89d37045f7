package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktier/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByName(ctx context.Context, name string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindByCode(ctx context.Context, code int) (*Brand, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)
	// NextCode returns the highest assigned brand code plus one
	NextCode(ctx context.Context) (int, error)
	Save(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
}
