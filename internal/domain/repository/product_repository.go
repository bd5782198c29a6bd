package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	"github.com/tmcosta/vendas-pos-api/pkg/pagination"
)

// ProductFilterParams holds product listing filters
type ProductFilterParams struct {
	Pagination      *pagination.PaginationParams
	Search          string
	LowStock        bool
	IncludeInactive bool
}

// ProductRepository is the catalog lookup interface. The sale posting engine
// resolves cart lines through GetActiveByCodes and relies on the sale
// repository's conditional decrement for the authoritative stock check.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetActiveByCodes resolves multiple product codes in one query,
	// returning only active products.
	GetActiveByCodes(ctx context.Context, codes []string) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// Restock atomically increments stock by the given quantity.
	Restock(ctx context.Context, id uuid.UUID, quantity int) error
}
