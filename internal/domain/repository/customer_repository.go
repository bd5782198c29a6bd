package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	"github.com/tmcosta/vendas-pos-api/pkg/pagination"
)

// CustomerFilterParams holds customer listing filters
type CustomerFilterParams struct {
	Pagination      *pagination.PaginationParams
	Search          string
	IncludeInactive bool
}

// CustomerRepository is the customer ledger interface. Lifetime totals are
// mutated only by the sale repository inside the posting/void transactions.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByCard(ctx context.Context, cardID string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CustomerFilterParams) ([]entity.Customer, int64, error)
}
