package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	"github.com/tmcosta/vendas-pos-api/internal/domain/enum"
	"github.com/tmcosta/vendas-pos-api/pkg/pagination"
)

// ErrDuplicateSaleNumber is returned by CreatePosted when the generated sale
// number collides with an existing one. The posting engine regenerates the
// number and retries once.
var ErrDuplicateSaleNumber = errors.New("duplicate sale number")

// ErrSaleAlreadyVoided is returned by Void when the conditional status flip
// matches no row because another request voided the sale first.
var ErrSaleAlreadyVoided = errors.New("sale already voided")

// SaleFilterParams holds sale listing filters
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	CustomerID    *uuid.UUID
	CashierID     *uuid.UUID
	PaymentMethod *enum.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
}

// SaleRepository persists sales. CreatePosted and Void are the only write
// paths and each runs as a single storage transaction.
type SaleRepository interface {
	// CreatePosted commits a sale, its items, the per-product conditional
	// stock decrements, and the customer ledger update in one transaction.
	// Stock is decremented with "stock = stock - ? WHERE stock >= ?"; any
	// product whose row is not matched aborts the whole transaction and is
	// reported in the returned slice with no partial state left behind.
	CreatePosted(ctx context.Context, sale *entity.Sale, decrements map[uuid.UUID]int) (insufficient []uuid.UUID, err error)
	// Void marks a completed sale voided, restores stock for every line and
	// rolls the customer ledger back, all in one transaction.
	Void(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}
