package repository

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	"github.com/tmcosta/vendas-pos-api/internal/domain/enum"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// errInsufficientStock aborts the posting transaction when a conditional
// decrement matches no row. It never escapes CreatePosted.
var errInsufficientStock = errors.New("insufficient stock")

// CreatePosted commits the sale record, its items, the conditional stock
// decrements and the customer ledger update atomically. The decrement is
// "UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?";
// checking and decrementing in separate statements would race against
// concurrent postings.
func (r *saleRepository) CreatePosted(ctx context.Context, sale *entity.Sale, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var insufficient []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range sortedProductIDs(decrements) {
			qty := decrements[id]
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND stock >= ?", id, qty).
				Update("stock", gorm.Expr("stock - ?", qty))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				insufficient = append(insufficient, id)
			}
		}
		if len(insufficient) > 0 {
			return errInsufficientStock
		}

		// Inserts the sale row and its items via the association.
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		if sale.CustomerID != nil {
			result := tx.Model(&entity.Customer{}).
				Where("id = ?", *sale.CustomerID).
				Updates(map[string]interface{}{
					"lifetime_total":   gorm.Expr("lifetime_total + ?", sale.Total),
					"last_purchase_at": sale.CreatedAt,
				})
			if result.Error != nil {
				return result.Error
			}
		}

		return nil
	})

	if errors.Is(err, errInsufficientStock) {
		return insufficient, nil
	}
	if isUniqueViolation(err) {
		return nil, domainRepo.ErrDuplicateSaleNumber
	}
	return nil, err
}

// Void reverses a posted sale: status flip, stock restoration for every
// line, and ledger rollback, in one transaction. The flip is conditional on
// the sale still being completed; two concurrent voids would otherwise both
// restore stock.
func (r *saleRepository) Void(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Sale{}).
			Where("id = ? AND status = ?", sale.ID, enum.SaleStatusCompleted).
			Update("status", enum.SaleStatusVoided)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrSaleAlreadyVoided
		}

		for _, item := range sale.Items {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		if sale.CustomerID != nil {
			if err := tx.Model(&entity.Customer{}).
				Where("id = ?", *sale.CustomerID).
				Update("lifetime_total", gorm.Expr("lifetime_total - ?", sale.Total)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Customer").Preload("Cashier").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Customer").
		First(&sale, "sale_number = ?", saleNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}
	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		// End date is inclusive: everything before the following day.
		query = query.Where("created_at < ?", params.EndDate.AddDate(0, 0, 1))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

// sortedProductIDs returns the decrement keys in a fixed order so that
// concurrent postings sharing products lock the rows in the same sequence
// and cannot deadlock each other.
func sortedProductIDs(decrements map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(decrements))
	for id := range decrements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
