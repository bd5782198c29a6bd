package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"github.com/tmcosta/vendas-pos-api/pkg/apperror"
	"gorm.io/gorm"
)

// ProductService handles catalog management
type ProductService struct {
	productRepo domainRepo.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo domainRepo.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput holds the fields for a new catalog item
type CreateProductInput struct {
	Code       string
	Name       string
	SalePrice  decimal.Decimal
	IVARate    decimal.Decimal
	Stock      int
	StockAlert int
}

// UpdateProductInput holds the editable fields of a product. Nil pointers
// leave the current value untouched. Code is immutable and Stock is mutated
// only through sales, voids and Restock.
type UpdateProductInput struct {
	Name       *string
	SalePrice  *decimal.Decimal
	IVARate    *decimal.Decimal
	StockAlert *int
}

// CreateProduct adds an item to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.SalePrice.IsNegative() {
		return nil, apperror.NewBadRequestError("Sale price cannot be negative")
	}
	if input.IVARate.IsNegative() || input.IVARate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, apperror.NewBadRequestError("IVA rate must be a fraction between 0 and 1")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}

	existing, err := s.productRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	product := &entity.Product{
		Code:       input.Code,
		Name:       input.Name,
		SalePrice:  input.SalePrice.Round(2),
		IVARate:    input.IVARate,
		Stock:      input.Stock,
		StockAlert: input.StockAlert,
		Active:     true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return product, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByCode returns a product by its business key
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct applies partial edits to a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.SalePrice != nil {
		if input.SalePrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Sale price cannot be negative")
		}
		product.SalePrice = input.SalePrice.Round(2)
	}
	if input.IVARate != nil {
		if input.IVARate.IsNegative() || input.IVARate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, apperror.NewBadRequestError("IVA rate must be a fraction between 0 and 1")
		}
		product.IVARate = *input.IVARate
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return product, nil
}

// DeactivateProduct soft-removes a product from the catalog. Historical
// sales keep their snapshots.
func (s *ProductService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError(err)
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if err := s.productRepo.Deactivate(ctx, id); err != nil {
		return apperror.NewStorageError(err)
	}
	return nil
}

// ListProducts returns products matching the filters with a total count
func (s *ProductService) ListProducts(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.NewStorageError(err)
	}
	return products, total, nil
}

// GetLowStock returns active products at or below their stock alert level
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return products, nil
}

// Restock adds quantity to a product's stock
func (s *ProductService) Restock(ctx context.Context, id uuid.UUID, quantity int) (*entity.Product, error) {
	if quantity <= 0 {
		return nil, apperror.NewBadRequestError("Restock quantity must be positive")
	}
	if err := s.productRepo.Restock(ctx, id, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Product")
		}
		return nil, apperror.NewStorageError(err)
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}
