package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	"github.com/tmcosta/vendas-pos-api/internal/domain/enum"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"github.com/tmcosta/vendas-pos-api/pkg/apperror"
	"github.com/tmcosta/vendas-pos-api/pkg/money"
	"go.uber.org/zap"
)

// SaleLineInput is one cart line as submitted by the POS.
type SaleLineInput struct {
	ProductCode string
	Quantity    int
}

// PostSaleInput carries everything needed to post a sale. CashierID comes
// from the authenticated session, never from the request body.
type PostSaleInput struct {
	CashierID       uuid.UUID
	CustomerID      *uuid.UUID
	Items           []SaleLineInput
	DiscountApplied bool
	PaymentMethod   enum.PaymentMethod
	AmountTendered  decimal.Decimal
}

// SaleService is the sale posting engine. PostSale validates the cart,
// computes totals, and commits the sale atomically: stock decrements, the
// sale record with item snapshots, and the customer ledger either all apply
// or none do.
type SaleService struct {
	saleRepo     domainRepo.SaleRepository
	productRepo  domainRepo.ProductRepository
	customerRepo domainRepo.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo domainRepo.SaleRepository,
	productRepo domainRepo.ProductRepository,
	customerRepo domainRepo.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// PostSale validates and commits a sale. Validation order: empty cart, then
// unknown products, then the quantity pre-check, then cash tender against the
// computed total. The authoritative stock check happens inside the commit via
// the conditional decrement, so a concurrent sale can still surface an
// insufficient-stock error here even after the pre-check passed.
func (s *SaleService) PostSale(ctx context.Context, input *PostSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewEmptyCartError()
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Quantity for product %q must be positive", line.ProductCode))
		}
	}

	// Merge duplicate codes so one product appears in at most one line.
	quantities := make(map[string]int, len(input.Items))
	order := make([]string, 0, len(input.Items))
	for _, line := range input.Items {
		if _, seen := quantities[line.ProductCode]; !seen {
			order = append(order, line.ProductCode)
		}
		quantities[line.ProductCode] += line.Quantity
	}

	products, err := s.productRepo.GetActiveByCodes(ctx, order)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	byCode := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byCode[p.Code] = p
	}
	for _, code := range order {
		if _, ok := byCode[code]; !ok {
			return nil, apperror.NewUnknownProductError(code)
		}
	}

	// Advisory pre-check. Catches the common case before opening a
	// transaction; the conditional decrement inside CreatePosted is what
	// actually guarantees stock never goes negative.
	var short []string
	for _, code := range order {
		if byCode[code].Stock < quantities[code] {
			short = append(short, code)
		}
	}
	if len(short) > 0 {
		return nil, apperror.NewInsufficientStockError(short)
	}

	var customer *entity.Customer
	if input.CustomerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, apperror.NewStorageError(err)
		}
		if customer == nil || !customer.Active {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	subtotal := money.Zero
	tax := money.Zero
	items := make([]entity.SaleItem, 0, len(order))
	decrements := make(map[uuid.UUID]int, len(order))
	for _, code := range order {
		product := byCode[code]
		qty := quantities[code]
		lineSubtotal := money.LineSubtotal(product.SalePrice, qty)
		subtotal = subtotal.Add(lineSubtotal)
		// Tax is computed on the undiscounted line amount.
		tax = tax.Add(money.LineTax(lineSubtotal, product.IVARate))
		items = append(items, entity.SaleItem{
			ProductID:   product.ID,
			ProductCode: product.Code,
			ProductName: product.Name,
			UnitPrice:   product.SalePrice,
			IVARate:     product.IVARate,
			Quantity:    qty,
			LineTotal:   lineSubtotal,
		})
		decrements[product.ID] = qty
	}
	subtotal = money.Round(subtotal)

	discount := money.Zero
	if input.DiscountApplied && customer != nil && customer.DiscountRate.IsPositive() {
		discount = money.Discount(subtotal, customer.DiscountRate)
	}
	total := money.Total(subtotal, discount, tax)

	tendered := input.AmountTendered
	change := money.Zero
	if input.PaymentMethod == enum.PaymentCash {
		if tendered.LessThan(total) {
			return nil, apperror.NewInsufficientPaymentError(total.StringFixed(2), tendered.StringFixed(2))
		}
		change = money.Round(tendered.Sub(total))
	} else {
		// Non-cash payments are exact by definition.
		tendered = total
	}

	sale := &entity.Sale{
		CustomerID:     input.CustomerID,
		CashierID:      input.CashierID,
		Status:         enum.SaleStatusCompleted,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      money.Round(tax),
		Total:          total,
		PaymentMethod:  input.PaymentMethod,
		AmountTendered: tendered,
		ChangeDue:      change,
		Items:          items,
	}

	// Retry once on a sale number collision; the timestamp component makes a
	// second collision effectively impossible outside a clock problem.
	for attempt := 0; attempt < 2; attempt++ {
		sale.SaleNumber = newSaleNumber()
		insufficient, err := s.saleRepo.CreatePosted(ctx, sale, decrements)
		if errors.Is(err, domainRepo.ErrDuplicateSaleNumber) {
			zap.L().Warn("sale number collision, retrying", zap.String("sale_number", sale.SaleNumber))
			continue
		}
		if err != nil {
			return nil, apperror.NewStorageError(err)
		}
		if len(insufficient) > 0 {
			codes := make([]string, 0, len(insufficient))
			for _, id := range insufficient {
				for _, p := range products {
					if p.ID == id {
						codes = append(codes, p.Code)
						break
					}
				}
			}
			return nil, apperror.NewInsufficientStockError(codes)
		}
		zap.L().Info("sale posted",
			zap.String("sale_number", sale.SaleNumber),
			zap.String("total", sale.Total.StringFixed(2)),
			zap.Int("items", len(sale.Items)))
		return s.saleRepo.GetWithItems(ctx, sale.ID)
	}
	return nil, apperror.NewSaleNumberConflictError()
}

// GetSale returns a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetSaleByNumber returns a sale by its business key
func (s *SaleService) GetSaleByNumber(ctx context.Context, saleNumber string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetBySaleNumber(ctx, saleNumber)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales returns sales matching the filters with a total count
func (s *SaleService) ListSales(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.NewStorageError(err)
	}
	return sales, total, nil
}

// VoidSale reverses a completed sale: the status flips to voided, every line
// quantity returns to stock, and the customer ledger is rolled back, all in
// one transaction.
func (s *SaleService) VoidSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusVoided {
		return nil, apperror.NewConflictError("Sale is already voided")
	}
	if err := s.saleRepo.Void(ctx, sale); err != nil {
		// A concurrent void can land between the status check above and the
		// conditional flip; the repository reports it so stock is only
		// restored once.
		if errors.Is(err, domainRepo.ErrSaleAlreadyVoided) {
			return nil, apperror.NewConflictError("Sale is already voided")
		}
		return nil, apperror.NewStorageError(err)
	}
	zap.L().Info("sale voided", zap.String("sale_number", sale.SaleNumber))
	return s.saleRepo.GetWithItems(ctx, id)
}

// newSaleNumber builds a sale number from the current timestamp plus a
// three digit random suffix, e.g. V20250831143025847.
func newSaleNumber() string {
	return fmt.Sprintf("V%s%d", time.Now().Format("20060102150405"), 100+rand.Intn(900))
}
