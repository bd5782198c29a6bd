package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	"github.com/tmcosta/vendas-pos-api/internal/domain/enum"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"github.com/tmcosta/vendas-pos-api/pkg/apperror"
)

type fakeProductRepo struct {
	products map[string]entity.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	if p, ok := f.products[code]; ok {
		return &p, nil
	}
	return nil, nil
}
func (f *fakeProductRepo) GetActiveByCodes(ctx context.Context, codes []string) ([]entity.Product, error) {
	var out []entity.Product
	for _, c := range codes {
		if p, ok := f.products[c]; ok && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error  { return nil }
func (f *fakeProductRepo) Deactivate(ctx context.Context, id uuid.UUID) error   { return nil }
func (f *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Restock(ctx context.Context, id uuid.UUID, qty int) error { return nil }
func (f *fakeProductRepo) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]entity.Customer
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}
func (f *fakeCustomerRepo) GetByCard(ctx context.Context, cardID string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.CardID == cardID {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) Deactivate(ctx context.Context, id uuid.UUID) error   { return nil }
func (f *fakeCustomerRepo) List(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

// fakeSaleRepo records the sale handed to CreatePosted and can simulate
// collisions and concurrent stock exhaustion.
type fakeSaleRepo struct {
	created        *entity.Sale
	decrements     map[uuid.UUID]int
	createCalls    int
	duplicateTimes int
	insufficient   []uuid.UUID
	voided         *entity.Sale
	voidCalls      int
	loseVoidRace   bool
}

func (f *fakeSaleRepo) CreatePosted(ctx context.Context, sale *entity.Sale, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	f.createCalls++
	if f.duplicateTimes > 0 {
		f.duplicateTimes--
		return nil, domainRepo.ErrDuplicateSaleNumber
	}
	if len(f.insufficient) > 0 {
		return f.insufficient, nil
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	f.created = sale
	f.decrements = decrements
	return nil, nil
}

// Void mirrors the conditional status flip: only a completed sale is voided,
// and a simulated lost race rejects without touching stock.
func (f *fakeSaleRepo) Void(ctx context.Context, sale *entity.Sale) error {
	if f.loseVoidRace || sale.Status == enum.SaleStatusVoided {
		return domainRepo.ErrSaleAlreadyVoided
	}
	f.voidCalls++
	f.voided = sale
	sale.Status = enum.SaleStatusVoided
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return f.GetWithItems(ctx, id)
}

func (f *fakeSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	if f.created != nil && f.created.ID == id {
		return f.created, nil
	}
	return nil, nil
}

func (f *fakeSaleRepo) GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error) {
	if f.created != nil && f.created.SaleNumber == saleNumber {
		return f.created, nil
	}
	return nil, nil
}

func (f *fakeSaleRepo) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService() (*SaleService, *fakeSaleRepo, *fakeProductRepo, *fakeCustomerRepo) {
	water := entity.Product{
		ID: uuid.New(), Code: "P001", Name: "Água 0.5L",
		SalePrice: dec("0.50"), IVARate: dec("0.14"), Stock: 10, Active: true,
	}
	bread := entity.Product{
		ID: uuid.New(), Code: "P002", Name: "Pão",
		SalePrice: dec("0.15"), IVARate: dec("0.00"), Stock: 5, Active: true,
	}
	productRepo := &fakeProductRepo{products: map[string]entity.Product{
		"P001": water,
		"P002": bread,
	}}
	customerRepo := &fakeCustomerRepo{customers: map[uuid.UUID]entity.Customer{}}
	saleRepo := &fakeSaleRepo{}
	return NewSaleService(saleRepo, productRepo, customerRepo), saleRepo, productRepo, customerRepo
}

func cashInput(cashierID uuid.UUID, tendered string, items ...SaleLineInput) *PostSaleInput {
	return &PostSaleInput{
		CashierID:      cashierID,
		Items:          items,
		PaymentMethod:  enum.PaymentCash,
		AmountTendered: dec(tendered),
	}
}

func TestPostSale_Totals(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()
	cashier := uuid.New()

	// Two waters at 0.50 with 14% IVA: subtotal 1.00, tax 0.14, total 1.14.
	sale, err := svc.PostSale(context.Background(), cashInput(cashier, "2.00",
		SaleLineInput{ProductCode: "P001", Quantity: 2}))
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.True(t, sale.Subtotal.Equal(dec("1.00")), "subtotal: %s", sale.Subtotal)
	assert.True(t, sale.TaxAmount.Equal(dec("0.14")), "tax: %s", sale.TaxAmount)
	assert.True(t, sale.Total.Equal(dec("1.14")), "total: %s", sale.Total)
	assert.True(t, sale.ChangeDue.Equal(dec("0.86")), "change: %s", sale.ChangeDue)
	assert.True(t, sale.DiscountAmount.IsZero())
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, cashier, sale.CashierID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Água 0.5L", sale.Items[0].ProductName)
	assert.Equal(t, 2, sale.Items[0].Quantity)
	assert.True(t, sale.Items[0].LineTotal.Equal(dec("1.00")))
	assert.Len(t, saleRepo.decrements, 1)
}

func TestPostSale_TotalsReconcile(t *testing.T) {
	svc, _, _, customerRepo := newTestService()
	customerID := uuid.New()
	customerRepo.customers[customerID] = entity.Customer{
		ID: customerID, Code: "C001", Name: "Maria Silva",
		CardID: "CARD001", DiscountRate: dec("10"), Active: true,
	}

	input := cashInput(uuid.New(), "10.00",
		SaleLineInput{ProductCode: "P001", Quantity: 2},
		SaleLineInput{ProductCode: "P002", Quantity: 3})
	input.CustomerID = &customerID
	input.DiscountApplied = true

	sale, err := svc.PostSale(context.Background(), input)
	require.NoError(t, err)

	expected := sale.Subtotal.Sub(sale.DiscountAmount).Add(sale.TaxAmount).Round(2)
	assert.True(t, sale.Total.Equal(expected),
		"total %s does not reconcile with %s", sale.Total, expected)
}

func TestPostSale_DiscountRequiresFlag(t *testing.T) {
	svc, _, _, customerRepo := newTestService()
	customerID := uuid.New()
	customerRepo.customers[customerID] = entity.Customer{
		ID: customerID, Code: "C001", Name: "Maria Silva",
		CardID: "CARD001", DiscountRate: dec("10"), Active: true,
	}

	// Customer attached but discount not applied: full price.
	input := cashInput(uuid.New(), "2.00", SaleLineInput{ProductCode: "P001", Quantity: 2})
	input.CustomerID = &customerID

	sale, err := svc.PostSale(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, sale.DiscountAmount.IsZero())
	assert.True(t, sale.Total.Equal(dec("1.14")))
}

func TestPostSale_DiscountDoesNotReduceTax(t *testing.T) {
	svc, _, _, customerRepo := newTestService()
	customerID := uuid.New()
	customerRepo.customers[customerID] = entity.Customer{
		ID: customerID, Code: "C001", Name: "Maria Silva",
		CardID: "CARD001", DiscountRate: dec("10"), Active: true,
	}

	input := cashInput(uuid.New(), "2.00", SaleLineInput{ProductCode: "P001", Quantity: 2})
	input.CustomerID = &customerID
	input.DiscountApplied = true

	sale, err := svc.PostSale(context.Background(), input)
	require.NoError(t, err)

	// Discount is 10% of 1.00 = 0.10; tax stays 0.14 over the undiscounted
	// subtotal; total 1.00 - 0.10 + 0.14 = 1.04.
	assert.True(t, sale.DiscountAmount.Equal(dec("0.10")), "discount: %s", sale.DiscountAmount)
	assert.True(t, sale.TaxAmount.Equal(dec("0.14")), "tax: %s", sale.TaxAmount)
	assert.True(t, sale.Total.Equal(dec("1.04")), "total: %s", sale.Total)
}

func TestPostSale_EmptyCart(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()

	_, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "1.00"))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindEmptyCart))
	assert.Equal(t, 0, saleRepo.createCalls)
}

func TestPostSale_NonPositiveQuantity(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "1.00",
		SaleLineInput{ProductCode: "P001", Quantity: 0}))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPostSale_UnknownProduct(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()

	_, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "1.00",
		SaleLineInput{ProductCode: "NOPE", Quantity: 1}))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnknownProduct))
	assert.Equal(t, 0, saleRepo.createCalls)
}

func TestPostSale_InactiveProductIsUnknown(t *testing.T) {
	svc, _, productRepo, _ := newTestService()
	p := productRepo.products["P001"]
	p.Active = false
	productRepo.products["P001"] = p

	_, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "1.00",
		SaleLineInput{ProductCode: "P001", Quantity: 1}))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnknownProduct))
}

func TestPostSale_InsufficientStockPreCheck(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()

	_, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "100.00",
		SaleLineInput{ProductCode: "P001", Quantity: 11}))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
	assert.Contains(t, err.Error(), "P001")
	assert.Equal(t, 0, saleRepo.createCalls, "no transaction should have been opened")
}

func TestPostSale_InsufficientStockAtCommit(t *testing.T) {
	svc, saleRepo, productRepo, _ := newTestService()
	// Pre-check passes but a concurrent sale drained stock inside the
	// transaction window.
	saleRepo.insufficient = []uuid.UUID{productRepo.products["P002"].ID}

	_, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "100.00",
		SaleLineInput{ProductCode: "P001", Quantity: 1},
		SaleLineInput{ProductCode: "P002", Quantity: 2}))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
	assert.Contains(t, err.Error(), "P002")
	assert.NotContains(t, err.Error(), "P001")
}

func TestPostSale_InsufficientCashPayment(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()

	_, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "1.00",
		SaleLineInput{ProductCode: "P001", Quantity: 2}))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientPayment))
	assert.Equal(t, 0, saleRepo.createCalls)
}

func TestPostSale_NonCashIgnoresTendered(t *testing.T) {
	svc, _, _, _ := newTestService()

	input := &PostSaleInput{
		CashierID:      uuid.New(),
		Items:          []SaleLineInput{{ProductCode: "P001", Quantity: 2}},
		PaymentMethod:  enum.PaymentCard,
		AmountTendered: dec("0.00"),
	}
	sale, err := svc.PostSale(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, sale.AmountTendered.Equal(sale.Total))
	assert.True(t, sale.ChangeDue.IsZero())
}

func TestPostSale_MergesDuplicateLines(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()

	sale, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "5.00",
		SaleLineInput{ProductCode: "P001", Quantity: 1},
		SaleLineInput{ProductCode: "P001", Quantity: 2}))
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Quantity)
	assert.Len(t, saleRepo.decrements, 1)
}

func TestPostSale_RetriesOnceOnDuplicateSaleNumber(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()
	saleRepo.duplicateTimes = 1

	sale, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "2.00",
		SaleLineInput{ProductCode: "P001", Quantity: 1}))
	require.NoError(t, err)
	assert.Equal(t, 2, saleRepo.createCalls)
	assert.NotEmpty(t, sale.SaleNumber)
}

func TestPostSale_GivesUpAfterSecondCollision(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()
	saleRepo.duplicateTimes = 2

	_, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "2.00",
		SaleLineInput{ProductCode: "P001", Quantity: 1}))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindSaleNumberConflict))
	assert.Equal(t, 2, saleRepo.createCalls)
}

func TestVoidSale(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()

	sale, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "2.00",
		SaleLineInput{ProductCode: "P001", Quantity: 1}))
	require.NoError(t, err)

	voided, err := svc.VoidSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusVoided, voided.Status)

	// Voiding twice is a conflict.
	_, err = svc.VoidSale(context.Background(), sale.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	require.NotNil(t, saleRepo.voided)
}

func TestVoidSale_ConcurrentVoidIsConflict(t *testing.T) {
	svc, saleRepo, _, _ := newTestService()

	sale, err := svc.PostSale(context.Background(), cashInput(uuid.New(), "2.00",
		SaleLineInput{ProductCode: "P001", Quantity: 1}))
	require.NoError(t, err)

	// Another till voids the sale between this request's status check and
	// its commit; the conditional flip matches no row and the reversal must
	// not run a second time.
	saleRepo.loseVoidRace = true
	_, err = svc.VoidSale(context.Background(), sale.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Equal(t, 0, saleRepo.voidCalls, "stock must not be restored twice")
}

func TestVoidSale_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.VoidSale(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestNewSaleNumberFormat(t *testing.T) {
	n := newSaleNumber()
	assert.Len(t, n, 18)
	assert.Equal(t, "V", n[:1])
}
