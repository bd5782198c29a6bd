package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmcosta/vendas-pos-api/internal/application/service"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
)

type stubProductRepo struct {
	products map[string]entity.Product
}

func (s *stubProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (s *stubProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	if p, ok := s.products[code]; ok {
		return &p, nil
	}
	return nil, nil
}
func (s *stubProductRepo) GetActiveByCodes(ctx context.Context, codes []string) ([]entity.Product, error) {
	var out []entity.Product
	for _, c := range codes {
		if p, ok := s.products[c]; ok && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}
func (s *stubProductRepo) Update(ctx context.Context, p *entity.Product) error      { return nil }
func (s *stubProductRepo) Deactivate(ctx context.Context, id uuid.UUID) error       { return nil }
func (s *stubProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) { return nil, nil }
func (s *stubProductRepo) Restock(ctx context.Context, id uuid.UUID, qty int) error { return nil }
func (s *stubProductRepo) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

type stubCustomerRepo struct{}

func (s *stubCustomerRepo) Create(ctx context.Context, c *entity.Customer) error { return nil }
func (s *stubCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return nil, nil
}
func (s *stubCustomerRepo) GetByCard(ctx context.Context, cardID string) (*entity.Customer, error) {
	return nil, nil
}
func (s *stubCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }
func (s *stubCustomerRepo) Deactivate(ctx context.Context, id uuid.UUID) error   { return nil }
func (s *stubCustomerRepo) List(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

type stubSaleRepo struct {
	created *entity.Sale
}

func (s *stubSaleRepo) CreatePosted(ctx context.Context, sale *entity.Sale, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	s.created = sale
	return nil, nil
}
func (s *stubSaleRepo) Void(ctx context.Context, sale *entity.Sale) error { return nil }
func (s *stubSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return s.GetWithItems(ctx, id)
}
func (s *stubSaleRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	if s.created != nil && s.created.ID == id {
		return s.created, nil
	}
	return nil, nil
}
func (s *stubSaleRepo) GetBySaleNumber(ctx context.Context, saleNumber string) (*entity.Sale, error) {
	return nil, nil
}
func (s *stubSaleRepo) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func newSaleTestRouter(t *testing.T, cashierID uuid.UUID) (*gin.Engine, *stubSaleRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	price, _ := decimal.NewFromString("0.50")
	rate, _ := decimal.NewFromString("0.14")
	productRepo := &stubProductRepo{products: map[string]entity.Product{
		"P001": {ID: uuid.New(), Code: "P001", Name: "Água 0.5L", SalePrice: price, IVARate: rate, Stock: 10, Active: true},
	}}
	saleRepo := &stubSaleRepo{}
	svc := service.NewSaleService(saleRepo, productRepo, &stubCustomerRepo{})
	h := NewSaleHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("cashier_id", cashierID)
		c.Next()
	})
	router.POST("/sales", h.Create)
	router.GET("/sales", h.List)
	router.GET("/sales/:id", h.Get)
	return router, saleRepo
}

func TestSaleHandler_Create(t *testing.T) {
	router, saleRepo := newSaleTestRouter(t, uuid.New())

	body, _ := json.Marshal(gin.H{
		"items":           []gin.H{{"product_code": "P001", "quantity": 2}},
		"payment_method":  "Cash",
		"amount_tendered": "2.00",
	})
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, saleRepo.created)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			SaleNumber string          `json:"sale_number"`
			Total      decimal.Decimal `json:"total"`
			ChangeDue  decimal.Decimal `json:"change_due"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.SaleNumber)
	assert.Equal(t, "1.14", resp.Data.Total.StringFixed(2))
	assert.Equal(t, "0.86", resp.Data.ChangeDue.StringFixed(2))
}

func TestSaleHandler_CreateEmptyCart(t *testing.T) {
	router, _ := newSaleTestRouter(t, uuid.New())

	body, _ := json.Marshal(gin.H{
		"items":          []gin.H{},
		"payment_method": "Cash",
	})
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Success bool   `json:"success"`
		Kind    string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "EMPTY_CART", resp.Kind)
}

func TestSaleHandler_CreateInsufficientStock(t *testing.T) {
	router, _ := newSaleTestRouter(t, uuid.New())

	body, _ := json.Marshal(gin.H{
		"items":           []gin.H{{"product_code": "P001", "quantity": 99}},
		"payment_method":  "Cash",
		"amount_tendered": "100.00",
	})
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Kind)
	assert.Contains(t, resp.Message, "P001")
}

func TestSaleHandler_CreateInvalidPaymentMethod(t *testing.T) {
	router, _ := newSaleTestRouter(t, uuid.New())

	body, _ := json.Marshal(gin.H{
		"items":          []gin.H{{"product_code": "P001", "quantity": 1}},
		"payment_method": "Crypto",
	})
	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_ListRejectsMalformedFilters(t *testing.T) {
	router, _ := newSaleTestRouter(t, uuid.New())

	// Every unparseable filter is a 400, never silently dropped.
	for _, query := range []string{
		"customer_id=not-a-uuid",
		"cashier_id=not-a-uuid",
		"payment_method=Crypto",
	} {
		req := httptest.NewRequest(http.MethodGet, "/sales?"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestSaleHandler_ListAcceptsValidFilters(t *testing.T) {
	router, _ := newSaleTestRouter(t, uuid.New())

	req := httptest.NewRequest(http.MethodGet,
		"/sales?customer_id="+uuid.New().String()+"&payment_method=Cash", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestSaleHandler_GetNotFound(t *testing.T) {
	router, _ := newSaleTestRouter(t, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/sales/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
