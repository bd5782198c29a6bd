package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummaryResult aggregates completed sales over a date range. Amounts
// stay decimal end to end, matching the columns they sum.
type SalesSummaryResult struct {
	SaleCount      int64           `json:"sale_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	TotalIVA       decimal.Decimal `json:"total_iva"`
	TotalDiscounts decimal.Decimal `json:"total_discounts"`
}

// TopProductResult is one row of the top products report.
type TopProductResult struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// PeriodSalesResult is one bucket of the sales-by-period report.
type PeriodSalesResult struct {
	Period    string          `json:"period"`
	SaleCount int64           `json:"sale_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// PaymentMethodResult is one row of the payment method breakdown.
type PaymentMethodResult struct {
	PaymentMethod int             `json:"payment_method"`
	SaleCount     int64           `json:"sale_count"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// ReportRepository runs read-only aggregate queries over completed sales.
// Voided sales are excluded everywhere.
type ReportRepository interface {
	GetSalesSummary(ctx context.Context, start, end *time.Time) (*SalesSummaryResult, error)
	GetTopProducts(ctx context.Context, limit int, start, end *time.Time) ([]TopProductResult, error)
	GetSalesByPeriod(ctx context.Context, period string, days int) ([]PeriodSalesResult, error)
	GetPaymentMethodSummary(ctx context.Context, start, end *time.Time) ([]PaymentMethodResult, error)
}
