package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tmcosta/vendas-pos-api/internal/domain/enum"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"github.com/tmcosta/vendas-pos-api/pkg/apperror"
)

// ReportService runs read-only aggregates over completed sales
type ReportService struct {
	reportRepo domainRepo.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo domainRepo.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// PaymentMethodSummary is a PaymentMethodResult with the method name resolved
type PaymentMethodSummary struct {
	PaymentMethod string          `json:"payment_method"`
	SaleCount     int64           `json:"sale_count"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// GetSalesSummary aggregates completed sales over an optional date range
func (s *ReportService) GetSalesSummary(ctx context.Context, start, end *time.Time) (*domainRepo.SalesSummaryResult, error) {
	summary, err := s.reportRepo.GetSalesSummary(ctx, start, end)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return summary, nil
}

// GetTopProducts returns the best selling products by quantity
func (s *ReportService) GetTopProducts(ctx context.Context, limit int, start, end *time.Time) ([]domainRepo.TopProductResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	products, err := s.reportRepo.GetTopProducts(ctx, limit, start, end)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return products, nil
}

// GetSalesByPeriod buckets completed sales by day, week or month over the
// last N days.
func (s *ReportService) GetSalesByPeriod(ctx context.Context, period string, days int) ([]domainRepo.PeriodSalesResult, error) {
	switch period {
	case "day", "week", "month":
	default:
		return nil, apperror.NewBadRequestError("Period must be day, week or month")
	}
	if days <= 0 || days > 366 {
		days = 30
	}
	results, err := s.reportRepo.GetSalesByPeriod(ctx, period, days)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return results, nil
}

// GetPaymentMethodSummary breaks completed sales down by payment method
func (s *ReportService) GetPaymentMethodSummary(ctx context.Context, start, end *time.Time) ([]PaymentMethodSummary, error) {
	rows, err := s.reportRepo.GetPaymentMethodSummary(ctx, start, end)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	out := make([]PaymentMethodSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, PaymentMethodSummary{
			PaymentMethod: enum.PaymentMethod(r.PaymentMethod).String(),
			SaleCount:     r.SaleCount,
			Revenue:       r.Revenue,
		})
	}
	return out, nil
}
