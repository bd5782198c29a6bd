package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmcosta/vendas-pos-api/internal/domain/enum"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"github.com/tmcosta/vendas-pos-api/pkg/apperror"
)

type fakeReportRepo struct {
	summary *domainRepo.SalesSummaryResult
	payment []domainRepo.PaymentMethodResult
	period  []domainRepo.PeriodSalesResult
}

func (f *fakeReportRepo) GetSalesSummary(ctx context.Context, start, end *time.Time) (*domainRepo.SalesSummaryResult, error) {
	return f.summary, nil
}

func (f *fakeReportRepo) GetTopProducts(ctx context.Context, limit int, start, end *time.Time) ([]domainRepo.TopProductResult, error) {
	return nil, nil
}

func (f *fakeReportRepo) GetSalesByPeriod(ctx context.Context, period string, days int) ([]domainRepo.PeriodSalesResult, error) {
	return f.period, nil
}

func (f *fakeReportRepo) GetPaymentMethodSummary(ctx context.Context, start, end *time.Time) ([]domainRepo.PaymentMethodResult, error) {
	return f.payment, nil
}

func TestGetSalesSummaryKeepsDecimalAmounts(t *testing.T) {
	repo := &fakeReportRepo{summary: &domainRepo.SalesSummaryResult{
		SaleCount:      3,
		Revenue:        dec("31.41"),
		AverageTicket:  dec("10.47"),
		TotalIVA:       dec("3.85"),
		TotalDiscounts: dec("1.10"),
	}}
	svc := NewReportService(repo)

	summary, err := svc.GetSalesSummary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, summary.Revenue.Equal(dec("31.41")))
	assert.True(t, summary.AverageTicket.Equal(dec("10.47")))
	assert.True(t, summary.TotalIVA.Equal(dec("3.85")))
	assert.True(t, summary.TotalDiscounts.Equal(dec("1.10")))
}

func TestGetPaymentMethodSummaryResolvesNames(t *testing.T) {
	repo := &fakeReportRepo{payment: []domainRepo.PaymentMethodResult{
		{PaymentMethod: int(enum.PaymentCash), SaleCount: 2, Revenue: dec("10.50")},
		{PaymentMethod: int(enum.PaymentCard), SaleCount: 1, Revenue: dec("4.99")},
	}}
	svc := NewReportService(repo)

	rows, err := svc.GetPaymentMethodSummary(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cash", rows[0].PaymentMethod)
	assert.True(t, rows[0].Revenue.Equal(dec("10.50")))
	assert.Equal(t, "Card", rows[1].PaymentMethod)
	assert.True(t, rows[1].Revenue.Equal(dec("4.99")))
}

func TestGetSalesByPeriodRejectsUnknownPeriod(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{})

	_, err := svc.GetSalesByPeriod(context.Background(), "fortnight", 30)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
