package repository

import (
	"context"
	"time"

	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

// completedSales is the WHERE fragment shared by every report: only
// completed (not voided, not soft-deleted) sales count.
const completedSales = "s.status = 0 AND s.deleted_at IS NULL"

func (r *reportRepository) GetSalesSummary(ctx context.Context, start, end *time.Time) (*domainRepo.SalesSummaryResult, error) {
	var result domainRepo.SalesSummaryResult

	query := `
		SELECT
			COUNT(*) as sale_count,
			COALESCE(SUM(s.total), 0) as revenue,
			COALESCE(AVG(s.total), 0) as average_ticket,
			COALESCE(SUM(s.tax_amount), 0) as total_iva,
			COALESCE(SUM(s.discount_amount), 0) as total_discounts
		FROM sales s
		WHERE ` + completedSales

	query, args := appendDateRange(query, nil, start, end)

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *reportRepository) GetTopProducts(ctx context.Context, limit int, start, end *time.Time) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	query := `
		SELECT
			si.product_id,
			si.product_code,
			si.product_name,
			COALESCE(SUM(si.quantity), 0) as quantity_sold,
			COALESCE(SUM(si.line_total), 0) as revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE ` + completedSales

	query, args := appendDateRange(query, nil, start, end)
	query += `
		GROUP BY si.product_id, si.product_code, si.product_name
		ORDER BY quantity_sold DESC
		LIMIT ?`
	args = append(args, limit)

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	return results, err
}

func (r *reportRepository) GetSalesByPeriod(ctx context.Context, period string, days int) ([]domainRepo.PeriodSalesResult, error) {
	var bucket string
	switch period {
	case "week":
		bucket = "IYYY-IW"
	case "month":
		bucket = "YYYY-MM"
	default: // day
		bucket = "YYYY-MM-DD"
	}

	var results []domainRepo.PeriodSalesResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(s.created_at, ?) as period,
			COUNT(*) as sale_count,
			COALESCE(SUM(s.total), 0) as revenue
		FROM sales s
		WHERE `+completedSales+` AND s.created_at >= NOW() - (? * INTERVAL '1 day')
		GROUP BY period
		ORDER BY period ASC
	`, bucket, days).Scan(&results).Error

	return results, err
}

func (r *reportRepository) GetPaymentMethodSummary(ctx context.Context, start, end *time.Time) ([]domainRepo.PaymentMethodResult, error) {
	var results []domainRepo.PaymentMethodResult

	query := `
		SELECT
			s.payment_method,
			COUNT(*) as sale_count,
			COALESCE(SUM(s.total), 0) as revenue
		FROM sales s
		WHERE ` + completedSales

	query, args := appendDateRange(query, nil, start, end)
	query += `
		GROUP BY s.payment_method
		ORDER BY revenue DESC`

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	return results, err
}

// appendDateRange adds optional inclusive date bounds on s.created_at.
func appendDateRange(query string, args []interface{}, start, end *time.Time) (string, []interface{}) {
	if start != nil {
		query += " AND s.created_at >= ?"
		args = append(args, *start)
	}
	if end != nil {
		query += " AND s.created_at < ?"
		args = append(args, end.AddDate(0, 0, 1))
	}
	return query, args
}
