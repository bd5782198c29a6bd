package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tmcosta/vendas-pos-api/internal/application/service"
	"github.com/tmcosta/vendas-pos-api/internal/presentation/http/dto/request"
	"github.com/tmcosta/vendas-pos-api/internal/presentation/http/dto/response"
)

// ReportHandler handles sales report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary handles the sales summary report
func (h *ReportHandler) Summary(c *gin.Context) {
	var filter request.ReportFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	start, err := parseDate(filter.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := parseDate(filter.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	summary, err := h.reportService.GetSalesSummary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved successfully", summary)
}

// TopProducts handles the top products report
func (h *ReportHandler) TopProducts(c *gin.Context) {
	var filter request.ReportFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	start, err := parseDate(filter.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := parseDate(filter.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	products, err := h.reportService.GetTopProducts(c.Request.Context(), filter.Limit, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved successfully", products)
}

// ByPeriod handles the sales-by-period report
func (h *ReportHandler) ByPeriod(c *gin.Context) {
	var filter request.PeriodReportRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if filter.Period == "" {
		filter.Period = "day"
	}

	results, err := h.reportService.GetSalesByPeriod(c.Request.Context(), filter.Period, filter.Days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales by period retrieved successfully", results)
}

// PaymentMethods handles the payment method breakdown report
func (h *ReportHandler) PaymentMethods(c *gin.Context) {
	var filter request.ReportFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	start, err := parseDate(filter.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := parseDate(filter.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	summary, err := h.reportService.GetPaymentMethodSummary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method summary retrieved successfully", summary)
}
