package request

// ReportFilterRequest represents the date range filters shared by the
// summary, top products and payment method reports.
type ReportFilterRequest struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD, inclusive
	Limit     int    `form:"limit"`
}

// PeriodReportRequest represents the sales-by-period report parameters
type PeriodReportRequest struct {
	Period string `form:"period"` // day, week, month
	Days   int    `form:"days"`
}
