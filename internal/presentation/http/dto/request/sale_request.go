package request

import "github.com/shopspring/decimal"

// SaleLineRequest is one cart line of a sale posting request
type SaleLineRequest struct {
	ProductCode string `json:"product_code" binding:"required,max=100"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest represents a sale posting request. The cashier comes
// from the access token, not the body. AmountTendered is only meaningful
// for Cash payments.
type CreateSaleRequest struct {
	CustomerID      *string           `json:"customer_id" binding:"omitempty,uuid"`
	Items           []SaleLineRequest `json:"items" binding:"dive"`
	DiscountApplied bool              `json:"discount_applied"`
	PaymentMethod   string            `json:"payment_method" binding:"required,oneof=Cash Card Transfer"`
	AmountTendered  decimal.Decimal   `json:"amount_tendered"`
}

// SaleFilterRequest represents sale listing filters
type SaleFilterRequest struct {
	CustomerID    string `form:"customer_id"`
	CashierID     string `form:"cashier_id"`
	PaymentMethod string `form:"payment_method"`
	StartDate     string `form:"start_date"` // YYYY-MM-DD
	EndDate       string `form:"end_date"`   // YYYY-MM-DD, inclusive
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
