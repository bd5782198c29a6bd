package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request. IVARate is a
// fraction (0.14 for 14%); SalePrice carries at most 2 decimal places.
type CreateProductRequest struct {
	Code       string          `json:"code" binding:"required,min=1,max=100"`
	Name       string          `json:"name" binding:"required,min=2,max=255"`
	SalePrice  decimal.Decimal `json:"sale_price" binding:"required"`
	IVARate    decimal.Decimal `json:"iva_rate"`
	Stock      int             `json:"stock" binding:"min=0"`
	StockAlert int             `json:"stock_alert" binding:"min=0"`
}

// UpdateProductRequest represents a product update request. Code and Stock
// are not editable here; stock changes only through sales, voids and restock.
type UpdateProductRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=2,max=255"`
	SalePrice  *decimal.Decimal `json:"sale_price"`
	IVARate    *decimal.Decimal `json:"iva_rate"`
	StockAlert *int             `json:"stock_alert" binding:"omitempty,min=0"`
}

// RestockRequest represents a stock replenishment request
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ProductFilterRequest represents product listing filters
type ProductFilterRequest struct {
	Search          string `form:"search"`
	LowStock        bool   `form:"low_stock"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}
