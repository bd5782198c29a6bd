package request

import "github.com/shopspring/decimal"

// CreateCustomerRequest represents a customer registration request.
// DiscountRate is a percent (10 means 10%), capped at 50.
type CreateCustomerRequest struct {
	Code         string          `json:"code" binding:"required,min=1,max=100"`
	Name         string          `json:"name" binding:"required,min=2,max=255"`
	NIF          *string         `json:"nif" binding:"omitempty,max=50"`
	Phone        *string         `json:"phone" binding:"omitempty,max=50"`
	Email        *string         `json:"email" binding:"omitempty,email"`
	Address      *string         `json:"address"`
	CardID       string          `json:"card_id" binding:"required,min=1,max=100"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=2,max=255"`
	NIF          *string          `json:"nif" binding:"omitempty,max=50"`
	Phone        *string          `json:"phone" binding:"omitempty,max=50"`
	Email        *string          `json:"email" binding:"omitempty,email"`
	Address      *string          `json:"address"`
	DiscountRate *decimal.Decimal `json:"discount_rate"`
}

// CustomerFilterRequest represents customer listing filters
type CustomerFilterRequest struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}
