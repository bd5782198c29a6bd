package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds returned to API clients so they can react programmatically
// instead of parsing messages.
const (
	KindEmptyCart           = "EMPTY_CART"
	KindUnknownProduct      = "UNKNOWN_PRODUCT"
	KindInsufficientStock   = "INSUFFICIENT_STOCK"
	KindInsufficientPayment = "INSUFFICIENT_PAYMENT"
	KindSaleNumberConflict  = "SALE_NUMBER_CONFLICT"
	KindStorage             = "STORAGE"
	KindValidation          = "VALIDATION"
	KindNotFound            = "NOT_FOUND"
	KindConflict            = "CONFLICT"
	KindUnauthorized        = "UNAUTHORIZED"
)

// AppError represents an application error with HTTP status code and a
// machine-readable kind.
type AppError struct {
	Code    int          `json:"code"`
	Kind    string       `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid username or password"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: message,
	}
}

// NewEmptyCartError is returned when a sale is posted with no line items.
func NewEmptyCartError() *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindEmptyCart,
		Message: "Cart is empty",
	}
}

// NewUnknownProductError is returned when a cart line references a product
// code that does not resolve to an active product.
func NewUnknownProductError(code string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindUnknownProduct,
		Message: fmt.Sprintf("Unknown or inactive product %q", code),
	}
}

// NewInsufficientStockError names every product whose stock cannot cover the
// requested quantity.
func NewInsufficientStockError(codes []string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInsufficientStock,
		Message: "Insufficient stock for: " + strings.Join(codes, ", "),
	}
}

// NewInsufficientPaymentError is returned for cash sales where the tendered
// amount does not cover the total.
func NewInsufficientPaymentError(total, tendered string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInsufficientPayment,
		Message: fmt.Sprintf("Amount tendered %s is less than total %s", tendered, total),
	}
}

// NewSaleNumberConflictError is returned when sale number generation collided
// twice in a row.
func NewSaleNumberConflictError() *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindSaleNumberConflict,
		Message: "Could not generate a unique sale number",
	}
}

// NewStorageError wraps an infrastructure failure. The transaction either
// fully applied or fully rolled back; callers must not assume success.
func NewStorageError(err error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindStorage,
		Message: "Storage failure: " + err.Error(),
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
