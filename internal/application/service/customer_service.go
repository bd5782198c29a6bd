package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tmcosta/vendas-pos-api/internal/domain/entity"
	domainRepo "github.com/tmcosta/vendas-pos-api/internal/domain/repository"
	"github.com/tmcosta/vendas-pos-api/pkg/apperror"
)

// maxDiscountRate caps the per-customer discount percentage.
var maxDiscountRate = decimal.NewFromInt(50)

// CustomerService handles customer management. The ledger fields
// (LifetimeTotal, LastPurchase) are never writable through this service.
type CustomerService struct {
	customerRepo domainRepo.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo domainRepo.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput holds the fields for a new customer
type CreateCustomerInput struct {
	Code         string
	Name         string
	NIF          *string
	Phone        *string
	Email        *string
	Address      *string
	CardID       string
	DiscountRate decimal.Decimal
}

// UpdateCustomerInput holds the editable customer fields. Nil pointers leave
// the current value untouched.
type UpdateCustomerInput struct {
	Name         *string
	NIF          *string
	Phone        *string
	Email        *string
	Address      *string
	DiscountRate *decimal.Decimal
}

// CreateCustomer registers a customer with a loyalty card
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.DiscountRate.IsNegative() || input.DiscountRate.GreaterThan(maxDiscountRate) {
		return nil, apperror.NewBadRequestError("Discount rate must be between 0 and 50 percent")
	}

	existing, err := s.customerRepo.GetByCard(ctx, input.CardID)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Card ID already registered")
	}

	customer := &entity.Customer{
		Code:          input.Code,
		Name:          input.Name,
		NIF:           input.NIF,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		CardID:        input.CardID,
		DiscountRate:  input.DiscountRate,
		LifetimeTotal: decimal.Zero,
		Active:        true,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return customer, nil
}

// GetCustomer returns a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerByCard looks a customer up by loyalty card, the way the POS
// identifies customers at the till.
func (s *CustomerService) GetCustomerByCard(ctx context.Context, cardID string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByCard(ctx, cardID)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if customer == nil || !customer.Active {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomer applies partial edits to a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.NIF != nil {
		customer.NIF = input.NIF
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.DiscountRate != nil {
		if input.DiscountRate.IsNegative() || input.DiscountRate.GreaterThan(maxDiscountRate) {
			return nil, apperror.NewBadRequestError("Discount rate must be between 0 and 50 percent")
		}
		customer.DiscountRate = *input.DiscountRate
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return customer, nil
}

// DeactivateCustomer soft-removes a customer. Past sales keep the reference.
func (s *CustomerService) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError(err)
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	if err := s.customerRepo.Deactivate(ctx, id); err != nil {
		return apperror.NewStorageError(err)
	}
	return nil
}

// ListCustomers returns customers matching the filters with a total count
func (s *CustomerService) ListCustomers(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	customers, total, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.NewStorageError(err)
	}
	return customers, total, nil
}
