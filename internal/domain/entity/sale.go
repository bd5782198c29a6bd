package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tmcosta/vendas-pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale is an immutable record of a posted cart. Totals always reconcile:
// Total == round(Subtotal - DiscountAmount + TaxAmount, 2). For cash sales
// ChangeDue == AmountTendered - Total; for other methods AmountTendered
// equals Total and ChangeDue is zero.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SaleNumber     string             `gorm:"size:100;unique;not null" json:"sale_number"`
	CustomerID     *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CashierID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	Status         enum.SaleStatus    `gorm:"not null;default:0" json:"status"`
	Subtotal       decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	Total          decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod  enum.PaymentMethod `gorm:"not null" json:"payment_method"`
	AmountTendered decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"amount_tendered"`
	ChangeDue      decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0" json:"change_due"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Cashier  User       `gorm:"foreignKey:CashierID" json:"-"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is an immutable line of a posted sale. ProductCode, ProductName,
// UnitPrice and IVARate are snapshots taken at posting time so that later
// catalog edits never change historical sales.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductCode string          `gorm:"size:100;not null" json:"product_code"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	IVARate     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"iva_rate"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
