package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable catalog item. Code is the immutable business
// key the POS uses to add a product to a cart. Stock is mutated only by sale
// posting, voiding, and explicit restock.
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Code       string          `gorm:"size:100;unique;not null" json:"code"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	SalePrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sale_price"`
	IVARate    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0.14" json:"iva_rate"`
	Stock      int             `gorm:"not null;default:0" json:"stock"`
	StockAlert int             `gorm:"not null;default:0" json:"stock_alert"`
	Active     bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
