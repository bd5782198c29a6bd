package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a registered customer with a loyalty card.
// DiscountRate is a percent (10 means 10%, capped at 50). LifetimeTotal and
// LastPurchaseAt are the ledger side: they are written only inside the sale
// posting transaction, never by reports or admin edits.
type Customer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Code          string          `gorm:"size:100;unique;not null" json:"code"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	NIF           *string         `gorm:"size:50" json:"nif,omitempty"`
	Phone         *string         `gorm:"size:50" json:"phone,omitempty"`
	Email         *string         `gorm:"size:255" json:"email,omitempty"`
	Address       *string         `gorm:"type:text" json:"address,omitempty"`
	CardID        string          `gorm:"size:100;unique;not null" json:"card_id"`
	DiscountRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_rate"`
	LifetimeTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"lifetime_total"`
	LastPurchase  *time.Time      `gorm:"column:last_purchase_at" json:"last_purchase_at,omitempty"`
	Active        bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
