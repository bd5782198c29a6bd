package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a receipt.
// It comes from the injected company configuration, never from a settings
// table read inside business logic.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	NIF       string `json:"nif,omitempty"`
}

// ReceiptItem is a single printed line. IVARate drives the per-line tax
// badge (ISENTO at 0%, otherwise "IVA n%").
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	IVARate   decimal.Decimal `json:"iva_rate"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Receipt is a value object assembled from a posted sale at print time.
// Every amount is carried over from the sale exactly as the posting engine
// computed it; the formatter never recomputes.
type Receipt struct {
	Header         ReceiptHeader   `json:"header"`
	SaleNumber     string          `json:"sale_number"`
	Date           string          `json:"date"`
	Cashier        string          `json:"cashier,omitempty"`
	Customer       string          `json:"customer,omitempty"`
	PaymentMethod  string          `json:"payment_method"`
	Items          []ReceiptItem   `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	AmountTendered decimal.Decimal `json:"amount_tendered"`
	ChangeDue      decimal.Decimal `json:"change_due"`
	Currency       string          `json:"currency"`
}
