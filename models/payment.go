package models

import (
	"strings"
	"time"
)

// Payment is money received against an invoice. Payments are append-only.
type Payment struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	InvoiceID int64     `json:"invoice_id"`
	Amount    Money     `json:"amount"`
	Date      Date      `json:"date"`
	Mode      string    `json:"mode"` // cash, bank_transfer, upi, cheque, card, other
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentInput is used for recording payments.
type PaymentInput struct {
	Amount Money   `json:"amount"`
	Date   Date    `json:"date"`
	Mode   string  `json:"mode"`
	Notes  *string `json:"notes"`
}

func (p *PaymentInput) Validate() string {
	if p.Amount <= 0 {
		return "amount must be positive"
	}
	if p.Date.IsZero() {
		return "date is required"
	}
	p.Mode = strings.TrimSpace(p.Mode)
	switch p.Mode {
	case "", "cash", "bank_transfer", "upi", "cheque", "card", "other":
	default:
		return "mode must be one of: cash, bank_transfer, upi, cheque, card, other"
	}
	if p.Mode == "" {
		p.Mode = "bank_transfer"
	}
	return ""
}
