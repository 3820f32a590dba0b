package models

import (
	"strings"
	"time"
)

// Expense is an outflow recorded against the books. GSTAmount is the input
// tax included in Amount.
type Expense struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Category  string    `json:"category"`
	Vendor    string    `json:"vendor"`
	Amount    Money     `json:"amount"`
	GSTAmount Money     `json:"gst_amount"`
	Date      Date      `json:"date"`
	Notes     *string   `json:"notes"`
	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExpenseInput is used for recording expenses.
type ExpenseInput struct {
	Category  string  `json:"category"`
	Vendor    string  `json:"vendor"`
	Amount    Money   `json:"amount"`
	GSTAmount Money   `json:"gst_amount"`
	Date      Date    `json:"date"`
	Notes     *string `json:"notes"`
}

func (e *ExpenseInput) Validate() string {
	e.Category = strings.TrimSpace(e.Category)
	e.Vendor = strings.TrimSpace(e.Vendor)
	if e.Amount <= 0 {
		return "amount must be positive"
	}
	if e.Amount > MaxDocumentAmount {
		return "amount must not exceed " + MaxDocumentAmount.String()
	}
	if e.GSTAmount < 0 {
		return "gst_amount must be non-negative"
	}
	if e.GSTAmount > e.Amount {
		return "gst_amount must not exceed amount"
	}
	if e.Date.IsZero() {
		return "date is required"
	}
	return ""
}
