package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusFinalized InvoiceStatus = "finalized"
	StatusCancelled InvoiceStatus = "cancelled"
)

// CanTransition reports whether the lifecycle permits moving from s to next.
// Cancelled is terminal.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusFinalized || next == StatusCancelled
	case StatusFinalized:
		return next == StatusCancelled
	}
	return false
}

func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusFinalized, StatusCancelled:
		return true
	}
	return false
}

// Invoice represents a tax invoice issued to a customer.
type Invoice struct {
	ID               int64         `json:"id"`
	CompanyID        int64         `json:"company_id"`
	CustomerID       int64         `json:"customer_id"`
	Number           string        `json:"invoice_number"`
	InvoiceDate      Date          `json:"invoice_date"`
	DueDate          Date          `json:"due_date"`
	CompanySnapshot  Snapshot      `json:"company_snapshot"`
	CustomerSnapshot Snapshot      `json:"customer_snapshot"`
	Items            []LineItem    `json:"items"`
	Status           InvoiceStatus `json:"status"`
	Subtotal         Money         `json:"subtotal"`
	TaxTotal         Money         `json:"tax_total"`
	GrandTotal       Money         `json:"grand_total"`
	CancelReason     *string       `json:"cancel_reason,omitempty"`
	Notes            *string       `json:"notes"`
	IsDeleted        bool          `json:"-"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// IsInterState reports whether the supply crosses state lines, judged only
// from the snapshots taken when the invoice was created.
func (i *Invoice) IsInterState() bool {
	return strings.TrimSpace(i.CompanySnapshot.StateCode) != strings.TrimSpace(i.CustomerSnapshot.StateCode)
}

// LineItem is one priced line of an invoice. Amounts other than UnitPrice
// are derived by the tax engine.
type LineItem struct {
	ID          int64           `json:"id"`
	InvoiceID   int64           `json:"invoice_id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	SACCode     string          `json:"sac_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   Money           `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Taxable     Money           `json:"taxable"`
	CGST        Money           `json:"cgst"`
	SGST        Money           `json:"sgst"`
	IGST        Money           `json:"igst"`
	Total       Money           `json:"total"`
}

// AllowedTaxRates are the GST slabs, in percent.
var AllowedTaxRates = []int64{0, 5, 12, 18, 28}

// ValidTaxRate reports whether rate is one of the GST slabs.
func ValidTaxRate(rate decimal.Decimal) bool {
	for _, r := range AllowedTaxRates {
		if rate.Equal(decimal.NewFromInt(r)) {
			return true
		}
	}
	return false
}

// InvoiceInput is used for creating invoices.
type InvoiceInput struct {
	CustomerID  int64           `json:"customer_id"`
	InvoiceDate Date            `json:"invoice_date"`
	DueDate     Date            `json:"due_date"`
	Notes       *string         `json:"notes"`
	Items       []LineItemInput `json:"items"`
}

// LineItemInput is one line of an InvoiceInput.
type LineItemInput struct {
	Description string          `json:"description"`
	SACCode     string          `json:"sac_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   Money           `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// Validate checks the input and fills defaults. An empty result means valid.
func (i *InvoiceInput) Validate() string {
	if i.CustomerID <= 0 {
		return "customer_id is required"
	}
	if i.InvoiceDate.IsZero() {
		return "invoice_date is required"
	}
	if i.DueDate.IsZero() {
		i.DueDate = i.InvoiceDate
	}
	if i.DueDate.Before(i.InvoiceDate.Time) {
		return "due_date must not be before invoice_date"
	}
	if len(i.Items) == 0 {
		return "at least one line item is required"
	}
	total := decimal.Zero
	for n := range i.Items {
		if msg := i.Items[n].Validate(); msg != "" {
			return fmt.Sprintf("item %d: %s", n+1, msg)
		}
		total = total.Add(i.Items[n].Value())
	}
	if total.GreaterThan(MaxDocumentAmount.Rupees()) {
		return "invoice value must not exceed " + MaxDocumentAmount.String()
	}
	return ""
}

func (l *LineItemInput) Validate() string {
	l.Description = strings.TrimSpace(l.Description)
	if l.Description == "" {
		return "description is required"
	}
	if !l.Quantity.IsPositive() {
		return "quantity must be positive"
	}
	if !l.Quantity.Equal(l.Quantity.Truncate(QuantityPlaces)) {
		return "quantity must have at most 4 decimal places"
	}
	if l.Quantity.GreaterThanOrEqual(maxQuantity) {
		return "quantity must be less than " + maxQuantity.String()
	}
	if l.UnitPrice < 0 {
		return "unit_price must be non-negative"
	}
	if l.Value().GreaterThan(MaxDocumentAmount.Rupees()) {
		return "line value must not exceed " + MaxDocumentAmount.String()
	}
	if !ValidTaxRate(l.TaxRate) {
		return "tax_rate must be one of: 0, 5, 12, 18, 28"
	}
	return ""
}

// Value returns quantity × unit price in rupees, before rounding.
func (l *LineItemInput) Value() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice.Rupees())
}

// QuantityPlaces is the number of decimal places a quantity may carry, as
// stored in NUMERIC(18, 4).
const QuantityPlaces = 4

var maxQuantity = decimal.New(1, 14)

// CancelInput carries the reason for cancelling an invoice.
type CancelInput struct {
	Reason string `json:"reason"`
}

// MinCancelReason is the shortest accepted cancellation reason, in characters.
const MinCancelReason = 5

func (c *CancelInput) Validate() string {
	c.Reason = strings.TrimSpace(c.Reason)
	if len([]rune(c.Reason)) < MinCancelReason {
		return "Reason is required (min 5 chars)"
	}
	return ""
}
