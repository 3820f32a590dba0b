package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreditNote reverses part or all of an invoice's taxable value and tax.
// It is created once and has no lifecycle of its own.
type CreditNote struct {
	ID               int64            `json:"id"`
	CompanyID        int64            `json:"company_id"`
	InvoiceID        int64            `json:"invoice_id"`
	Number           string           `json:"credit_note_number"`
	Date             Date             `json:"date"`
	Reason           string           `json:"reason"`
	CompanySnapshot  Snapshot         `json:"company_snapshot"`
	CustomerSnapshot Snapshot         `json:"customer_snapshot"`
	Items            []CreditNoteItem `json:"items"`
	Subtotal         Money            `json:"subtotal"`
	TaxTotal         Money            `json:"tax_total"`
	GrandTotal       Money            `json:"grand_total"`
	CreatedAt        time.Time        `json:"created_at"`
}

// CreditNoteItem is one reversal line. The taxable amount is given directly
// rather than derived from the original invoice lines.
type CreditNoteItem struct {
	ID           int64           `json:"id"`
	CreditNoteID int64           `json:"credit_note_id"`
	Position     int             `json:"position"`
	Description  string          `json:"description"`
	SACCode      string          `json:"sac_code"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Taxable      Money           `json:"taxable"`
	CGST         Money           `json:"cgst"`
	SGST         Money           `json:"sgst"`
	IGST         Money           `json:"igst"`
	Total        Money           `json:"total"`
}

// CreditNoteInput is used for issuing a credit note against an invoice.
type CreditNoteInput struct {
	Date   Date                `json:"date"`
	Reason string              `json:"reason"`
	Items  []ReversalItemInput `json:"items"`
}

// ReversalItemInput is one line of a CreditNoteInput.
type ReversalItemInput struct {
	Description string          `json:"description"`
	SACCode     string          `json:"sac_code"`
	Taxable     Money           `json:"taxable"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

func (c *CreditNoteInput) Validate() string {
	c.Reason = strings.TrimSpace(c.Reason)
	if c.Reason == "" {
		return "reason is required"
	}
	if c.Date.IsZero() {
		return "date is required"
	}
	if len(c.Items) == 0 {
		return "at least one reversal item is required"
	}
	var total Money
	for n, it := range c.Items {
		if it.Taxable <= 0 {
			return fmt.Sprintf("item %d: taxable must be positive", n+1)
		}
		if it.Taxable > MaxDocumentAmount-total {
			return "credit note value must not exceed " + MaxDocumentAmount.String()
		}
		total += it.Taxable
		if !ValidTaxRate(it.TaxRate) {
			return fmt.Sprintf("item %d: tax_rate must be one of: 0, 5, 12, 18, 28", n+1)
		}
	}
	return ""
}
