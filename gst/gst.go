// Package gst splits taxable value into CGST, SGST and IGST.
//
// Rounding happens per line, half-up to the paisa, and totals are sums of the
// rounded line components. Tax is never recomputed from an aggregate
// subtotal, so "sum of tax" may differ from "tax on sum" by up to one paisa
// per line; that drift is what the statutory line-level rounding requires.
package gst

import (
	"strings"

	"github.com/satheeshds/gstbill/models"
	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Line is a priced line to be taxed.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice models.Money
	TaxRate   decimal.Decimal // percent
}

// TaxableLine is a line whose taxable value is already known, as on a
// credit note reversal.
type TaxableLine struct {
	Taxable models.Money
	TaxRate decimal.Decimal
}

// LineResult is the tax breakdown of one line.
type LineResult struct {
	Taxable models.Money `json:"taxable"`
	CGST    models.Money `json:"cgst"`
	SGST    models.Money `json:"sgst"`
	IGST    models.Money `json:"igst"`
	Total   models.Money `json:"total"`
}

// Tax returns the tax on the line.
func (r LineResult) Tax() models.Money {
	return r.CGST + r.SGST + r.IGST
}

// Totals is the breakdown of a whole document.
type Totals struct {
	InterState bool         `json:"inter_state"`
	Lines      []LineResult `json:"lines"`
	Subtotal   models.Money `json:"subtotal"`
	CGST       models.Money `json:"cgst"`
	SGST       models.Money `json:"sgst"`
	IGST       models.Money `json:"igst"`
	TaxTotal   models.Money `json:"tax_total"`
	GrandTotal models.Money `json:"grand_total"`
}

// IsInterState reports whether a supply between the two jurisdictions is
// inter-state. Equality of the codes is the only test.
func IsInterState(issuerState, counterpartyState string) bool {
	return strings.TrimSpace(issuerState) != strings.TrimSpace(counterpartyState)
}

// ComputeInvoiceTotals taxes each line and sums the results.
func ComputeInvoiceTotals(lines []Line, issuerState, counterpartyState string) Totals {
	taxable := make([]TaxableLine, len(lines))
	for n, l := range lines {
		taxable[n] = TaxableLine{Taxable: Round(l.Quantity.Mul(l.UnitPrice.Rupees())), TaxRate: l.TaxRate}
	}
	return ComputeTaxableTotals(taxable, issuerState, counterpartyState)
}

// ComputeTaxableTotals is ComputeInvoiceTotals for lines that carry their
// taxable value directly.
func ComputeTaxableTotals(lines []TaxableLine, issuerState, counterpartyState string) Totals {
	t := Totals{
		InterState: IsInterState(issuerState, counterpartyState),
		Lines:      make([]LineResult, 0, len(lines)),
	}
	for _, l := range lines {
		r := SplitTax(l.Taxable, l.TaxRate, t.InterState)
		t.Lines = append(t.Lines, r)
		t.Subtotal += r.Taxable
		t.CGST += r.CGST
		t.SGST += r.SGST
		t.IGST += r.IGST
	}
	t.TaxTotal = t.CGST + t.SGST + t.IGST
	t.GrandTotal = t.Subtotal + t.TaxTotal
	return t
}

// SplitTax computes the tax on one taxable amount at rate percent. An
// inter-state supply carries the full rate as IGST; otherwise half the rate
// goes to each of CGST and SGST, each rounded on its own.
func SplitTax(taxable models.Money, rate decimal.Decimal, interState bool) LineResult {
	r := LineResult{Taxable: taxable}
	base := taxable.Rupees()
	if interState {
		r.IGST = Round(base.Mul(rate).Div(hundred))
	} else {
		half := Round(base.Mul(rate.Div(two)).Div(hundred))
		r.CGST, r.SGST = half, half
	}
	r.Total = r.Taxable + r.CGST + r.SGST + r.IGST
	return r
}

// Round rounds a rupee value half-up to the nearest paisa. Lines validated
// against models.MaxDocumentAmount always fit in Money.
func Round(rupees decimal.Decimal) models.Money {
	return models.Money(rupees.Mul(hundred).Round(0).IntPart())
}
