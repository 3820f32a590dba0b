package billing

import (
	"context"

	"github.com/satheeshds/gstbill/gst"
	"github.com/satheeshds/gstbill/models"
)

// IssueCreditNote reverses part of an invoice. The tax treatment follows the
// invoice's own snapshots, never the live company or party records, so the
// reversal matches the original supply even after either has moved state.
//
// The invoice's status is not checked: notes may be issued against draft,
// finalized or cancelled invoices alike.
func (s *Service) IssueCreditNote(ctx context.Context, companyID, invoiceID int64, input models.CreditNoteInput) (models.CreditNote, error) {
	const op = "IssueCreditNote"
	if msg := input.Validate(); msg != "" {
		return models.CreditNote{}, validationError(op, msg)
	}
	inv, err := s.loadInvoice(ctx, op, companyID, invoiceID)
	if err != nil {
		return models.CreditNote{}, err
	}
	if inv.Status != models.StatusFinalized {
		s.log.Warn("credit note issued against non-finalized invoice",
			"company_id", companyID, "invoice_id", inv.ID, "status", inv.Status)
	}

	lines := make([]gst.TaxableLine, len(input.Items))
	for n, it := range input.Items {
		lines[n] = gst.TaxableLine{Taxable: it.Taxable, TaxRate: it.TaxRate}
	}
	totals := gst.ComputeTaxableTotals(lines, inv.CompanySnapshot.StateCode, inv.CustomerSnapshot.StateCode)

	cn := models.CreditNote{
		CompanyID:        inv.CompanyID,
		InvoiceID:        inv.ID,
		Date:             input.Date,
		Reason:           input.Reason,
		CompanySnapshot:  inv.CompanySnapshot,
		CustomerSnapshot: inv.CustomerSnapshot,
		Subtotal:         totals.Subtotal,
		TaxTotal:         totals.TaxTotal,
		GrandTotal:       totals.GrandTotal,
	}
	for n, it := range input.Items {
		r := totals.Lines[n]
		cn.Items = append(cn.Items, models.CreditNoteItem{
			Position:    n + 1,
			Description: it.Description,
			SACCode:     it.SACCode,
			TaxRate:     it.TaxRate,
			Taxable:     r.Taxable,
			CGST:        r.CGST,
			SGST:        r.SGST,
			IGST:        r.IGST,
			Total:       r.Total,
		})
	}

	err = s.store.InTx(ctx, func(tx Tx) error {
		seq, err := tx.NextSequence(ctx, companyID, SeriesCreditNote)
		if err != nil {
			return err
		}
		cn.Number = FormatNumber(SeriesCreditNote, seq)
		return tx.InsertCreditNote(ctx, &cn)
	})
	if err != nil {
		return models.CreditNote{}, persistenceError(op, err)
	}

	s.log.Info("credit note issued", "company_id", companyID, "invoice_id", inv.ID, "credit_note_id", cn.ID,
		"number", cn.Number, "grand_total", cn.GrandTotal.String())
	return cn, nil
}

// GetCreditNote returns a credit note of the caller's company.
func (s *Service) GetCreditNote(ctx context.Context, companyID, id int64) (models.CreditNote, error) {
	const op = "GetCreditNote"
	cn, err := s.store.GetCreditNote(ctx, id)
	if err != nil {
		return models.CreditNote{}, lookupError(op, "credit note", err)
	}
	if err := authorize(op, companyID, cn.CompanyID); err != nil {
		return models.CreditNote{}, err
	}
	return cn, nil
}

// ListCreditNotes returns the credit notes matching f, oldest first.
func (s *Service) ListCreditNotes(ctx context.Context, f CreditNoteFilter) ([]models.CreditNote, error) {
	const op = "ListCreditNotes"
	if f.InvoiceID != 0 {
		if _, err := s.loadInvoice(ctx, op, f.CompanyID, f.InvoiceID); err != nil {
			return nil, err
		}
	}
	notes, err := s.store.ListCreditNotes(ctx, f)
	if err != nil {
		return nil, persistenceError(op, err)
	}
	return notes, nil
}
