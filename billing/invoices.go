package billing

import (
	"context"
	"fmt"

	"github.com/satheeshds/gstbill/gst"
	"github.com/satheeshds/gstbill/models"
)

// CreateInvoice validates the input, snapshots the company and customer,
// computes tax and stores a new draft invoice under the next INV number.
// Header, items and the number are committed together or not at all.
func (s *Service) CreateInvoice(ctx context.Context, companyID int64, input models.InvoiceInput) (models.Invoice, error) {
	const op = "CreateInvoice"
	if msg := input.Validate(); msg != "" {
		return models.Invoice{}, validationError(op, msg)
	}

	company, err := s.store.GetCompany(ctx, companyID)
	if err != nil {
		return models.Invoice{}, lookupError(op, "company", err)
	}
	customer, err := s.store.GetParty(ctx, companyID, input.CustomerID)
	if err != nil {
		return models.Invoice{}, lookupError(op, "customer", err)
	}
	if customer.CompanyID != companyID {
		return models.Invoice{}, notFoundError(op, "customer not found")
	}

	inv := models.Invoice{
		CompanyID:        companyID,
		CustomerID:       customer.ID,
		InvoiceDate:      input.InvoiceDate,
		DueDate:          input.DueDate,
		CompanySnapshot:  company.Snapshot(),
		CustomerSnapshot: customer.Snapshot(),
		Status:           models.StatusDraft,
		Notes:            input.Notes,
	}

	lines := make([]gst.Line, len(input.Items))
	for n, it := range input.Items {
		lines[n] = gst.Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice, TaxRate: it.TaxRate}
	}
	totals := gst.ComputeInvoiceTotals(lines, inv.CompanySnapshot.StateCode, inv.CustomerSnapshot.StateCode)
	for n, it := range input.Items {
		r := totals.Lines[n]
		inv.Items = append(inv.Items, models.LineItem{
			Position:    n + 1,
			Description: it.Description,
			SACCode:     it.SACCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Taxable:     r.Taxable,
			CGST:        r.CGST,
			SGST:        r.SGST,
			IGST:        r.IGST,
			Total:       r.Total,
		})
	}
	inv.Subtotal = totals.Subtotal
	inv.TaxTotal = totals.TaxTotal
	inv.GrandTotal = totals.GrandTotal

	err = s.store.InTx(ctx, func(tx Tx) error {
		seq, err := tx.NextSequence(ctx, companyID, SeriesInvoice)
		if err != nil {
			return err
		}
		inv.Number = FormatNumber(SeriesInvoice, seq)
		return tx.InsertInvoice(ctx, &inv)
	})
	if err != nil {
		return models.Invoice{}, persistenceError(op, err)
	}

	s.log.Info("invoice created", "company_id", companyID, "invoice_id", inv.ID, "number", inv.Number,
		"grand_total", inv.GrandTotal.String(), "inter_state", totals.InterState)
	return inv, nil
}

// GetInvoice returns a non-deleted invoice of the caller's company.
func (s *Service) GetInvoice(ctx context.Context, companyID, id int64) (models.Invoice, error) {
	return s.loadInvoice(ctx, "GetInvoice", companyID, id)
}

// ListInvoices returns the company's non-deleted invoices, newest first.
func (s *Service) ListInvoices(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error) {
	const op = "ListInvoices"
	if f.Range != nil {
		if msg := f.Range.Validate(); msg != "" {
			return nil, validationError(op, msg)
		}
	}
	for _, st := range f.Statuses {
		if !st.Valid() {
			return nil, validationError(op, "status must be one of: draft, finalized, cancelled")
		}
	}
	invoices, err := s.store.ListInvoices(ctx, f)
	if err != nil {
		return nil, persistenceError(op, err)
	}
	return invoices, nil
}

// FinalizeInvoice moves a draft invoice to finalized. Its line items are
// immutable from then on.
func (s *Service) FinalizeInvoice(ctx context.Context, companyID, id int64) (models.Invoice, error) {
	const op = "FinalizeInvoice"
	inv, err := s.loadInvoice(ctx, op, companyID, id)
	if err != nil {
		return models.Invoice{}, err
	}
	if inv.Status != models.StatusDraft {
		return models.Invoice{}, stateError(op, fmt.Sprintf("Only draft invoices can be finalized (current status: %s)", inv.Status))
	}
	if err := s.transition(ctx, op, &inv, models.StatusFinalized, nil); err != nil {
		return models.Invoice{}, err
	}
	s.log.Info("invoice finalized", "company_id", companyID, "invoice_id", id, "number", inv.Number)
	return inv, nil
}

// CancelInvoice cancels a draft or finalized invoice with a reason of at
// least five characters.
func (s *Service) CancelInvoice(ctx context.Context, companyID, id int64, reason string) (models.Invoice, error) {
	const op = "CancelInvoice"
	inv, err := s.loadInvoice(ctx, op, companyID, id)
	if err != nil {
		return models.Invoice{}, err
	}
	in := models.CancelInput{Reason: reason}
	if msg := in.Validate(); msg != "" {
		return models.Invoice{}, validationError(op, msg)
	}
	if !inv.Status.CanTransition(models.StatusCancelled) {
		return models.Invoice{}, stateError(op, "Invoice is already cancelled")
	}
	if err := s.transition(ctx, op, &inv, models.StatusCancelled, &in.Reason); err != nil {
		return models.Invoice{}, err
	}
	s.log.Info("invoice cancelled", "company_id", companyID, "invoice_id", id, "number", inv.Number, "reason", in.Reason)
	return inv, nil
}

// DeleteInvoice soft-deletes a draft invoice. Finalized invoices must be
// cancelled instead.
func (s *Service) DeleteInvoice(ctx context.Context, companyID, id int64) error {
	const op = "DeleteInvoice"
	inv, err := s.loadInvoice(ctx, op, companyID, id)
	if err != nil {
		return err
	}
	if inv.Status != models.StatusDraft {
		return stateError(op, "Only draft invoices can be deleted. Cancel finalized invoices instead.")
	}
	ok, err := s.store.SoftDeleteInvoice(ctx, id)
	if err != nil {
		return persistenceError(op, err)
	}
	if !ok {
		return stateError(op, "Only draft invoices can be deleted. Cancel finalized invoices instead.")
	}
	s.log.Info("invoice deleted", "company_id", companyID, "invoice_id", id, "number", inv.Number)
	return nil
}

// transition applies a status change only if the invoice still has the
// status it was read with, so two concurrent transitions cannot both win.
func (s *Service) transition(ctx context.Context, op string, inv *models.Invoice, to models.InvoiceStatus, reason *string) error {
	ok, err := s.store.TransitionInvoice(ctx, inv.ID, []models.InvoiceStatus{inv.Status}, to, reason)
	if err != nil {
		return persistenceError(op, err)
	}
	if !ok {
		return stateError(op, "invoice was modified concurrently; reload and retry")
	}
	inv.Status = to
	if reason != nil {
		inv.CancelReason = reason
	}
	return nil
}
