package billing

import (
	"context"
	"fmt"

	"github.com/satheeshds/gstbill/models"
)

// RecordPayment appends a payment against a finalized invoice. The amount
// may not exceed what is still pending on the invoice.
func (s *Service) RecordPayment(ctx context.Context, companyID, invoiceID int64, input models.PaymentInput) (models.Payment, error) {
	const op = "RecordPayment"
	if msg := input.Validate(); msg != "" {
		return models.Payment{}, validationError(op, msg)
	}
	inv, err := s.loadInvoice(ctx, op, companyID, invoiceID)
	if err != nil {
		return models.Payment{}, err
	}

	p := models.Payment{
		CompanyID: companyID,
		InvoiceID: inv.ID,
		Amount:    input.Amount,
		Date:      input.Date,
		Mode:      input.Mode,
		Notes:     input.Notes,
	}
	// Pending is checked against the locked balance, not the read above.
	err = s.store.InTx(ctx, func(tx Tx) error {
		bal, err := tx.LockBalance(ctx, inv.ID)
		if err != nil {
			return lookupError(op, "invoice", err)
		}
		if bal.Status != models.StatusFinalized {
			return stateError(op, fmt.Sprintf("Payments can only be recorded against finalized invoices (current status: %s)", bal.Status))
		}
		if pending := bal.Pending(); input.Amount > pending {
			return validationError(op, fmt.Sprintf("invoice only has %s pending (requested %s)", pending, input.Amount))
		}
		return tx.InsertPayment(ctx, &p)
	})
	if err != nil {
		return models.Payment{}, persistenceError(op, err)
	}
	s.log.Info("payment recorded", "company_id", companyID, "invoice_id", inv.ID, "payment_id", p.ID, "amount", p.Amount.String())
	return p, nil
}

// ListPayments returns the payments of one invoice of the caller's company.
func (s *Service) ListPayments(ctx context.Context, companyID, invoiceID int64) ([]models.Payment, error) {
	const op = "ListPayments"
	if _, err := s.loadInvoice(ctx, op, companyID, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.store.ListPayments(ctx, companyID, &invoiceID)
	if err != nil {
		return nil, persistenceError(op, err)
	}
	return payments, nil
}
