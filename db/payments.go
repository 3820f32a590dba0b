package db

import (
	"context"
	"fmt"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

// LockBalance takes a row lock on the invoice, held until the transaction
// ends, so payments to one invoice are checked and written one at a time.
func (t *txStore) LockBalance(ctx context.Context, invoiceID int64) (billing.Balance, error) {
	var bal billing.Balance
	err := t.q.QueryRow(ctx, `SELECT status, grand_total FROM invoices
		WHERE id = $1 AND NOT is_deleted FOR UPDATE`, invoiceID).Scan(&bal.Status, &bal.GrandTotal)
	if err != nil {
		return billing.Balance{}, noRecord(err)
	}
	err = t.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0)::BIGINT FROM payments WHERE invoice_id = $1`, invoiceID).
		Scan(&bal.Paid)
	if err != nil {
		return billing.Balance{}, fmt.Errorf("summing payments: %w", err)
	}
	return bal, nil
}

func (t *txStore) InsertPayment(ctx context.Context, p *models.Payment) error {
	return t.q.QueryRow(ctx, `INSERT INTO payments (company_id, invoice_id, amount, payment_date, mode, notes)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		p.CompanyID, p.InvoiceID, p.Amount, p.Date.Time, p.Mode, p.Notes).Scan(&p.ID, &p.CreatedAt)
}

func (s *Store) ListPayments(ctx context.Context, companyID int64, invoiceID *int64) ([]models.Payment, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, company_id, invoice_id, amount, payment_date, mode, notes, created_at
		FROM payments WHERE company_id = $1 AND ($2::BIGINT IS NULL OR invoice_id = $2) ORDER BY payment_date, id`,
		companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.InvoiceID, &p.Amount, &p.Date.Time, &p.Mode, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
