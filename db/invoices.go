package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

const invoiceSelectQuery = `SELECT i.id, i.company_id, i.customer_id, i.invoice_number, i.invoice_date, i.due_date,
		i.company_snapshot, i.customer_snapshot, i.status, i.subtotal, i.tax_total, i.grand_total,
		i.cancel_reason, i.notes, i.is_deleted, i.created_at, i.updated_at
		FROM invoices i`

const invoiceItemSelectQuery = `SELECT id, invoice_id, position, description, sac_code, quantity, unit_price,
		tax_rate, taxable, cgst, sgst, igst, total
		FROM invoice_items`

func scanInvoice(scanner pgx.Row) (models.Invoice, error) {
	var inv models.Invoice
	err := scanner.Scan(&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.InvoiceDate.Time, &inv.DueDate.Time,
		&inv.CompanySnapshot, &inv.CustomerSnapshot, &inv.Status, &inv.Subtotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.CancelReason, &inv.Notes, &inv.IsDeleted, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func scanLineItem(scanner pgx.Row) (models.LineItem, error) {
	var it models.LineItem
	err := scanner.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.SACCode, &it.Quantity, &it.UnitPrice,
		&it.TaxRate, &it.Taxable, &it.CGST, &it.SGST, &it.IGST, &it.Total)
	return it, err
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (models.Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx, invoiceSelectQuery+" WHERE i.id = $1 AND NOT i.is_deleted", id))
	if err != nil {
		return models.Invoice{}, noRecord(err)
	}
	invoices := []models.Invoice{inv}
	if err := s.attachLineItems(ctx, invoices); err != nil {
		return models.Invoice{}, err
	}
	return invoices[0], nil
}

func (s *Store) ListInvoices(ctx context.Context, f billing.InvoiceFilter) ([]models.Invoice, error) {
	conditions := []string{"i.company_id = $1", "NOT i.is_deleted"}
	args := []any{f.CompanyID}

	if f.CustomerID != 0 {
		args = append(args, f.CustomerID)
		conditions = append(conditions, fmt.Sprintf("i.customer_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		args = append(args, statusStrings(f.Statuses))
		conditions = append(conditions, fmt.Sprintf("i.status = ANY($%d)", len(args)))
	}
	if f.Range != nil {
		args = append(args, f.Range.From.Time, f.Range.To.Time)
		conditions = append(conditions, fmt.Sprintf("i.invoice_date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	query := invoiceSelectQuery + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY i.created_at DESC, i.id DESC"
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachLineItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// attachLineItems loads the items of all given invoices in one query.
func (s *Store) attachLineItems(ctx context.Context, invoices []models.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]int64, len(invoices))
	index := make(map[int64]int, len(invoices))
	for n, inv := range invoices {
		ids[n] = inv.ID
		index[inv.ID] = n
	}

	rows, err := s.pool.Query(ctx, invoiceItemSelectQuery+" WHERE invoice_id = ANY($1) ORDER BY invoice_id, position", ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scanLineItem(rows)
		if err != nil {
			return err
		}
		n := index[it.InvoiceID]
		invoices[n].Items = append(invoices[n].Items, it)
	}
	return rows.Err()
}

func (s *Store) TransitionInvoice(ctx context.Context, id int64, from []models.InvoiceStatus, to models.InvoiceStatus, reason *string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE invoices SET status = $1, cancel_reason = COALESCE($2, cancel_reason),
		updated_at = now() WHERE id = $3 AND NOT is_deleted AND status = ANY($4)`,
		string(to), reason, id, statusStrings(from))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) SoftDeleteInvoice(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE invoices SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND NOT is_deleted AND status = 'draft'`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (t *txStore) InsertInvoice(ctx context.Context, inv *models.Invoice) error {
	err := t.q.QueryRow(ctx, `INSERT INTO invoices (company_id, customer_id, invoice_number, invoice_date, due_date,
		company_snapshot, customer_snapshot, status, subtotal, tax_total, grand_total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_at, updated_at`,
		inv.CompanyID, inv.CustomerID, inv.Number, inv.InvoiceDate.Time, inv.DueDate.Time,
		inv.CompanySnapshot, inv.CustomerSnapshot, string(inv.Status), inv.Subtotal, inv.TaxTotal, inv.GrandTotal, inv.Notes).
		Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", err)
	}

	batch := &pgx.Batch{}
	for n := range inv.Items {
		it := &inv.Items[n]
		it.InvoiceID = inv.ID
		batch.Queue(`INSERT INTO invoice_items (invoice_id, position, description, sac_code, quantity, unit_price,
			tax_rate, taxable, cgst, sgst, igst, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
			it.InvoiceID, it.Position, it.Description, it.SACCode, it.Quantity, it.UnitPrice,
			it.TaxRate, it.Taxable, it.CGST, it.SGST, it.IGST, it.Total).
			QueryRow(func(row pgx.Row) error { return row.Scan(&it.ID) })
	}
	if err := t.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting invoice items: %w", err)
	}
	return nil
}
