package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

const creditNoteSelectQuery = `SELECT id, company_id, invoice_id, credit_note_number, note_date, reason,
		company_snapshot, customer_snapshot, subtotal, tax_total, grand_total, created_at
		FROM credit_notes`

func scanCreditNote(scanner pgx.Row) (models.CreditNote, error) {
	var cn models.CreditNote
	err := scanner.Scan(&cn.ID, &cn.CompanyID, &cn.InvoiceID, &cn.Number, &cn.Date.Time, &cn.Reason,
		&cn.CompanySnapshot, &cn.CustomerSnapshot, &cn.Subtotal, &cn.TaxTotal, &cn.GrandTotal, &cn.CreatedAt)
	return cn, err
}

func (s *Store) GetCreditNote(ctx context.Context, id int64) (models.CreditNote, error) {
	cn, err := scanCreditNote(s.pool.QueryRow(ctx, creditNoteSelectQuery+" WHERE id = $1", id))
	if err != nil {
		return models.CreditNote{}, noRecord(err)
	}
	notes := []models.CreditNote{cn}
	if err := s.attachCreditNoteItems(ctx, notes); err != nil {
		return models.CreditNote{}, err
	}
	return notes[0], nil
}

func (s *Store) ListCreditNotes(ctx context.Context, f billing.CreditNoteFilter) ([]models.CreditNote, error) {
	conditions := []string{"company_id = $1"}
	args := []any{f.CompanyID}
	if f.InvoiceID != 0 {
		args = append(args, f.InvoiceID)
		conditions = append(conditions, fmt.Sprintf("invoice_id = $%d", len(args)))
	}
	if f.Range != nil {
		args = append(args, f.Range.From.Time, f.Range.To.Time)
		conditions = append(conditions, fmt.Sprintf("note_date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	rows, err := s.pool.Query(ctx, creditNoteSelectQuery+" WHERE "+strings.Join(conditions, " AND ")+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.CreditNote{}
	for rows.Next() {
		cn, err := scanCreditNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, cn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachCreditNoteItems(ctx, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *Store) attachCreditNoteItems(ctx context.Context, notes []models.CreditNote) error {
	if len(notes) == 0 {
		return nil
	}
	ids := make([]int64, len(notes))
	index := make(map[int64]int, len(notes))
	for n, cn := range notes {
		ids[n] = cn.ID
		index[cn.ID] = n
	}

	rows, err := s.pool.Query(ctx, `SELECT id, credit_note_id, position, description, sac_code, tax_rate,
		taxable, cgst, sgst, igst, total
		FROM credit_note_items WHERE credit_note_id = ANY($1) ORDER BY credit_note_id, position`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it models.CreditNoteItem
		if err := rows.Scan(&it.ID, &it.CreditNoteID, &it.Position, &it.Description, &it.SACCode, &it.TaxRate,
			&it.Taxable, &it.CGST, &it.SGST, &it.IGST, &it.Total); err != nil {
			return err
		}
		n := index[it.CreditNoteID]
		notes[n].Items = append(notes[n].Items, it)
	}
	return rows.Err()
}

func (t *txStore) InsertCreditNote(ctx context.Context, cn *models.CreditNote) error {
	err := t.q.QueryRow(ctx, `INSERT INTO credit_notes (company_id, invoice_id, credit_note_number, note_date, reason,
		company_snapshot, customer_snapshot, subtotal, tax_total, grand_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at`,
		cn.CompanyID, cn.InvoiceID, cn.Number, cn.Date.Time, cn.Reason,
		cn.CompanySnapshot, cn.CustomerSnapshot, cn.Subtotal, cn.TaxTotal, cn.GrandTotal).
		Scan(&cn.ID, &cn.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting credit note: %w", err)
	}

	batch := &pgx.Batch{}
	for n := range cn.Items {
		it := &cn.Items[n]
		it.CreditNoteID = cn.ID
		batch.Queue(`INSERT INTO credit_note_items (credit_note_id, position, description, sac_code, tax_rate,
			taxable, cgst, sgst, igst, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			it.CreditNoteID, it.Position, it.Description, it.SACCode, it.TaxRate,
			it.Taxable, it.CGST, it.SGST, it.IGST, it.Total).
			QueryRow(func(row pgx.Row) error { return row.Scan(&it.ID) })
	}
	if err := t.q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting credit note items: %w", err)
	}
	return nil
}
