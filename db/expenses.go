package db

import (
	"context"
	"fmt"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

func (s *Store) InsertExpense(ctx context.Context, e *models.Expense) error {
	return s.pool.QueryRow(ctx, `INSERT INTO expenses (company_id, category, vendor, amount, gst_amount, expense_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`,
		e.CompanyID, e.Category, e.Vendor, e.Amount, e.GSTAmount, e.Date.Time, e.Notes).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (s *Store) SoftDeleteExpense(ctx context.Context, companyID, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE expenses SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND company_id = $2 AND NOT is_deleted`, id, companyID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) ListExpenses(ctx context.Context, f billing.ExpenseFilter) ([]models.Expense, error) {
	query := `SELECT id, company_id, category, vendor, amount, gst_amount, expense_date, notes, is_deleted, created_at, updated_at
		FROM expenses WHERE company_id = $1 AND NOT is_deleted`
	args := []any{f.CompanyID}
	if f.Range != nil {
		args = append(args, f.Range.From.Time, f.Range.To.Time)
		query += fmt.Sprintf(" AND expense_date BETWEEN $%d AND $%d", len(args)-1, len(args))
	}
	query += " ORDER BY expense_date, id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Category, &e.Vendor, &e.Amount, &e.GSTAmount, &e.Date.Time,
			&e.Notes, &e.IsDeleted, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
