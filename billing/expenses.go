package billing

import (
	"context"

	"github.com/satheeshds/gstbill/models"
)

func (s *Service) RecordExpense(ctx context.Context, companyID int64, input models.ExpenseInput) (models.Expense, error) {
	const op = "RecordExpense"
	if msg := input.Validate(); msg != "" {
		return models.Expense{}, validationError(op, msg)
	}
	e := models.Expense{
		CompanyID: companyID,
		Category:  input.Category,
		Vendor:    input.Vendor,
		Amount:    input.Amount,
		GSTAmount: input.GSTAmount,
		Date:      input.Date,
		Notes:     input.Notes,
	}
	if err := s.store.InsertExpense(ctx, &e); err != nil {
		return models.Expense{}, persistenceError(op, err)
	}
	return e, nil
}

// DeleteExpense soft-deletes an expense of the caller's company.
func (s *Service) DeleteExpense(ctx context.Context, companyID, id int64) error {
	const op = "DeleteExpense"
	ok, err := s.store.SoftDeleteExpense(ctx, companyID, id)
	if err != nil {
		return persistenceError(op, err)
	}
	if !ok {
		return notFoundError(op, "expense not found")
	}
	return nil
}

func (s *Service) ListExpenses(ctx context.Context, f ExpenseFilter) ([]models.Expense, error) {
	const op = "ListExpenses"
	if f.Range != nil {
		if msg := f.Range.Validate(); msg != "" {
			return nil, validationError(op, msg)
		}
	}
	expenses, err := s.store.ListExpenses(ctx, f)
	if err != nil {
		return nil, persistenceError(op, err)
	}
	return expenses, nil
}
