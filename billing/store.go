package billing

import (
	"context"

	"github.com/satheeshds/gstbill/models"
)

// Store is the persistence collaborator. Reads of invoices and expenses
// never return soft-deleted rows. Absent rows are reported as ErrNoRecord.
type Store interface {
	GetCompany(ctx context.Context, id int64) (models.Company, error)
	GetParty(ctx context.Context, companyID, id int64) (models.Party, error)

	// GetInvoice returns the invoice with its line items in position order.
	GetInvoice(ctx context.Context, id int64) (models.Invoice, error)
	ListInvoices(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error)
	// TransitionInvoice sets the status of an invoice whose current status
	// is one of from. It reports false when no such invoice exists.
	TransitionInvoice(ctx context.Context, id int64, from []models.InvoiceStatus, to models.InvoiceStatus, reason *string) (bool, error)
	// SoftDeleteInvoice flags a draft invoice as deleted. It reports false
	// when the invoice is absent or no longer a draft.
	SoftDeleteInvoice(ctx context.Context, id int64) (bool, error)

	GetCreditNote(ctx context.Context, id int64) (models.CreditNote, error)
	ListCreditNotes(ctx context.Context, f CreditNoteFilter) ([]models.CreditNote, error)

	ListPayments(ctx context.Context, companyID int64, invoiceID *int64) ([]models.Payment, error)

	InsertExpense(ctx context.Context, e *models.Expense) error
	SoftDeleteExpense(ctx context.Context, companyID, id int64) (bool, error)
	ListExpenses(ctx context.Context, f ExpenseFilter) ([]models.Expense, error)

	// InTx runs fn in one transaction. Everything fn wrote is discarded
	// when it returns an error.
	InTx(ctx context.Context, fn func(Tx) error) error
}

// Tx is the write surface available inside Store.InTx.
type Tx interface {
	// NextSequence atomically increments and returns the counter for the
	// company's series. The increment is undone if the transaction rolls back.
	NextSequence(ctx context.Context, companyID int64, series Series) (int64, error)
	// InsertInvoice writes the header and its items, setting their IDs.
	InsertInvoice(ctx context.Context, inv *models.Invoice) error
	// InsertCreditNote writes the header and its items, setting their IDs.
	InsertCreditNote(ctx context.Context, cn *models.CreditNote) error
	// LockBalance locks a non-deleted invoice against concurrent payments
	// until the transaction ends and returns what has been paid on it. It
	// returns ErrNoRecord when the invoice is absent.
	LockBalance(ctx context.Context, invoiceID int64) (Balance, error)
	// InsertPayment writes a payment, setting its ID.
	InsertPayment(ctx context.Context, p *models.Payment) error
}

// Balance is the payment position of one invoice.
type Balance struct {
	Status     models.InvoiceStatus
	GrandTotal models.Money
	Paid       models.Money
}

// Pending is what remains to be collected.
func (b Balance) Pending() models.Money {
	return b.GrandTotal - b.Paid
}

// InvoiceFilter selects invoices of one company. Zero fields do not filter.
type InvoiceFilter struct {
	CompanyID  int64
	CustomerID int64
	Statuses   []models.InvoiceStatus
	Range      *models.DateRange
}

// Match reports whether inv passes the filter.
func (f InvoiceFilter) Match(inv models.Invoice) bool {
	if inv.CompanyID != f.CompanyID || inv.IsDeleted {
		return false
	}
	if f.CustomerID != 0 && inv.CustomerID != f.CustomerID {
		return false
	}
	if len(f.Statuses) > 0 && !hasStatus(f.Statuses, inv.Status) {
		return false
	}
	if f.Range != nil && !f.Range.Contains(inv.InvoiceDate) {
		return false
	}
	return true
}

// CreditNoteFilter selects credit notes of one company.
type CreditNoteFilter struct {
	CompanyID int64
	InvoiceID int64
	Range     *models.DateRange
}

func (f CreditNoteFilter) Match(cn models.CreditNote) bool {
	if cn.CompanyID != f.CompanyID {
		return false
	}
	if f.InvoiceID != 0 && cn.InvoiceID != f.InvoiceID {
		return false
	}
	return f.Range == nil || f.Range.Contains(cn.Date)
}

// ExpenseFilter selects non-deleted expenses of one company.
type ExpenseFilter struct {
	CompanyID int64
	Range     *models.DateRange
}

func (f ExpenseFilter) Match(e models.Expense) bool {
	if e.CompanyID != f.CompanyID || e.IsDeleted {
		return false
	}
	return f.Range == nil || f.Range.Contains(e.Date)
}

func hasStatus(set []models.InvoiceStatus, s models.InvoiceStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
