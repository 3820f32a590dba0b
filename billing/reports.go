package billing

import (
	"context"
	"sort"
	"strings"

	"github.com/satheeshds/gstbill/models"
)

// Uncategorized is the expense category used when none was recorded.
const Uncategorized = "Uncategorized"

// ProfitAndLoss is the income statement for a date range.
type ProfitAndLoss struct {
	Range          models.DateRange        `json:"range"`
	Revenue        models.Money            `json:"revenue"`
	TaxableRevenue models.Money            `json:"taxable_revenue"`
	Expenses       models.Money            `json:"expenses"`
	NetProfit      models.Money            `json:"net_profit"`
	ByCategory     map[string]models.Money `json:"expenses_by_category"`
}

// SalesRegisterRow is one invoice flattened for statutory returns.
type SalesRegisterRow struct {
	InvoiceID     int64                `json:"invoice_id"`
	Number        string               `json:"invoice_number"`
	InvoiceDate   models.Date          `json:"invoice_date"`
	Status        models.InvoiceStatus `json:"status"`
	CustomerName  string               `json:"customer_name"`
	CustomerGSTIN string               `json:"customer_gstin"`
	PlaceOfSupply string               `json:"place_of_supply"`
	Taxable       models.Money         `json:"taxable"`
	CGST          models.Money         `json:"cgst"`
	SGST          models.Money         `json:"sgst"`
	IGST          models.Money         `json:"igst"`
	Total         models.Money         `json:"total"`
}

// GSTOutput is tax collected on sales.
type GSTOutput struct {
	Taxable models.Money `json:"taxable"`
	CGST    models.Money `json:"cgst"`
	SGST    models.Money `json:"sgst"`
	IGST    models.Money `json:"igst"`
	Total   models.Money `json:"total"`
}

// GSTInput is tax paid on expenses, all of it treated as eligible credit.
type GSTInput struct {
	Taxable  models.Money `json:"taxable"`
	TotalGST models.Money `json:"total_gst"`
}

// GSTSummary nets output tax against input tax. CreditNotes is reported
// alongside for reconciliation and does not enter NetPayable.
type GSTSummary struct {
	Range       models.DateRange `json:"range"`
	Output      GSTOutput        `json:"output"`
	Input       GSTInput         `json:"input"`
	CreditNotes GSTOutput        `json:"credit_notes"`
	NetPayable  models.Money     `json:"net_payable"`
}

var reportStatuses = []models.InvoiceStatus{models.StatusDraft, models.StatusFinalized}

func (s *Service) ProfitAndLoss(ctx context.Context, companyID int64, r models.DateRange) (ProfitAndLoss, error) {
	const op = "ProfitAndLoss"
	invoices, expenses, err := s.loadPeriod(ctx, op, companyID, r)
	if err != nil {
		return ProfitAndLoss{}, err
	}

	pl := ProfitAndLoss{Range: r, ByCategory: map[string]models.Money{}}
	for _, inv := range invoices {
		pl.Revenue += inv.GrandTotal
		pl.TaxableRevenue += inv.Subtotal
	}
	for _, e := range expenses {
		pl.Expenses += e.Amount
		cat := strings.TrimSpace(e.Category)
		if cat == "" {
			cat = Uncategorized
		}
		pl.ByCategory[cat] += e.Amount
	}
	pl.NetProfit = pl.Revenue - pl.Expenses
	return pl, nil
}

// SalesRegister lists every non-cancelled invoice in the range by date.
// Taxable and total come from the invoice header; the tax heads are summed
// from its lines.
func (s *Service) SalesRegister(ctx context.Context, companyID int64, r models.DateRange) ([]SalesRegisterRow, error) {
	const op = "SalesRegister"
	if msg := r.Validate(); msg != "" {
		return nil, validationError(op, msg)
	}
	invoices, err := s.store.ListInvoices(ctx, InvoiceFilter{CompanyID: companyID, Statuses: reportStatuses, Range: &r})
	if err != nil {
		return nil, persistenceError(op, err)
	}
	return salesRegister(invoices), nil
}

func salesRegister(invoices []models.Invoice) []SalesRegisterRow {
	rows := make([]SalesRegisterRow, 0, len(invoices))
	for _, inv := range invoices {
		row := SalesRegisterRow{
			InvoiceID:     inv.ID,
			Number:        inv.Number,
			InvoiceDate:   inv.InvoiceDate,
			Status:        inv.Status,
			CustomerName:  inv.CustomerSnapshot.Name,
			CustomerGSTIN: inv.CustomerSnapshot.GSTIN,
			PlaceOfSupply: inv.CustomerSnapshot.StateCode,
			Taxable:       inv.Subtotal,
			Total:         inv.GrandTotal,
		}
		for _, it := range inv.Items {
			row.CGST += it.CGST
			row.SGST += it.SGST
			row.IGST += it.IGST
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].InvoiceDate.Equal(rows[j].InvoiceDate.Time) {
			return rows[i].InvoiceDate.Before(rows[j].InvoiceDate.Time)
		}
		return rows[i].Number < rows[j].Number
	})
	return rows
}

func (s *Service) GSTSummary(ctx context.Context, companyID int64, r models.DateRange) (GSTSummary, error) {
	const op = "GSTSummary"
	invoices, expenses, err := s.loadPeriod(ctx, op, companyID, r)
	if err != nil {
		return GSTSummary{}, err
	}
	notes, err := s.store.ListCreditNotes(ctx, CreditNoteFilter{CompanyID: companyID, Range: &r})
	if err != nil {
		return GSTSummary{}, persistenceError(op, err)
	}

	sum := GSTSummary{Range: r}
	for _, row := range salesRegister(invoices) {
		sum.Output.Taxable += row.Taxable
		sum.Output.CGST += row.CGST
		sum.Output.SGST += row.SGST
		sum.Output.IGST += row.IGST
	}
	sum.Output.Total = sum.Output.CGST + sum.Output.SGST + sum.Output.IGST

	for _, e := range expenses {
		if e.GSTAmount <= 0 {
			continue
		}
		sum.Input.Taxable += e.Amount - e.GSTAmount
		sum.Input.TotalGST += e.GSTAmount
	}

	for _, cn := range notes {
		sum.CreditNotes.Taxable += cn.Subtotal
		for _, it := range cn.Items {
			sum.CreditNotes.CGST += it.CGST
			sum.CreditNotes.SGST += it.SGST
			sum.CreditNotes.IGST += it.IGST
		}
	}
	sum.CreditNotes.Total = sum.CreditNotes.CGST + sum.CreditNotes.SGST + sum.CreditNotes.IGST

	sum.NetPayable = sum.Output.Total - sum.Input.TotalGST
	return sum, nil
}

// loadPeriod reads the non-cancelled invoices and live expenses of a range.
func (s *Service) loadPeriod(ctx context.Context, op string, companyID int64, r models.DateRange) ([]models.Invoice, []models.Expense, error) {
	if msg := r.Validate(); msg != "" {
		return nil, nil, validationError(op, msg)
	}
	invoices, err := s.store.ListInvoices(ctx, InvoiceFilter{CompanyID: companyID, Statuses: reportStatuses, Range: &r})
	if err != nil {
		return nil, nil, persistenceError(op, err)
	}
	expenses, err := s.store.ListExpenses(ctx, ExpenseFilter{CompanyID: companyID, Range: &r})
	if err != nil {
		return nil, nil, persistenceError(op, err)
	}
	return invoices, expenses, nil
}
