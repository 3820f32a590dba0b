package billing_test

import (
	"testing"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var june = models.DateRange{From: date("2024-06-01"), To: date("2024-06-30")}

// seedPeriod creates two June invoices (one intra-, one inter-state), a
// cancelled invoice, an invoice outside the range and three expenses.
func seedPeriod(t *testing.T, f *fixture) (intra, inter models.Invoice) {
	t.Helper()
	intra = f.finalizedInvoice(t, f.local, 100000, "2024-06-05", "2024-06-20")
	inter = f.createInvoice(t, f.outside, 50000, "2024-06-10", "2024-06-25")

	cancelled := f.finalizedInvoice(t, f.local, 70000, "2024-06-12", "2024-06-12")
	_, err := f.svc.CancelInvoice(f.ctx, f.company.ID, cancelled.ID, "issued in error")
	require.NoError(t, err)
	f.finalizedInvoice(t, f.local, 90000, "2024-07-01", "2024-07-01")

	for _, e := range []models.ExpenseInput{
		{Category: "Rent", Vendor: "Landlord", Amount: 30000, Date: date("2024-06-01")},
		{Category: "Software", Vendor: "SaaS Inc", Amount: 11800, GSTAmount: 1800, Date: date("2024-06-15")},
		{Vendor: "Tea stall", Amount: 500, Date: date("2024-06-30")},
	} {
		_, err := f.svc.RecordExpense(f.ctx, f.company.ID, e)
		require.NoError(t, err)
	}
	gone, err := f.svc.RecordExpense(f.ctx, f.company.ID, models.ExpenseInput{Category: "Rent", Amount: 99900, GSTAmount: 100, Date: date("2024-06-02")})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteExpense(f.ctx, f.company.ID, gone.ID))
	return intra, inter
}

func TestProfitAndLoss(t *testing.T) {
	f := newFixture(t)
	seedPeriod(t, f)

	pl, err := f.svc.ProfitAndLoss(f.ctx, f.company.ID, june)
	require.NoError(t, err)

	assert.Equal(t, models.Money(118000+59000), pl.Revenue)
	assert.Equal(t, models.Money(150000), pl.TaxableRevenue)
	assert.Equal(t, models.Money(42300), pl.Expenses)
	assert.Equal(t, pl.Revenue-pl.Expenses, pl.NetProfit)
	assert.Equal(t, map[string]models.Money{
		"Rent":                30000,
		"Software":            11800,
		billing.Uncategorized: 500,
	}, pl.ByCategory)
}

func TestSalesRegister(t *testing.T) {
	f := newFixture(t)
	intra, inter := seedPeriod(t, f)

	rows, err := f.svc.SalesRegister(f.ctx, f.company.ID, june)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, intra.ID, rows[0].InvoiceID)
	assert.Equal(t, models.Money(9000), rows[0].CGST)
	assert.Equal(t, models.Money(9000), rows[0].SGST)
	assert.Zero(t, rows[0].IGST)
	assert.Equal(t, models.Money(100000), rows[0].Taxable)
	assert.Equal(t, "36", rows[0].PlaceOfSupply)

	assert.Equal(t, inter.ID, rows[1].InvoiceID)
	assert.Equal(t, models.Money(9000), rows[1].IGST)
	assert.Equal(t, models.Money(59000), rows[1].Total)
	assert.Equal(t, "27", rows[1].PlaceOfSupply)
}

func TestGSTSummary(t *testing.T) {
	f := newFixture(t)
	intra, _ := seedPeriod(t, f)
	_, err := f.svc.IssueCreditNote(f.ctx, f.company.ID, intra.ID, reversal(10000, 18))
	require.NoError(t, err)

	sum, err := f.svc.GSTSummary(f.ctx, f.company.ID, june)
	require.NoError(t, err)

	assert.Equal(t, billing.GSTOutput{Taxable: 150000, CGST: 9000, SGST: 9000, IGST: 9000, Total: 27000}, sum.Output)
	assert.Equal(t, billing.GSTInput{Taxable: 10000, TotalGST: 1800}, sum.Input)
	assert.Equal(t, models.Money(25200), sum.NetPayable)
	assert.Equal(t, sum.Output.Total-sum.Input.TotalGST, sum.NetPayable)

	assert.Equal(t, models.Money(10000), sum.CreditNotes.Taxable)
	assert.Equal(t, models.Money(1800), sum.CreditNotes.Total)
}

func TestReports_InvalidRange(t *testing.T) {
	f := newFixture(t)
	bad := models.DateRange{From: date("2024-07-01"), To: date("2024-06-01")}

	_, err := f.svc.ProfitAndLoss(f.ctx, f.company.ID, bad)
	assert.ErrorIs(t, err, billing.ErrValidation)
	_, err = f.svc.SalesRegister(f.ctx, f.company.ID, models.DateRange{})
	assert.ErrorIs(t, err, billing.ErrValidation)
	_, err = f.svc.GSTSummary(f.ctx, f.company.ID, bad)
	assert.ErrorIs(t, err, billing.ErrValidation)
}
