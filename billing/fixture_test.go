package billing_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/billing/billingtest"
	"github.com/satheeshds/gstbill/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *billingtest.Store
	svc     *billing.Service
	company models.Company
	local   models.Party // same state as the company
	outside models.Party // another state
	other   models.Company
	today   time.Time
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := billingtest.New()
	f := &fixture{
		store: store,
		today: time.Date(2024, 6, 30, 10, 0, 0, 0, time.UTC),
		ctx:   context.Background(),
	}
	f.company = store.PutCompany(models.Company{Name: "Acme Services", Address: "Hyderabad", GSTIN: "36AAACA1234A1Z5"})
	f.other = store.PutCompany(models.Company{Name: "Other Co", StateCode: "29"})
	f.local = store.PutParty(models.Party{CompanyID: f.company.ID, Name: "Local Buyer", Type: "customer", GSTIN: "36BBBCB1234B1Z5"})
	f.outside = store.PutParty(models.Party{CompanyID: f.company.ID, Name: "Mumbai Buyer", Type: "customer", StateCode: "27"})
	f.svc = billing.NewService(store,
		billing.WithClock(func() time.Time { return f.today }),
		billing.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return f
}

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func item(price models.Money, rate int64) models.LineItemInput {
	return models.LineItemInput{
		Description: "Consulting",
		SACCode:     "998311",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   price,
		TaxRate:     decimal.NewFromInt(rate),
	}
}

// createInvoice creates a one-line invoice of price at 18%.
func (f *fixture) createInvoice(t *testing.T, customer models.Party, price models.Money, invoiceDate, dueDate string) models.Invoice {
	t.Helper()
	inv, err := f.svc.CreateInvoice(f.ctx, f.company.ID, models.InvoiceInput{
		CustomerID:  customer.ID,
		InvoiceDate: date(invoiceDate),
		DueDate:     date(dueDate),
		Items:       []models.LineItemInput{item(price, 18)},
	})
	require.NoError(t, err)
	return inv
}

func (f *fixture) finalizedInvoice(t *testing.T, customer models.Party, price models.Money, invoiceDate, dueDate string) models.Invoice {
	t.Helper()
	inv := f.createInvoice(t, customer, price, invoiceDate, dueDate)
	inv, err := f.svc.FinalizeInvoice(f.ctx, f.company.ID, inv.ID)
	require.NoError(t, err)
	return inv
}
