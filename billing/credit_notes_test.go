package billing_test

import (
	"errors"
	"testing"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reversal(taxable models.Money, rate int64) models.CreditNoteInput {
	return models.CreditNoteInput{
		Date:   date("2024-06-20"),
		Reason: "Service level credit",
		Items: []models.ReversalItemInput{{
			Description: "Partial refund",
			SACCode:     "998311",
			Taxable:     taxable,
			TaxRate:     decimal.NewFromInt(rate),
		}},
	}
}

func TestIssueCreditNote(t *testing.T) {
	f := newFixture(t)
	inv := f.finalizedInvoice(t, f.local, 100000, "2024-06-01", "2024-06-15")

	cn, err := f.svc.IssueCreditNote(f.ctx, f.company.ID, inv.ID, reversal(20000, 18))
	require.NoError(t, err)

	assert.Equal(t, "CN-001", cn.Number)
	assert.Equal(t, inv.ID, cn.InvoiceID)
	assert.Equal(t, inv.CompanySnapshot, cn.CompanySnapshot)
	assert.Equal(t, inv.CustomerSnapshot, cn.CustomerSnapshot)
	require.Len(t, cn.Items, 1)
	assert.Equal(t, models.Money(1800), cn.Items[0].CGST)
	assert.Equal(t, models.Money(1800), cn.Items[0].SGST)
	assert.Equal(t, models.Money(20000), cn.Subtotal)
	assert.Equal(t, models.Money(3600), cn.TaxTotal)
	assert.Equal(t, models.Money(23600), cn.GrandTotal)

	second, err := f.svc.IssueCreditNote(f.ctx, f.company.ID, inv.ID, reversal(500, 18))
	require.NoError(t, err)
	assert.Equal(t, "CN-002", second.Number)

	notes, err := f.svc.ListCreditNotes(f.ctx, billing.CreditNoteFilter{CompanyID: f.company.ID, InvoiceID: inv.ID})
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	got, err := f.svc.GetCreditNote(f.ctx, f.company.ID, cn.ID)
	require.NoError(t, err)
	assert.Equal(t, cn.Number, got.Number)
}

func TestIssueCreditNote_KeepsOriginalJurisdiction(t *testing.T) {
	f := newFixture(t)
	intra := f.finalizedInvoice(t, f.local, 100000, "2024-06-01", "2024-06-15")
	inter := f.finalizedInvoice(t, f.outside, 100000, "2024-06-01", "2024-06-15")

	// The company re-registers in Maharashtra and the local buyer moves to Delhi.
	moved := f.company
	moved.GSTIN = "27AAACA1234A1Z5"
	moved.StateCode = "27"
	f.store.PutCompany(moved)
	buyer := f.local
	buyer.StateCode = "07"
	f.store.PutParty(buyer)

	cn, err := f.svc.IssueCreditNote(f.ctx, f.company.ID, intra.ID, reversal(10000, 18))
	require.NoError(t, err)
	assert.Equal(t, models.Money(900), cn.Items[0].CGST)
	assert.Equal(t, models.Money(900), cn.Items[0].SGST)
	assert.Zero(t, cn.Items[0].IGST)
	assert.Equal(t, "36", cn.CompanySnapshot.StateCode)

	cn, err = f.svc.IssueCreditNote(f.ctx, f.company.ID, inter.ID, reversal(10000, 18))
	require.NoError(t, err)
	assert.Equal(t, models.Money(1800), cn.Items[0].IGST)
	assert.Zero(t, cn.Items[0].CGST)
}

func TestIssueCreditNote_AnyInvoiceStatus(t *testing.T) {
	f := newFixture(t)
	draft := f.createInvoice(t, f.local, 1000, "2024-06-01", "2024-06-01")
	cancelled := f.createInvoice(t, f.local, 1000, "2024-06-01", "2024-06-01")
	_, err := f.svc.CancelInvoice(f.ctx, f.company.ID, cancelled.ID, "raised twice")
	require.NoError(t, err)

	for _, inv := range []models.Invoice{draft, cancelled} {
		_, err := f.svc.IssueCreditNote(f.ctx, f.company.ID, inv.ID, reversal(100, 5))
		assert.NoError(t, err)
	}
}

func TestIssueCreditNote_Errors(t *testing.T) {
	f := newFixture(t)
	inv := f.finalizedInvoice(t, f.local, 1000, "2024-06-01", "2024-06-01")

	t.Run("other company", func(t *testing.T) {
		_, err := f.svc.IssueCreditNote(f.ctx, f.other.ID, inv.ID, reversal(100, 18))
		assert.ErrorIs(t, err, billing.ErrAuthorization)
	})

	t.Run("missing invoice", func(t *testing.T) {
		_, err := f.svc.IssueCreditNote(f.ctx, f.company.ID, 9999, reversal(100, 18))
		assert.ErrorIs(t, err, billing.ErrNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		in := reversal(0, 18)
		_, err := f.svc.IssueCreditNote(f.ctx, f.company.ID, inv.ID, in)
		assert.ErrorIs(t, err, billing.ErrValidation)

		in = reversal(100, 18)
		in.Reason = " "
		_, err = f.svc.IssueCreditNote(f.ctx, f.company.ID, inv.ID, in)
		assert.ErrorIs(t, err, billing.ErrValidation)
	})

	t.Run("item write fails", func(t *testing.T) {
		f.store.FailCreditNoteItems = errors.New("connection reset")
		defer func() { f.store.FailCreditNoteItems = nil }()

		_, err := f.svc.IssueCreditNote(f.ctx, f.company.ID, inv.ID, reversal(100, 18))
		require.ErrorIs(t, err, billing.ErrPersistence)

		_, notes := f.store.Counts()
		assert.Zero(t, notes, "no orphaned header")
	})

	t.Run("numbering resumes after failure", func(t *testing.T) {
		cn, err := f.svc.IssueCreditNote(f.ctx, f.company.ID, inv.ID, reversal(100, 18))
		require.NoError(t, err)
		assert.Equal(t, "CN-001", cn.Number)
	})
}
