package gst_test

import (
	"testing"

	"github.com/satheeshds/gstbill/gst"
	"github.com/satheeshds/gstbill/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(qty string, price models.Money, rate int64) gst.Line {
	return gst.Line{Quantity: decimal.RequireFromString(qty), UnitPrice: price, TaxRate: decimal.NewFromInt(rate)}
}

func TestIsInterState(t *testing.T) {
	assert.False(t, gst.IsInterState("36", "36"))
	assert.False(t, gst.IsInterState(" 36", "36 "))
	assert.True(t, gst.IsInterState("36", "27"))
	assert.True(t, gst.IsInterState("36", ""))
}

func TestComputeInvoiceTotals_IntraState(t *testing.T) {
	totals := gst.ComputeInvoiceTotals([]gst.Line{line("1", 100000, 18)}, "36", "36")

	require.Len(t, totals.Lines, 1)
	l := totals.Lines[0]
	assert.False(t, totals.InterState)
	assert.Equal(t, models.Money(100000), l.Taxable)
	assert.Equal(t, models.Money(9000), l.CGST)
	assert.Equal(t, models.Money(9000), l.SGST)
	assert.Equal(t, models.Money(0), l.IGST)
	assert.Equal(t, models.Money(118000), l.Total)
	assert.Equal(t, models.Money(118000), totals.GrandTotal)
}

func TestComputeInvoiceTotals_InterState(t *testing.T) {
	totals := gst.ComputeInvoiceTotals([]gst.Line{line("1", 100000, 18)}, "36", "27")

	l := totals.Lines[0]
	assert.True(t, totals.InterState)
	assert.Equal(t, models.Money(18000), l.IGST)
	assert.Zero(t, l.CGST)
	assert.Zero(t, l.SGST)
	assert.Equal(t, models.Money(118000), l.Total)
	assert.Equal(t, models.Money(18000), totals.IGST)
}

func TestComputeInvoiceTotals_RoundsPerLine(t *testing.T) {
	// 0.33 at 5% intra-state: half rate 2.5% of 0.33 = 0.00825 -> 0.01 each side.
	lines := []gst.Line{line("1", 33, 5), line("1", 33, 5), line("1", 33, 5)}
	totals := gst.ComputeInvoiceTotals(lines, "29", "29")

	for _, l := range totals.Lines {
		assert.Equal(t, models.Money(1), l.CGST)
		assert.Equal(t, models.Money(1), l.SGST)
	}
	assert.Equal(t, models.Money(99), totals.Subtotal)
	assert.Equal(t, models.Money(3), totals.CGST)
	assert.Equal(t, models.Money(6), totals.TaxTotal)
	assert.Equal(t, models.Money(105), totals.GrandTotal)

	// Tax on the aggregate subtotal would have been 0.99 * 2.5% = 0.02475 -> 0.02.
	onSum := gst.SplitTax(totals.Subtotal, decimal.NewFromInt(5), false)
	assert.Equal(t, models.Money(2), onSum.CGST)
}

func TestComputeInvoiceTotals_HalfUp(t *testing.T) {
	t.Run("taxable", func(t *testing.T) {
		// 2.5 * 0.15 = 0.375 -> 0.38
		totals := gst.ComputeInvoiceTotals([]gst.Line{line("2.5", 15, 0)}, "07", "07")
		assert.Equal(t, models.Money(38), totals.Lines[0].Taxable)
	})

	t.Run("tax", func(t *testing.T) {
		// 0.50 at 5% inter-state = 0.025 -> 0.03
		r := gst.SplitTax(50, decimal.NewFromInt(5), true)
		assert.Equal(t, models.Money(3), r.IGST)
	})
}

func TestComputeInvoiceTotals_Invariants(t *testing.T) {
	lines := []gst.Line{
		line("3", 33333, 18),
		line("1.5", 19999, 12),
		line("7", 101, 28),
		line("2", 4999, 5),
		line("1", 250000, 0),
	}
	for _, states := range [][2]string{{"36", "36"}, {"36", "27"}} {
		totals := gst.ComputeInvoiceTotals(lines, states[0], states[1])

		var sumLines, sumTaxable models.Money
		for _, l := range totals.Lines {
			sumLines += l.Total
			sumTaxable += l.Taxable
			assert.Equal(t, l.Taxable+l.Tax(), l.Total)
		}
		assert.Equal(t, totals.Subtotal+totals.TaxTotal, totals.GrandTotal)
		assert.Equal(t, sumTaxable, totals.Subtotal)
		assert.LessOrEqual(t, abs(sumLines-totals.GrandTotal), models.Money(len(lines)))
	}
}

func TestComputeInvoiceTotals_Deterministic(t *testing.T) {
	lines := []gst.Line{line("1.25", 8000, 12), line("4", 1999, 18)}
	assert.Equal(t, gst.ComputeInvoiceTotals(lines, "27", "36"), gst.ComputeInvoiceTotals(lines, "27", "36"))
}

func TestComputeTaxableTotals_Empty(t *testing.T) {
	totals := gst.ComputeTaxableTotals(nil, "36", "36")
	assert.Empty(t, totals.Lines)
	assert.Zero(t, totals.GrandTotal)
}

func abs(m models.Money) models.Money {
	if m < 0 {
		return -m
	}
	return m
}

func TestComputeInvoiceTotals_LargestDocument(t *testing.T) {
	lines := []gst.Line{line("1", models.MaxDocumentAmount, 28)}

	inter := gst.ComputeInvoiceTotals(lines, "36", "27")
	assert.Equal(t, models.MaxDocumentAmount, inter.Subtotal)
	assert.Equal(t, models.Money(280_000_000_000_000), inter.IGST)
	assert.Equal(t, models.Money(1_280_000_000_000_000), inter.GrandTotal)

	intra := gst.ComputeInvoiceTotals(lines, "36", "36")
	assert.Equal(t, models.Money(140_000_000_000_000), intra.CGST)
	assert.Equal(t, inter.GrandTotal, intra.GrandTotal)
}
