package billing_test

import (
	"sync"
	"testing"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) pay(t *testing.T, inv models.Invoice, amount models.Money) {
	t.Helper()
	_, err := f.svc.RecordPayment(f.ctx, f.company.ID, inv.ID, models.PaymentInput{Amount: amount, Date: date("2024-06-20"), Mode: "upi"})
	require.NoError(t, err)
}

func TestComputeOutstanding(t *testing.T) {
	f := newFixture(t)

	settled := f.finalizedInvoice(t, f.local, 100000, "2024-06-01", "2024-06-15")
	f.pay(t, settled, 118000)

	partial := f.finalizedInvoice(t, f.local, 100000, "2024-06-01", "2024-06-15")
	f.pay(t, partial, 30000)
	f.pay(t, partial, 20000)

	rows, err := f.svc.ComputeOutstanding(f.ctx, f.company.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, partial.ID, rows[0].InvoiceID)
	assert.Equal(t, models.Money(50000), rows[0].Paid)
	assert.Equal(t, models.Money(68000), rows[0].Pending)
	assert.Equal(t, 29, rows[0].AgeDays)
	assert.Equal(t, billing.Bucket0To30, rows[0].Bucket)
}

func TestComputeOutstanding_Tolerance(t *testing.T) {
	f := newFixture(t)
	inv := f.finalizedInvoice(t, f.local, 100000, "2024-06-01", "2024-06-15")

	f.pay(t, inv, 117900) // exactly one rupee left
	rows, err := f.svc.ComputeOutstanding(f.ctx, f.company.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestComputeOutstanding_OrderAndAge(t *testing.T) {
	f := newFixture(t)

	// Issued later but due sooner.
	late := f.finalizedInvoice(t, f.local, 10000, "2024-04-10", "2024-09-30")
	soon := f.finalizedInvoice(t, f.outside, 10000, "2024-05-20", "2024-06-05")
	old := f.finalizedInvoice(t, f.local, 10000, "2024-03-01", "2024-07-01")
	f.createInvoice(t, f.local, 10000, "2024-01-01", "2024-01-01") // draft, not receivable
	cancelled := f.finalizedInvoice(t, f.local, 10000, "2024-01-01", "2024-01-01")
	_, err := f.svc.CancelInvoice(f.ctx, f.company.ID, cancelled.ID, "wrong customer")
	require.NoError(t, err)

	rows, err := f.svc.ComputeOutstanding(f.ctx, f.company.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, soon.ID, rows[0].InvoiceID)
	assert.Equal(t, old.ID, rows[1].InvoiceID)
	assert.Equal(t, late.ID, rows[2].InvoiceID)

	assert.Equal(t, 41, rows[0].AgeDays)
	assert.Equal(t, billing.Bucket31To60, rows[0].Bucket)
	assert.Equal(t, 121, rows[1].AgeDays)
	assert.Equal(t, billing.BucketOver60, rows[1].Bucket)
	assert.Equal(t, 81, rows[2].AgeDays)

	sum := billing.SummarizeAging(rows)
	assert.Equal(t, models.Money(11800), sum.Buckets[billing.Bucket31To60])
	assert.Equal(t, models.Money(23600), sum.Buckets[billing.BucketOver60])
	assert.Zero(t, sum.Buckets[billing.Bucket0To30])
	assert.Equal(t, models.Money(35400), sum.Total)
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, billing.Bucket0To30, billing.BucketFor(0))
	assert.Equal(t, billing.Bucket0To30, billing.BucketFor(30))
	assert.Equal(t, billing.Bucket31To60, billing.BucketFor(31))
	assert.Equal(t, billing.Bucket31To60, billing.BucketFor(60))
	assert.Equal(t, billing.BucketOver60, billing.BucketFor(61))
}

func TestRecordPayment(t *testing.T) {
	f := newFixture(t)
	inv := f.finalizedInvoice(t, f.local, 100000, "2024-06-01", "2024-06-15")

	t.Run("over pending", func(t *testing.T) {
		_, err := f.svc.RecordPayment(f.ctx, f.company.ID, inv.ID, models.PaymentInput{Amount: 118001, Date: date("2024-06-20")})
		require.ErrorIs(t, err, billing.ErrValidation)
		assert.Equal(t, "invoice only has 1180.00 pending (requested 1180.01)", billing.Message(err))
	})

	t.Run("draft invoice", func(t *testing.T) {
		draft := f.createInvoice(t, f.local, 1000, "2024-06-01", "2024-06-01")
		_, err := f.svc.RecordPayment(f.ctx, f.company.ID, draft.ID, models.PaymentInput{Amount: 100, Date: date("2024-06-20")})
		assert.ErrorIs(t, err, billing.ErrState)
	})

	t.Run("defaults mode", func(t *testing.T) {
		p, err := f.svc.RecordPayment(f.ctx, f.company.ID, inv.ID, models.PaymentInput{Amount: 100, Date: date("2024-06-20")})
		require.NoError(t, err)
		assert.Equal(t, "bank_transfer", p.Mode)

		list, err := f.svc.ListPayments(f.ctx, f.company.ID, inv.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("other company", func(t *testing.T) {
		_, err := f.svc.RecordPayment(f.ctx, f.other.ID, inv.ID, models.PaymentInput{Amount: 100, Date: date("2024-06-20")})
		assert.ErrorIs(t, err, billing.ErrAuthorization)
	})
}

func TestRecordPayment_ConcurrentNeverExceedsGrandTotal(t *testing.T) {
	f := newFixture(t)
	inv := f.finalizedInvoice(t, f.local, 100000, "2024-06-01", "2024-06-15")

	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RecordPayment(f.ctx, f.company.ID, inv.ID, models.PaymentInput{Amount: 10000, Date: date("2024-06-20")})
			if err != nil {
				assert.ErrorIs(t, err, billing.ErrValidation)
				return
			}
			mu.Lock()
			accepted++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 11, accepted)
	list, err := f.svc.ListPayments(f.ctx, f.company.ID, inv.ID)
	require.NoError(t, err)
	var paid models.Money
	for _, p := range list {
		paid += p.Amount
	}
	assert.Equal(t, models.Money(110000), paid)
	assert.LessOrEqual(t, paid, inv.GrandTotal)
}

func TestRecordPayment_CancelledAfterRead(t *testing.T) {
	f := newFixture(t)
	inv := f.finalizedInvoice(t, f.local, 1000, "2024-06-01", "2024-06-01")
	_, err := f.svc.CancelInvoice(f.ctx, f.company.ID, inv.ID, "raised in error")
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(f.ctx, f.company.ID, inv.ID, models.PaymentInput{Amount: 100, Date: date("2024-06-20")})
	require.ErrorIs(t, err, billing.ErrState)
	assert.Equal(t, "Payments can only be recorded against finalized invoices (current status: cancelled)", billing.Message(err))
}
