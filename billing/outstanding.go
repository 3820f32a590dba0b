package billing

import (
	"context"
	"sort"

	"github.com/satheeshds/gstbill/models"
)

// Pending balances at or below PendingTolerance (one rupee) are rounding
// residue from line-level tax and are not reported as outstanding.
const PendingTolerance models.Money = 100

// Aging buckets, by days since invoice date.
const (
	Bucket0To30  = "0-30"
	Bucket31To60 = "31-60"
	BucketOver60 = "60+"
)

// Buckets lists the aging buckets in order.
var Buckets = []string{Bucket0To30, Bucket31To60, BucketOver60}

// BucketFor classifies an age in days.
func BucketFor(ageDays int) string {
	switch {
	case ageDays <= 30:
		return Bucket0To30
	case ageDays <= 60:
		return Bucket31To60
	default:
		return BucketOver60
	}
}

// AgingRow is one invoice with a balance still to be collected.
type AgingRow struct {
	InvoiceID    int64        `json:"invoice_id"`
	Number       string       `json:"invoice_number"`
	CustomerID   int64        `json:"customer_id"`
	CustomerName string       `json:"customer_name"`
	InvoiceDate  models.Date  `json:"invoice_date"`
	DueDate      models.Date  `json:"due_date"`
	GrandTotal   models.Money `json:"grand_total"`
	Paid         models.Money `json:"paid"`
	Pending      models.Money `json:"pending"`
	AgeDays      int          `json:"age_days"`
	Bucket       string       `json:"bucket"`
}

// ComputeOutstanding lists finalized invoices whose pending balance exceeds
// PendingTolerance, ordered by due date. Age is measured from the invoice
// date, not the due date.
func (s *Service) ComputeOutstanding(ctx context.Context, companyID int64) ([]AgingRow, error) {
	const op = "ComputeOutstanding"
	invoices, err := s.store.ListInvoices(ctx, InvoiceFilter{
		CompanyID: companyID,
		Statuses:  []models.InvoiceStatus{models.StatusFinalized},
	})
	if err != nil {
		return nil, persistenceError(op, err)
	}
	payments, err := s.store.ListPayments(ctx, companyID, nil)
	if err != nil {
		return nil, persistenceError(op, err)
	}

	paid := make(map[int64]models.Money, len(invoices))
	for _, p := range payments {
		paid[p.InvoiceID] += p.Amount
	}

	today := s.today()
	rows := []AgingRow{}
	for _, inv := range invoices {
		pending := inv.GrandTotal - paid[inv.ID]
		if pending <= PendingTolerance {
			continue
		}
		age := inv.InvoiceDate.DaysUntil(today)
		if age < 0 {
			age = 0
		}
		rows = append(rows, AgingRow{
			InvoiceID:    inv.ID,
			Number:       inv.Number,
			CustomerID:   inv.CustomerID,
			CustomerName: inv.CustomerSnapshot.Name,
			InvoiceDate:  inv.InvoiceDate,
			DueDate:      inv.DueDate,
			GrandTotal:   inv.GrandTotal,
			Paid:         paid[inv.ID],
			Pending:      pending,
			AgeDays:      age,
			Bucket:       BucketFor(age),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].DueDate.Equal(rows[j].DueDate.Time) {
			return rows[i].DueDate.Before(rows[j].DueDate.Time)
		}
		return rows[i].Number < rows[j].Number
	})
	return rows, nil
}

// AgingSummary totals pending balances per bucket.
type AgingSummary struct {
	Buckets map[string]models.Money `json:"buckets"`
	Total   models.Money            `json:"total"`
}

func SummarizeAging(rows []AgingRow) AgingSummary {
	sum := AgingSummary{Buckets: make(map[string]models.Money, len(Buckets))}
	for _, b := range Buckets {
		sum.Buckets[b] = 0
	}
	for _, r := range rows {
		sum.Buckets[r.Bucket] += r.Pending
		sum.Total += r.Pending
	}
	return sum
}
