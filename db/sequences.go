package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/satheeshds/gstbill/billing"
)

// lastNumberQueries find the most recent document of a series, used to seed
// a counter for companies that issued documents before counters existed.
var lastNumberQueries = map[billing.Series]string{
	billing.SeriesInvoice:    `SELECT invoice_number FROM invoices WHERE company_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
	billing.SeriesCreditNote: `SELECT credit_note_number FROM credit_notes WHERE company_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
}

// NextSequence increments the (company, series) counter. The UPDATE takes a
// row lock held until the surrounding transaction ends, so concurrent
// callers are serialized and a rollback returns the number to the pool.
func (t *txStore) NextSequence(ctx context.Context, companyID int64, series billing.Series) (int64, error) {
	lastQuery, ok := lastNumberQueries[series]
	if !ok {
		return 0, fmt.Errorf("unknown series %q", series)
	}

	var next int64
	err := t.q.QueryRow(ctx, `UPDATE document_sequences SET last_value = last_value + 1
		WHERE company_id = $1 AND series = $2 RETURNING last_value`, companyID, string(series)).Scan(&next)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("incrementing %s sequence: %w", series, err)
	}

	var last string
	if err := t.q.QueryRow(ctx, lastQuery, companyID).Scan(&last); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("reading last %s number: %w", series, err)
	}
	seed, _ := billing.ParseSequence(last)

	// Two first-time callers may race here; ON CONFLICT makes the loser
	// increment the winner's row instead.
	err = t.q.QueryRow(ctx, `INSERT INTO document_sequences (company_id, series, last_value) VALUES ($1, $2, $3)
		ON CONFLICT (company_id, series) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`, companyID, string(series), seed+1).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("seeding %s sequence: %w", series, err)
	}
	return next, nil
}
