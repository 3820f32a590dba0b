// Package billing is the document lifecycle engine: invoices, credit notes,
// payments, receivables aging and the statutory reports built from them.
//
// Every operation runs synchronously against a Store and returns either a
// result or a single *Error describing the violated precondition.
package billing

import (
	"context"
	"log/slog"
	"time"

	"github.com/satheeshds/gstbill/models"
)

// Service exposes the billing operations for any company. The caller's
// company is passed to each operation and checked against the documents it
// touches.
type Service struct {
	store Store
	now   func() time.Time
	loc   *time.Location
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone in which "today" is determined.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now, loc: time.UTC, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) today() models.Date {
	return models.NewDate(s.now().In(s.loc))
}

// authorize checks that a document of docCompany may be touched by the
// caller's company.
func authorize(op string, callerCompany, docCompany int64) error {
	if callerCompany != docCompany {
		return authorizationError(op, "document belongs to another company")
	}
	return nil
}

// loadInvoice fetches an invoice and checks ownership.
func (s *Service) loadInvoice(ctx context.Context, op string, companyID, id int64) (models.Invoice, error) {
	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return models.Invoice{}, lookupError(op, "invoice", err)
	}
	if inv.IsDeleted {
		return models.Invoice{}, notFoundError(op, "invoice not found")
	}
	if err := authorize(op, companyID, inv.CompanyID); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}
