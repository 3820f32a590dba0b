// Package billingtest provides an in-memory billing.Store for tests.
package billingtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

type seqKey struct {
	company int64
	series  billing.Series
}

type state struct {
	companies   map[int64]models.Company
	parties     map[int64]models.Party
	invoices    map[int64]models.Invoice
	creditNotes map[int64]models.CreditNote
	payments    []models.Payment
	expenses    map[int64]models.Expense
	sequences   map[seqKey]int64
	nextID      int64
}

func (s *state) clone() state {
	c := *s
	c.companies = cloneMap(s.companies)
	c.parties = cloneMap(s.parties)
	c.invoices = cloneMap(s.invoices)
	c.creditNotes = cloneMap(s.creditNotes)
	c.expenses = cloneMap(s.expenses)
	c.sequences = cloneMap(s.sequences)
	c.payments = append([]models.Payment(nil), s.payments...)
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Store is a billing.Store held in memory. Transactions are serialized and
// roll back completely on error.
type Store struct {
	mu sync.Mutex
	st state

	// FailInvoiceItems, when set, makes InsertInvoice fail after the header
	// has been written, as a broken item insert would.
	FailInvoiceItems error
	// FailCreditNoteItems does the same for InsertCreditNote.
	FailCreditNoteItems error
}

var (
	_ billing.Store = (*Store)(nil)
	_ billing.Tx    = (*tx)(nil)
)

func New() *Store {
	return &Store{st: state{
		companies:   map[int64]models.Company{},
		parties:     map[int64]models.Party{},
		invoices:    map[int64]models.Invoice{},
		creditNotes: map[int64]models.CreditNote{},
		expenses:    map[int64]models.Expense{},
		sequences:   map[seqKey]int64{},
	}}
}

func (s *Store) id() int64 {
	s.st.nextID++
	return s.st.nextID
}

// PutCompany inserts or replaces a company, assigning an ID when it has none.
func (s *Store) PutCompany(c models.Company) models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.st.companies[c.ID] = c
	return c
}

// PutParty inserts or replaces a party, assigning an ID when it has none.
func (s *Store) PutParty(p models.Party) models.Party {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.st.parties[p.ID] = p
	return p
}

// SetSequence primes a counter as though n documents had been issued.
func (s *Store) SetSequence(companyID int64, series billing.Series, n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.sequences[seqKey{companyID, series}] = n
}

// Counts returns how many invoice and credit note headers are stored,
// deleted ones included.
func (s *Store) Counts() (invoices, creditNotes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.invoices), len(s.st.creditNotes)
}

func (s *Store) GetCompany(_ context.Context, id int64) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.companies[id]
	if !ok {
		return models.Company{}, billing.ErrNoRecord
	}
	return c, nil
}

func (s *Store) GetParty(_ context.Context, companyID, id int64) (models.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.parties[id]
	if !ok || p.CompanyID != companyID {
		return models.Party{}, billing.ErrNoRecord
	}
	return p, nil
}

func (s *Store) GetInvoice(_ context.Context, id int64) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.st.invoices[id]
	if !ok || inv.IsDeleted {
		return models.Invoice{}, billing.ErrNoRecord
	}
	return copyInvoice(inv), nil
}

func (s *Store) ListInvoices(_ context.Context, f billing.InvoiceFilter) ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Invoice{}
	for _, inv := range s.st.invoices {
		if f.Match(inv) {
			out = append(out, copyInvoice(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) TransitionInvoice(_ context.Context, id int64, from []models.InvoiceStatus, to models.InvoiceStatus, reason *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.st.invoices[id]
	if !ok || inv.IsDeleted || !contains(from, inv.Status) {
		return false, nil
	}
	inv.Status = to
	if reason != nil {
		r := *reason
		inv.CancelReason = &r
	}
	inv.UpdatedAt = time.Now()
	s.st.invoices[id] = inv
	return true, nil
}

func (s *Store) SoftDeleteInvoice(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.st.invoices[id]
	if !ok || inv.IsDeleted || inv.Status != models.StatusDraft {
		return false, nil
	}
	inv.IsDeleted = true
	s.st.invoices[id] = inv
	return true, nil
}

func (s *Store) GetCreditNote(_ context.Context, id int64) (models.CreditNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cn, ok := s.st.creditNotes[id]
	if !ok {
		return models.CreditNote{}, billing.ErrNoRecord
	}
	cn.Items = append([]models.CreditNoteItem(nil), cn.Items...)
	return cn, nil
}

func (s *Store) ListCreditNotes(_ context.Context, f billing.CreditNoteFilter) ([]models.CreditNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.CreditNote{}
	for _, cn := range s.st.creditNotes {
		if f.Match(cn) {
			cn.Items = append([]models.CreditNoteItem(nil), cn.Items...)
			out = append(out, cn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListPayments(_ context.Context, companyID int64, invoiceID *int64) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Payment{}
	for _, p := range s.st.payments {
		if p.CompanyID != companyID || (invoiceID != nil && p.InvoiceID != *invoiceID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) InsertExpense(_ context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	s.st.expenses[e.ID] = *e
	return nil
}

func (s *Store) SoftDeleteExpense(_ context.Context, companyID, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.st.expenses[id]
	if !ok || e.CompanyID != companyID || e.IsDeleted {
		return false, nil
	}
	e.IsDeleted = true
	s.st.expenses[id] = e
	return true, nil
}

func (s *Store) ListExpenses(_ context.Context, f billing.ExpenseFilter) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Expense{}
	for _, e := range s.st.expenses {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InTx holds the store lock for the whole of fn and restores the prior
// state if fn fails or panics.
func (s *Store) InTx(ctx context.Context, fn func(billing.Tx) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = saved
			panic(p)
		}
		if err != nil {
			s.st = saved
		}
	}()
	return fn(&tx{s: s})
}

// tx runs with Store.mu already held.
type tx struct {
	s *Store
}

func (t *tx) NextSequence(_ context.Context, companyID int64, series billing.Series) (int64, error) {
	if series != billing.SeriesInvoice && series != billing.SeriesCreditNote {
		return 0, fmt.Errorf("unknown series %q", series)
	}
	k := seqKey{companyID, series}
	t.s.st.sequences[k]++
	return t.s.st.sequences[k], nil
}

func (t *tx) InsertInvoice(_ context.Context, inv *models.Invoice) error {
	st := &t.s.st
	inv.ID = t.s.id()
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	header := *inv
	header.Items = nil
	st.invoices[inv.ID] = header
	if t.s.FailInvoiceItems != nil {
		return t.s.FailInvoiceItems
	}
	for n := range inv.Items {
		inv.Items[n].ID = t.s.id()
		inv.Items[n].InvoiceID = inv.ID
	}
	header.Items = append([]models.LineItem(nil), inv.Items...)
	st.invoices[inv.ID] = header
	return nil
}

func (t *tx) InsertCreditNote(_ context.Context, cn *models.CreditNote) error {
	st := &t.s.st
	if _, ok := st.invoices[cn.InvoiceID]; !ok {
		return errors.New("credit note references unknown invoice")
	}
	cn.ID = t.s.id()
	cn.CreatedAt = time.Now()
	header := *cn
	header.Items = nil
	st.creditNotes[cn.ID] = header
	if t.s.FailCreditNoteItems != nil {
		return t.s.FailCreditNoteItems
	}
	for n := range cn.Items {
		cn.Items[n].ID = t.s.id()
		cn.Items[n].CreditNoteID = cn.ID
	}
	header.Items = append([]models.CreditNoteItem(nil), cn.Items...)
	st.creditNotes[cn.ID] = header
	return nil
}

func (t *tx) LockBalance(_ context.Context, invoiceID int64) (billing.Balance, error) {
	inv, ok := t.s.st.invoices[invoiceID]
	if !ok || inv.IsDeleted {
		return billing.Balance{}, billing.ErrNoRecord
	}
	bal := billing.Balance{Status: inv.Status, GrandTotal: inv.GrandTotal}
	for _, p := range t.s.st.payments {
		if p.InvoiceID == invoiceID {
			bal.Paid += p.Amount
		}
	}
	return bal, nil
}

func (t *tx) InsertPayment(_ context.Context, p *models.Payment) error {
	if _, ok := t.s.st.invoices[p.InvoiceID]; !ok {
		return errors.New("payment references unknown invoice")
	}
	p.ID = t.s.id()
	p.CreatedAt = time.Now()
	t.s.st.payments = append(t.s.st.payments, *p)
	return nil
}

func copyInvoice(inv models.Invoice) models.Invoice {
	inv.Items = append([]models.LineItem(nil), inv.Items...)
	return inv
}

func contains(set []models.InvoiceStatus, s models.InvoiceStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
