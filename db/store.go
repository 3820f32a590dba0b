package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satheeshds/gstbill/billing"
	"github.com/satheeshds/gstbill/models"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store implements billing.Store on Postgres.
type Store struct {
	pool *pgxpool.Pool
}

var (
	_ billing.Store = (*Store)(nil)
	_ billing.Tx    = (*txStore)(nil)
)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// InTx runs fn inside a transaction, committing only if fn succeeds.
func (s *Store) InTx(ctx context.Context, fn func(billing.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&txStore{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// txStore is the billing.Tx view of an open transaction.
type txStore struct {
	q querier
}

func (s *Store) GetCompany(ctx context.Context, id int64) (models.Company, error) {
	var c models.Company
	err := s.pool.QueryRow(ctx, `SELECT id, name, address, gstin, state_code, created_at, updated_at
		FROM companies WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.GSTIN, &c.StateCode, &c.CreatedAt, &c.UpdatedAt)
	return c, noRecord(err)
}

func (s *Store) GetParty(ctx context.Context, companyID, id int64) (models.Party, error) {
	var p models.Party
	err := s.pool.QueryRow(ctx, `SELECT id, company_id, name, type, address, gstin, state_code, created_at, updated_at
		FROM parties WHERE id = $1 AND company_id = $2`, id, companyID).
		Scan(&p.ID, &p.CompanyID, &p.Name, &p.Type, &p.Address, &p.GSTIN, &p.StateCode, &p.CreatedAt, &p.UpdatedAt)
	return p, noRecord(err)
}

// noRecord maps pgx.ErrNoRows to billing.ErrNoRecord.
func noRecord(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return billing.ErrNoRecord
	}
	return err
}

func statusStrings(set []models.InvoiceStatus) []string {
	out := make([]string, len(set))
	for n, s := range set {
		out[n] = string(s)
	}
	return out
}
