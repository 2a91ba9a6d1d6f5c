package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgStore persists keys as rows of the kv_entries table (one jsonb value per
// key). The schema is managed by the goose migrations embedded in the
// migrations package.
type PgStore struct {
	db db
}

// NewPgStore constructs a PgStore backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPgStore(db db) *PgStore {
	return &PgStore{db: db}
}

// Get reads the jsonb value under key into dest.
func (s *PgStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	const q = `SELECT value FROM kv_entries WHERE key = @key`

	var raw []byte
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("kv.PgStore.Get %q: %w", key, translatePg(err))
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("kv.PgStore.Get %q: %w: %v", key, ErrCorrupt, err)
	}
	return true, nil
}

// Set upserts value as jsonb under key.
func (s *PgStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv.PgStore.Set %q: marshal: %w", key, err)
	}

	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (@key, @value, now())
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = now()`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": raw}); err != nil {
		return fmt.Errorf("kv.PgStore.Set %q: %w", key, translatePg(err))
	}
	return nil
}

// Delete removes the row for key. Absent keys are not an error.
func (s *PgStore) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_entries WHERE key = @key`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("kv.PgStore.Delete %q: %w", key, translatePg(err))
	}
	return nil
}

// Probe writes and deletes a sentinel row to verify the table is reachable
// and writable.
func (s *PgStore) Probe(ctx context.Context) error {
	if err := s.Set(ctx, probeKey, "ok"); err != nil {
		return fmt.Errorf("kv.PgStore.Probe: %w", err)
	}
	if err := s.Delete(ctx, probeKey); err != nil {
		return fmt.Errorf("kv.PgStore.Probe: %w", err)
	}
	return nil
}

// translatePg maps Postgres failures onto the store error taxonomy.
// SQLSTATE 53100 is disk_full; the whole 08 class covers connection
// exceptions. Plain network errors also count as the store being unavailable.
func translatePg(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "53100":
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		case strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// compile-time check: PgStore must satisfy Store.
var _ Store = (*PgStore)(nil)
