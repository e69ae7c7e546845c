package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLStore reads accounts from the Postgres accounts table.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open connection.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

const selectAccount = `SELECT id, name, email, token FROM accounts WHERE id = $1`

// Get loads one account; a missing row wraps ErrNotFound.
func (s *SQLStore) Get(ctx context.Context, id string) (Account, error) {
	var a Account
	if err := s.db.GetContext(ctx, &a, selectAccount, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
		}
		return Account{}, fmt.Errorf("select account %q: %w", id, err)
	}
	return a, nil
}

const upsertAccount = `
INSERT INTO accounts (id, name, email, token)
VALUES (:id, :name, :email, :token)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name, email = EXCLUDED.email, token = EXCLUDED.token, updated_at = now()`

// Upsert inserts a or replaces the stored row with the same id.
func (s *SQLStore) Upsert(ctx context.Context, a Account) error {
	if _, err := s.db.NamedExecContext(ctx, upsertAccount, a); err != nil {
		return fmt.Errorf("upsert account %q: %w", a.ID, err)
	}
	return nil
}
