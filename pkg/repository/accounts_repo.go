package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sahjnr/authd/pkg/domain"
)

// Unique index names from migrations/00001_create_accounts.sql.
const (
	usernameConstraint = "accounts_username_key"
	emailConstraint    = "accounts_email_key"
)

// AccountsRepository handles account persistence.
type AccountsRepository struct {
	db *sql.DB
}

// NewAccountsRepository creates a new accounts repository.
func NewAccountsRepository(db *sql.DB) *AccountsRepository {
	return &AccountsRepository{db: db}
}

// Create inserts a new account and fills in its assigned ID.
func (r *AccountsRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (username, email, password_hash, created_at, logged_in)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		account.Username, account.Email, account.PasswordHash, account.CreatedAt,
	).Scan(&account.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

// GetByUsername retrieves an account by username, case-insensitively.
func (r *AccountsRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, logged_in
		FROM accounts
		WHERE LOWER(username) = LOWER($1)
	`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, username), domain.ErrAccountNotFound)
}

// ExistsByUsername checks whether a username is taken, case-insensitively.
func (r *AccountsRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(username) = LOWER($1))`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	return exists, err
}

// ExistsByEmail checks whether an email is taken, case-insensitively.
func (r *AccountsRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	return exists, err
}

// Delete removes an account by username.
func (r *AccountsRepository) Delete(ctx context.Context, username string) error {
	query := `DELETE FROM accounts WHERE LOWER(username) = LOWER($1)`
	result, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// Count returns the number of accounts.
func (r *AccountsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}

// SetCurrentSession clears any existing session and marks the given account
// as the sole logged-in one. Both writes run in a single transaction so
// concurrent logins cannot interleave the clear and set steps.
func (r *AccountsRepository) SetCurrentSession(ctx context.Context, accountID int64) error {
	return Tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE accounts SET logged_in = FALSE WHERE logged_in`); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `UPDATE accounts SET logged_in = TRUE WHERE id = $1`, accountID)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrAccountNotFound
		}
		return nil
	})
}

// ClearCurrentSession clears the global session. A no-op when no account is
// logged in.
func (r *AccountsRepository) ClearCurrentSession(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE accounts SET logged_in = FALSE WHERE logged_in`)
	return err
}

// GetCurrentSession returns the account currently marked logged-in.
func (r *AccountsRepository) GetCurrentSession(ctx context.Context) (*domain.Account, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, logged_in
		FROM accounts
		WHERE logged_in
		LIMIT 1
	`
	return r.scanAccount(r.db.QueryRowContext(ctx, query), domain.ErrNoActiveSession)
}

func (r *AccountsRepository) scanAccount(row *sql.Row, absent error) (*domain.Account, error) {
	account := &domain.Account{}
	err := row.Scan(
		&account.ID, &account.Username, &account.Email,
		&account.PasswordHash, &account.CreatedAt, &account.LoggedIn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, absent
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// mapUniqueViolation translates Postgres unique-violation errors (23505) into
// domain duplicate errors by constraint name. Backstop for the race between
// the directory's exists-check and the insert.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case usernameConstraint:
			return domain.ErrDuplicateUsername
		case emailConstraint:
			return domain.ErrDuplicateEmail
		}
	}
	return err
}
