package auth

import (
	"context"

	"github.com/sahjnr/authd/pkg/domain"
)

// AccountStore is the persistence interface required by the directory and
// session manager. repository.AccountsRepository implements it for Postgres.
type AccountStore interface {
	// Create inserts a new account and assigns its ID.
	Create(ctx context.Context, account *domain.Account) error
	// GetByUsername loads an account by username (case-insensitive).
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	// ExistsByUsername reports whether a username is taken (case-insensitive).
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// ExistsByEmail reports whether an email is taken (case-insensitive).
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Delete removes an account by username.
	Delete(ctx context.Context, username string) error

	// SetCurrentSession atomically clears any existing session and marks the
	// given account as the sole logged-in one.
	SetCurrentSession(ctx context.Context, accountID int64) error
	// ClearCurrentSession clears the global session. Not an error if none exists.
	ClearCurrentSession(ctx context.Context) error
	// GetCurrentSession returns the account holding the global session, or
	// domain.ErrNoActiveSession.
	GetCurrentSession(ctx context.Context) (*domain.Account, error)
}
