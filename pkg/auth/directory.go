package auth

import (
	"context"
	"strings"
	"time"

	"github.com/sahjnr/authd/pkg/domain"
)

// Directory creates and looks up accounts and enforces uniqueness.
type Directory struct {
	store AccountStore
}

// NewDirectory creates a new account directory.
func NewDirectory(store AccountStore) *Directory {
	return &Directory{store: store}
}

// Create registers a new account. Username and email are trimmed and the
// email is lower-cased before storage. Uniqueness is checked before any
// mutation; the store's own constraints back this up under concurrency.
func (d *Directory) Create(ctx context.Context, username, email, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := d.store.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateUsername
	}

	exists, err = d.store.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := d.store.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// FindByUsername looks up an account by username, case-insensitively.
func (d *Directory) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return d.store.GetByUsername(ctx, strings.TrimSpace(username))
}

// Delete removes an account by username. Returns domain.ErrAccountNotFound
// if no such account exists.
func (d *Directory) Delete(ctx context.Context, username string) error {
	return d.store.Delete(ctx, strings.TrimSpace(username))
}
