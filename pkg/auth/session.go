package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/sahjnr/authd/pkg/domain"
)

// SessionManager tracks which single account, if any, is authenticated.
// The session is global: a successful login replaces any prior holder.
type SessionManager struct {
	store AccountStore
}

// NewSessionManager creates a new session manager.
func NewSessionManager(store AccountStore) *SessionManager {
	return &SessionManager{store: store}
}

// Login verifies credentials and makes the account the sole session holder.
// A wrong password or unknown username fails with domain.ErrInvalidCredentials
// and leaves any existing session untouched.
func (m *SessionManager) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := m.store.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if err := m.store.SetCurrentSession(ctx, account.ID); err != nil {
		return nil, err
	}

	account.LoggedIn = true
	return account, nil
}

// Logout clears the global session. Logging out with no active session is
// not an error.
func (m *SessionManager) Logout(ctx context.Context) error {
	return m.store.ClearCurrentSession(ctx)
}

// Current returns the account holding the global session, or
// domain.ErrNoActiveSession.
func (m *SessionManager) Current(ctx context.Context) (*domain.Account, error) {
	return m.store.GetCurrentSession(ctx)
}
