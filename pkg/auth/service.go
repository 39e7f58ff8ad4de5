// Package auth implements account creation, credential verification and
// single-session tracking over a pluggable account store.
package auth

import (
	"context"

	"github.com/sahjnr/authd/pkg/domain"
)

// Authenticator is the operation contract shared by both backends: the
// storage-backed Service and the local-only localstore.Store.
type Authenticator interface {
	// Signup creates an account. Fails with domain.ErrInvalidInput,
	// domain.ErrDuplicateUsername or domain.ErrDuplicateEmail.
	Signup(ctx context.Context, username, email, password string) (*domain.Account, error)
	// Login authenticates and makes the account the sole session holder.
	// Fails with domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*domain.Account, error)
	// Profile returns the current session's account, or domain.ErrNoActiveSession.
	Profile(ctx context.Context) (*domain.Account, error)
	// Logout clears the global session; idempotent.
	Logout(ctx context.Context) error
	// DeleteAccount removes an account, clearing the session if that account
	// holds it. Fails with domain.ErrAccountNotFound.
	DeleteAccount(ctx context.Context, username string) error
}

// Service is the storage-backed Authenticator, composing the account
// directory and the session manager over one store.
type Service struct {
	directory *Directory
	sessions  *SessionManager
}

var _ Authenticator = (*Service)(nil)

// NewService creates a storage-backed auth service.
func NewService(store AccountStore) *Service {
	return &Service{
		directory: NewDirectory(store),
		sessions:  NewSessionManager(store),
	}
}

// Directory returns the underlying account directory.
func (s *Service) Directory() *Directory {
	return s.directory
}

// Signup creates a new account.
func (s *Service) Signup(ctx context.Context, username, email, password string) (*domain.Account, error) {
	return s.directory.Create(ctx, username, email, password)
}

// Login authenticates and replaces the global session.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	return s.sessions.Login(ctx, username, password)
}

// Profile returns the current session's account.
func (s *Service) Profile(ctx context.Context) (*domain.Account, error) {
	return s.sessions.Current(ctx)
}

// Logout clears the global session.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

// DeleteAccount removes an account. If the account holds the session it is
// logged out first, so no backend is left with a session pointing at a
// deleted account.
func (s *Service) DeleteAccount(ctx context.Context, username string) error {
	account, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if account.LoggedIn {
		if err := s.sessions.Logout(ctx); err != nil {
			return err
		}
	}
	return s.directory.Delete(ctx, username)
}
