// Package localstore implements the client-only authentication backend. All
// account and session state lives in an embedded BadgerDB under two keys:
// the serialized account collection and the current-session username. No
// server is involved.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/sahjnr/authd/pkg/auth"
	"github.com/sahjnr/authd/pkg/domain"
)

const (
	accountsKey = "auth:accounts"
	sessionKey  = "auth:current_user"
)

// record is the persisted form of an account. Keys of the accounts map are
// lower-cased usernames; the record keeps the username as entered.
type record struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store is the local-only Authenticator backed by BadgerDB.
type Store struct {
	db *badger.DB
}

var _ auth.Authenticator = (*Store)(nil)

// Open opens (or creates) the local store in the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Signup creates an account. Username and email are trimmed, the email is
// lower-cased, and uniqueness of both is checked case-insensitively before
// anything is written.
func (s *Store) Signup(ctx context.Context, username, email, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	var created record
	err = s.db.Update(func(txn *badger.Txn) error {
		accounts, err := loadAccounts(txn)
		if err != nil {
			return err
		}

		if _, ok := accounts[strings.ToLower(username)]; ok {
			return domain.ErrDuplicateUsername
		}
		for _, rec := range accounts {
			if rec.Email == email {
				return domain.ErrDuplicateEmail
			}
		}

		created = record{
			ID:           nextID(accounts),
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		accounts[strings.ToLower(username)] = created

		return saveAccounts(txn, accounts)
	})
	if err != nil {
		return nil, err
	}

	return created.account(false), nil
}

// Login verifies credentials and overwrites the current-username pointer,
// replacing any prior session holder.
func (s *Store) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)

	var found record
	err := s.db.Update(func(txn *badger.Txn) error {
		accounts, err := loadAccounts(txn)
		if err != nil {
			return err
		}

		rec, ok := accounts[strings.ToLower(username)]
		if !ok || !auth.VerifyPassword(password, rec.PasswordHash) {
			return domain.ErrInvalidCredentials
		}

		found = rec
		return txn.Set([]byte(sessionKey), []byte(rec.Username))
	})
	if err != nil {
		return nil, err
	}

	return found.account(true), nil
}

// Profile returns the account referenced by the current-username pointer, or
// domain.ErrNoActiveSession when the pointer is absent or dangling.
func (s *Store) Profile(ctx context.Context) (*domain.Account, error) {
	var found record
	err := s.db.View(func(txn *badger.Txn) error {
		current, err := currentUsername(txn)
		if err != nil {
			return err
		}

		accounts, err := loadAccounts(txn)
		if err != nil {
			return err
		}

		rec, ok := accounts[strings.ToLower(current)]
		if !ok {
			return domain.ErrNoActiveSession
		}
		found = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found.account(true), nil
}

// Logout removes the current-username pointer. Idempotent.
func (s *Store) Logout(ctx context.Context) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(sessionKey))
	})
}

// DeleteAccount removes an account from the collection. If the account holds
// the session, the session pointer is removed with it.
func (s *Store) DeleteAccount(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)

	return s.db.Update(func(txn *badger.Txn) error {
		accounts, err := loadAccounts(txn)
		if err != nil {
			return err
		}

		key := strings.ToLower(username)
		rec, ok := accounts[key]
		if !ok {
			return domain.ErrAccountNotFound
		}
		delete(accounts, key)

		current, err := currentUsername(txn)
		if err != nil && !errors.Is(err, domain.ErrNoActiveSession) {
			return err
		}
		if err == nil && strings.EqualFold(current, rec.Username) {
			if err := txn.Delete([]byte(sessionKey)); err != nil {
				return err
			}
		}

		return saveAccounts(txn, accounts)
	})
}

func (r record) account(loggedIn bool) *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		LoggedIn:     loggedIn,
	}
}

func loadAccounts(txn *badger.Txn) (map[string]record, error) {
	item, err := txn.Get([]byte(accountsKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return map[string]record{}, nil
	}
	if err != nil {
		return nil, err
	}

	accounts := map[string]record{}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &accounts)
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func saveAccounts(txn *badger.Txn, accounts map[string]record) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return txn.Set([]byte(accountsKey), data)
}

func currentUsername(txn *badger.Txn) (string, error) {
	item, err := txn.Get([]byte(sessionKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", domain.ErrNoActiveSession
	}
	if err != nil {
		return "", err
	}

	var username string
	err = item.Value(func(val []byte) error {
		username = string(val)
		return nil
	})
	return username, err
}

// nextID assigns monotonically increasing IDs within the collection.
func nextID(accounts map[string]record) int64 {
	var max int64
	for _, rec := range accounts {
		if rec.ID > max {
			max = rec.ID
		}
	}
	return max + 1
}
