package domain

import "time"

// Account represents a registered account as persisted by a backend.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LoggedIn     bool
}

// AccountView is the sanitized representation returned to callers.
// It never carries the password hash.
type AccountView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	LoggedIn  bool      `json:"loggedIn"`
}

// View returns the sanitized representation of the account.
func (a *Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		LoggedIn:  a.LoggedIn,
	}
}
