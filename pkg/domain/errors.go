package domain

import "errors"

// Account errors
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrInvalidInput      = errors.New("username, email and password are required")
)

// Session errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoActiveSession    = errors.New("no active session")
)
