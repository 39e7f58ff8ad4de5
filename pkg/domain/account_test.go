package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAccountView_OmitsPasswordHash(t *testing.T) {
	account := &Account{
		ID:           7,
		Username:     "junior",
		Email:        "sahjnr@gmail.com",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Now(),
		LoggedIn:     true,
	}

	data, err := json.Marshal(account.View())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for key := range fields {
		if strings.Contains(strings.ToLower(key), "password") {
			t.Errorf("sanitized view contains password field %q", key)
		}
	}
	if strings.Contains(string(data), "$2a$10$secret") {
		t.Error("sanitized view leaks the password hash value")
	}

	for _, want := range []string{"id", "username", "email", "createdAt", "loggedIn"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("sanitized view missing field %q", want)
		}
	}
}
