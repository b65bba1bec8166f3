// Package user stores the accounts that may authenticate against the API.
package user

import (
	"strings"
	"time"

	"bookcatalog/internal/platform/apperr"
)

var (
	ErrNotFound   = apperr.New(apperr.ErrNotFound, "User not found")
	ErrEmailTaken = apperr.New(apperr.ErrConflict, "Email already registered")
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
