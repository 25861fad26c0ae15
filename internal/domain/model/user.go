//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// User is an account row. Password accounts carry a bcrypt hash; OAuth
// accounts have a nil PasswordHash and a non-password provider.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	FullName     string    `json:"full_name"  db:"full_name"`
	AvatarURL    string    `json:"avatar_url" db:"avatar_url"`
	PasswordHash *string   `json:"-"          db:"password_hash"`
	Provider     string    `json:"provider"   db:"provider"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest represents a request to create a user row.
// Exactly one of PasswordHash (password signup) or a non-password Provider
// (OAuth upsert) is expected.
type CreateUserRequest struct {
	Email        string
	FullName     string
	AvatarURL    string
	PasswordHash *string
	Provider     string
}

// Normalize normalizes the CreateUserRequest fields.
func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.AvatarURL = strings.TrimSpace(r.AvatarURL)
	if r.Provider == "" {
		r.Provider = "password"
	}
}

// Validate validates the CreateUserRequest fields.
func (r *CreateUserRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email must be a valid address")
	}
	if len(r.Email) > 255 {
		return errors.New("email cannot exceed 255 characters")
	}
	if len(r.FullName) > 255 {
		return errors.New("full_name cannot exceed 255 characters")
	}
	return nil
}
