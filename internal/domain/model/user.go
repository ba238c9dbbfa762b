package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/jobdeck/jobdeck/internal/errors"
)

const (
	maxUsernameLen = 150
	minPasswordLen = 8
)

// User represents an account that can authenticate against the API.
// PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"                   db:"id"`
	Username     string    `json:"username"             db:"username"`
	Email        string    `json:"email"                db:"email"`
	PasswordHash string    `json:"-"                    db:"password_hash"`
	FirstName    string    `json:"first_name,omitempty" db:"first_name"`
	LastName     string    `json:"last_name,omitempty"  db:"last_name"`
	IsActive     bool      `json:"is_active"            db:"is_active"`
	CreatedAt    time.Time `json:"created_at"           db:"created_at"`
}

// RegisterRequest represents parameters to create a User.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Validate checks registration input before any persistence happens.
func (r *RegisterRequest) Validate() error {
	username := strings.TrimSpace(r.Username)
	if username == "" {
		return apperrors.ValidationField("username", "username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return apperrors.ValidationField("username", "username cannot exceed 150 characters")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ValidationField("email", "email is not a valid address")
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLen {
		return apperrors.ValidationField("password", "password must be at least 8 characters")
	}
	return nil
}

// LoginRequest represents login credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the access/refresh token pair issued on register and
// login. Field names match the wire format.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
