package ports

import (
	"context"
	"time"

	"github.com/jobdeck/jobdeck/internal/domain/model"
)

// This file contains the authentication ports consumed by the service
// layer. Concrete implementations live under internal/adapters.

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare reports whether the password matches the stored hash.
	Compare(hash, password string) bool
}

// TokenClaims is the validated content of an access or refresh token.
type TokenClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenIssuer mints and validates signed tokens.
type TokenIssuer interface {
	// IssuePair mints an access/refresh pair for the user. The returned
	// claims describe the refresh token so it can be allowlisted.
	IssuePair(userID string) (model.TokenPair, TokenClaims, error)
	IssueAccess(userID string) (string, error)
	ValidateAccess(token string) (TokenClaims, error)
	ValidateRefresh(token string) (TokenClaims, error)
}

// RefreshTokenStore tracks the refresh tokens that are still accepted.
// Tokens outside the store are rejected even when their signature is
// valid, which makes issued refresh tokens revocable.
type RefreshTokenStore interface {
	Save(ctx context.Context, claims TokenClaims) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Delete(ctx context.Context, tokenID string) error
}
