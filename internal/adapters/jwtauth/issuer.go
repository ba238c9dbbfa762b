// Package jwtauth provides an HMAC-signed JWT implementation of the
// token issuer port.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jobdeck/jobdeck/config"
	"github.com/jobdeck/jobdeck/internal/domain/model"
	"github.com/jobdeck/jobdeck/internal/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned for any token that fails validation.
// Callers get no detail about which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Issuer mints and validates HS256-signed JWTs.
type Issuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// IssuerOptions holds the dependencies for creating an Issuer.
type IssuerOptions struct {
	Config config.AuthConfig

	// Now overrides the clock (useful for tests).
	Now func() time.Time
}

// NewIssuer creates a new Issuer from auth configuration.
func NewIssuer(opts IssuerOptions) (*Issuer, error) {
	if opts.Config.JWTSecret == "" {
		return nil, errors.New("JWT secret is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		secret:     []byte(opts.Config.JWTSecret),
		issuer:     opts.Config.Issuer,
		accessTTL:  opts.Config.AccessTTL,
		refreshTTL: opts.Config.RefreshTTL,
		now:        now,
	}, nil
}

type tokenClaims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func (i *Issuer) mint(userID, tokenType string, ttl time.Duration) (string, ports.TokenClaims, error) {
	issuedAt := i.now().UTC()
	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", ports.TokenClaims{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, ports.TokenClaims{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// IssuePair mints an access/refresh pair and returns the refresh
// token's claims for allowlisting.
func (i *Issuer) IssuePair(userID string) (model.TokenPair, ports.TokenClaims, error) {
	access, _, err := i.mint(userID, tokenTypeAccess, i.accessTTL)
	if err != nil {
		return model.TokenPair{}, ports.TokenClaims{}, err
	}
	refresh, refreshClaims, err := i.mint(userID, tokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return model.TokenPair{}, ports.TokenClaims{}, err
	}
	return model.TokenPair{Access: access, Refresh: refresh}, refreshClaims, nil
}

// IssueAccess mints a standalone access token.
func (i *Issuer) IssueAccess(userID string) (string, error) {
	access, _, err := i.mint(userID, tokenTypeAccess, i.accessTTL)
	return access, err
}

// ValidateAccess validates an access token.
func (i *Issuer) ValidateAccess(token string) (ports.TokenClaims, error) {
	return i.validate(token, tokenTypeAccess)
}

// ValidateRefresh validates a refresh token.
func (i *Issuer) ValidateRefresh(token string) (ports.TokenClaims, error) {
	return i.validate(token, tokenTypeRefresh)
}

func (i *Issuer) validate(token, wantType string) (ports.TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return ports.TokenClaims{}, ErrInvalidToken
	}
	if claims.TokenType != wantType || claims.Subject == "" {
		return ports.TokenClaims{}, ErrInvalidToken
	}
	return ports.TokenClaims{
		UserID:    claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
