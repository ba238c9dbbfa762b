package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jobdeck/jobdeck/internal/core"
	"github.com/jobdeck/jobdeck/internal/data"
	"github.com/jobdeck/jobdeck/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck/internal/errors"
	"github.com/jobdeck/jobdeck/internal/ports"
)

// Generic credential failures never say whether the username or the
// password was wrong.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgAccountDisabled    = "Account is disabled"
	msgInvalidRefresh     = "Invalid or expired refresh token"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users        core.UserRepository
	Hasher       ports.PasswordHasher
	Tokens       ports.TokenIssuer
	RefreshStore ports.RefreshTokenStore
	Logger       *slog.Logger
}

// AuthService handles registration, login, and token refresh.
type AuthService struct {
	users        core.UserRepository
	hasher       ports.PasswordHasher
	tokens       ports.TokenIssuer
	refreshStore ports.RefreshTokenStore
	logger       *slog.Logger

	// dummyHash is compared against when the user does not exist, so
	// absent-user and wrong-password logins do comparable work.
	dummyHash string
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dummyHash, err := opts.Hasher.Hash("jobdeck-login-placeholder")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:        opts.Users,
		hasher:       opts.Hasher,
		tokens:       opts.Tokens,
		refreshStore: opts.RefreshStore,
		logger:       logger,
		dummyHash:    dummyHash,
	}, nil
}

// Register creates a user account and issues its first token pair.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (model.TokenPair, error) {
	if req == nil {
		return model.TokenPair{}, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return model.TokenPair{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.TokenPair{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to hash password")
	}

	user := &model.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUsernameExists):
			return model.TokenPair{}, apperrors.Conflict("Username already exists")
		case errors.Is(err, data.ErrEmailExists):
			return model.TokenPair{}, apperrors.Conflict("Email already exists")
		}
		return model.TokenPair{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create user")
	}

	return s.issuePair(ctx, created.ID)
}

// Login verifies credentials and issues a token pair. Lookup and
// password check both run even when the user is absent, and both
// failure modes return the identical generic message.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (model.TokenPair, error) {
	if req == nil {
		return model.TokenPair{}, apperrors.Unauthorized(msgInvalidCredentials)
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			s.hasher.Compare(s.dummyHash, req.Password)
			return model.TokenPair{}, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return model.TokenPair{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to look up user")
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		return model.TokenPair{}, apperrors.Unauthorized(msgInvalidCredentials)
	}
	if !user.IsActive {
		return model.TokenPair{}, apperrors.Unauthorized(msgAccountDisabled)
	}

	return s.issuePair(ctx, user.ID)
}

// Refresh validates a refresh token and issues a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return "", apperrors.Validation(msgInvalidRefresh)
	}

	ok, err := s.refreshStore.Exists(ctx, claims.TokenID)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to check refresh token")
	}
	if !ok {
		return "", apperrors.Validation(msgInvalidRefresh)
	}

	access, err := s.tokens.IssueAccess(claims.UserID)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to issue access token")
	}
	return access, nil
}

// Authenticate resolves a bearer access token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.tokens.ValidateAccess(accessToken)
	if err != nil {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("Authentication required")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to look up user")
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	return user, nil
}

func (s *AuthService) issuePair(ctx context.Context, userID string) (model.TokenPair, error) {
	pair, refreshClaims, err := s.tokens.IssuePair(userID)
	if err != nil {
		return model.TokenPair{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to issue tokens")
	}
	if err := s.refreshStore.Save(ctx, refreshClaims); err != nil {
		return model.TokenPair{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to store refresh token")
	}
	return pair, nil
}
