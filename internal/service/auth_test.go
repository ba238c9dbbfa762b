package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/jobdeck/internal/data"
	"github.com/jobdeck/jobdeck/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck/internal/errors"
	"github.com/jobdeck/jobdeck/internal/mocks"
	"github.com/jobdeck/jobdeck/internal/ports"
)

type authMocks struct {
	users  *mocks.MockUserRepository
	hasher *mocks.MockPasswordHasher
	tokens *mocks.MockTokenIssuer
	store  *mocks.MockRefreshTokenStore
}

// newAuthService builds an AuthService on mocks. The constructor hashes
// a placeholder once, which every test must account for.
func newAuthService(t *testing.T) (authMocks, *AuthService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := authMocks{
		users:  mocks.NewMockUserRepository(ctrl),
		hasher: mocks.NewMockPasswordHasher(ctrl),
		tokens: mocks.NewMockTokenIssuer(ctrl),
		store:  mocks.NewMockRefreshTokenStore(ctrl),
	}
	m.hasher.EXPECT().Hash(gomock.Any()).Return("dummy-hash", nil).Times(1)

	svc, err := NewAuthService(AuthServiceOptions{
		Users:        m.users,
		Hasher:       m.hasher,
		Tokens:       m.tokens,
		RefreshStore: m.store,
	})
	require.NoError(t, err)
	return m, svc
}

func validRegisterRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "correct-horse",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	m.hasher.EXPECT().Hash("correct-horse").Return("hashed", nil).Times(1)
	m.users.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user *model.User) (*model.User, error) {
			assert.Equal(t, "jdoe", user.Username)
			assert.Equal(t, "hashed", user.PasswordHash)
			assert.True(t, user.IsActive)
			created := *user
			created.ID = "user-1"
			return &created, nil
		}).
		Times(1)
	m.tokens.EXPECT().
		IssuePair("user-1").
		Return(model.TokenPair{Access: "a", Refresh: "r"}, ports.TokenClaims{TokenID: "jti-1"}, nil).
		Times(1)
	m.store.EXPECT().Save(ctx, ports.TokenClaims{TokenID: "jti-1"}).Return(nil).Times(1)

	pair, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, "a", pair.Access)
	assert.Equal(t, "r", pair.Refresh)
}

func TestAuthService_Register_UsernameConflict(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	m.hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil).Times(1)
	m.users.EXPECT().Create(ctx, gomock.Any()).Return(nil, data.ErrUsernameExists).Times(1)

	_, err := svc.Register(ctx, validRegisterRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "Username already exists", apperrors.GetMessage(err))
}

func TestAuthService_Register_EmailConflict(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	m.hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil).Times(1)
	m.users.EXPECT().Create(ctx, gomock.Any()).Return(nil, data.ErrEmailExists).Times(1)

	_, err := svc.Register(ctx, validRegisterRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "Email already exists", apperrors.GetMessage(err))
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	t.Parallel()
	_, svc := newAuthService(t)

	req := validRegisterRequest()
	req.Password = "short"

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	user := &model.User{ID: "user-1", Username: "jdoe", PasswordHash: "hashed", IsActive: true}
	m.users.EXPECT().GetByUsername(ctx, "jdoe").Return(user, nil).Times(1)
	m.hasher.EXPECT().Compare("hashed", "correct-horse").Return(true).Times(1)
	m.tokens.EXPECT().
		IssuePair("user-1").
		Return(model.TokenPair{Access: "a", Refresh: "r"}, ports.TokenClaims{TokenID: "jti-1"}, nil).
		Times(1)
	m.store.EXPECT().Save(ctx, gomock.Any()).Return(nil).Times(1)

	pair, err := svc.Login(ctx, &model.LoginRequest{Username: "jdoe", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "a", pair.Access)
}

func TestAuthService_Login_UnknownUserStillComparesPassword(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	m.users.EXPECT().GetByUsername(ctx, "ghost").Return(nil, data.ErrUserNotFound).Times(1)
	m.hasher.EXPECT().Compare("dummy-hash", "whatever").Return(false).Times(1)

	_, err := svc.Login(ctx, &model.LoginRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", apperrors.GetMessage(err))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	user := &model.User{ID: "user-1", Username: "jdoe", PasswordHash: "hashed", IsActive: true}
	m.users.EXPECT().GetByUsername(ctx, "jdoe").Return(user, nil).Times(1)
	m.hasher.EXPECT().Compare("hashed", "wrong").Return(false).Times(1)

	_, err := svc.Login(ctx, &model.LoginRequest{Username: "jdoe", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", apperrors.GetMessage(err))
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	user := &model.User{ID: "user-1", Username: "jdoe", PasswordHash: "hashed", IsActive: false}
	m.users.EXPECT().GetByUsername(ctx, "jdoe").Return(user, nil).Times(1)
	m.hasher.EXPECT().Compare("hashed", "correct-horse").Return(true).Times(1)

	_, err := svc.Login(ctx, &model.LoginRequest{Username: "jdoe", Password: "correct-horse"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Account is disabled", apperrors.GetMessage(err))
}

func TestAuthService_Refresh_Success(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	claims := ports.TokenClaims{UserID: "user-1", TokenID: "jti-1"}
	m.tokens.EXPECT().ValidateRefresh("refresh-token").Return(claims, nil).Times(1)
	m.store.EXPECT().Exists(ctx, "jti-1").Return(true, nil).Times(1)
	m.tokens.EXPECT().IssueAccess("user-1").Return("new-access", nil).Times(1)

	access, err := svc.Refresh(ctx, "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "new-access", access)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)

	m.tokens.EXPECT().
		ValidateRefresh("garbage").
		Return(ports.TokenClaims{}, errors.New("invalid token")).
		Times(1)

	_, err := svc.Refresh(context.Background(), "garbage")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Invalid or expired refresh token", apperrors.GetMessage(err))
}

func TestAuthService_Refresh_RevokedToken(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	claims := ports.TokenClaims{UserID: "user-1", TokenID: "jti-1"}
	m.tokens.EXPECT().ValidateRefresh("refresh-token").Return(claims, nil).Times(1)
	m.store.EXPECT().Exists(ctx, "jti-1").Return(false, nil).Times(1)

	_, err := svc.Refresh(ctx, "refresh-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Invalid or expired refresh token", apperrors.GetMessage(err))
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	user := &model.User{ID: "user-1", Username: "jdoe", IsActive: true}
	m.tokens.EXPECT().ValidateAccess("access-token").Return(ports.TokenClaims{UserID: "user-1"}, nil).Times(1)
	m.users.EXPECT().GetByID(ctx, "user-1").Return(user, nil).Times(1)

	got, err := svc.Authenticate(ctx, "access-token")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestAuthService_Authenticate_InactiveUser(t *testing.T) {
	t.Parallel()
	m, svc := newAuthService(t)
	ctx := context.Background()

	user := &model.User{ID: "user-1", IsActive: false}
	m.tokens.EXPECT().ValidateAccess("access-token").Return(ports.TokenClaims{UserID: "user-1"}, nil).Times(1)
	m.users.EXPECT().GetByID(ctx, "user-1").Return(user, nil).Times(1)

	_, err := svc.Authenticate(ctx, "access-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}
