package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/jobdeck/internal/ports"
	"github.com/jobdeck/jobdeck/internal/testutil"
)

func TestTokenStore_SaveExistsDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewTokenStoreWithPrefix(client, "test-refresh:")
	ctx := context.Background()

	claims := ports.TokenClaims{
		UserID:    "user-1",
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, claims))

	ok, err := store.Exists(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "jti-unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "jti-1"))

	ok, err = store.Exists(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStore_Save_RejectsExpiredClaims(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client)
	claims := ports.TokenClaims{
		UserID:    "user-1",
		TokenID:   "jti-expired",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	assert.Error(t, store.Save(context.Background(), claims))
}

func TestTokenStore_Save_RequiresTokenID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client)
	claims := ports.TokenClaims{
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	assert.Error(t, store.Save(context.Background(), claims))
}

func TestTokenStore_EmptyTokenID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client)
	ctx := context.Background()

	ok, err := store.Exists(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Delete(ctx, ""))
}
