package redis

// Package redis provides Redis-based adapters for the jobdeck system.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobdeck/jobdeck/internal/ports"
)

// TokenStore is a Redis-based refresh token allowlist. Entries expire
// together with the tokens they describe, so the store never needs a
// separate sweeper.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewTokenStore creates a new Redis-based refresh token store.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: "refresh:",
		now:    time.Now,
	}
}

// NewTokenStoreWithPrefix creates a Redis token store with a custom key prefix.
func NewTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// Save records a refresh token until it expires.
func (s *TokenStore) Save(ctx context.Context, claims ports.TokenClaims) error {
	if claims.TokenID == "" {
		return errors.New("token ID cannot be empty")
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		// Token is already expired, don't save it
		return errors.New("token is expired")
	}

	key := s.prefix + claims.TokenID
	return s.client.Set(ctx, key, claims.UserID, ttl).Err()
}

// Exists reports whether the refresh token is still accepted.
func (s *TokenStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	key := s.prefix + tokenID
	if err := s.client.Get(ctx, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get: %w", err)
	}
	return true, nil
}

// Delete revokes a refresh token.
func (s *TokenStore) Delete(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return nil // Nothing to delete
	}

	key := s.prefix + tokenID
	return s.client.Del(ctx, key).Err()
}
