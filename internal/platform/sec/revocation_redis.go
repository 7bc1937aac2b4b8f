// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	stdctx "context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/stockroom/internal/platform/constants"
)

// RedisRevocationStore shares revocations between API instances.
//
// Keys are the SHA-256 of the token so raw credentials never sit in Redis.
// Each key carries a TTL equal to the token's remaining lifetime, which makes
// [RedisRevocationStore.Sweep] a no-op.
type RedisRevocationStore struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRedisRevocationStore creates a store on top of an existing client.
func NewRedisRevocationStore(client redis.Cmdable) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, now: time.Now}
}

// Revoke implements [RevocationStore].
func (store *RedisRevocationStore) Revoke(context stdctx.Context, token string, expiresAt time.Time) error {
	remaining := expiresAt.Sub(store.now())
	if remaining <= 0 {
		return nil
	}

	// Redis TTLs below a millisecond are rejected; round up.
	if remaining < time.Millisecond {
		remaining = time.Millisecond
	}

	if err := store.client.Set(context, revokedKey(token), expiresAt.Unix(), remaining).Err(); err != nil {
		return fmt.Errorf("sec: failed to store revocation: %w", err)
	}
	return nil
}

// Consume implements [RevocationStore] with SET NX, so exactly one instance
// wins the exchange of a given token.
func (store *RedisRevocationStore) Consume(context stdctx.Context, token string, expiresAt time.Time) (bool, error) {
	remaining := expiresAt.Sub(store.now())
	if remaining <= 0 {
		return false, nil
	}
	if remaining < time.Millisecond {
		remaining = time.Millisecond
	}

	stored, err := store.client.SetNX(context, revokedKey(token), expiresAt.Unix(), remaining).Result()
	if err != nil {
		return false, fmt.Errorf("sec: failed to consume token: %w", err)
	}
	return stored, nil
}

// IsRevoked implements [RevocationStore].
func (store *RedisRevocationStore) IsRevoked(context stdctx.Context, token string) (bool, error) {
	count, err := store.client.Exists(context, revokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("sec: failed to check revocation: %w", err)
	}
	return count > 0, nil
}

// Sweep implements [RevocationStore]. Redis expires keys on its own.
func (store *RedisRevocationStore) Sweep(_ stdctx.Context) error {
	return nil
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return constants.RedisPrefixRevoked + hex.EncodeToString(sum[:])
}
