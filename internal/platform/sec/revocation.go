// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	stdctx "context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// # Revocation Registry

// RevocationStore remembers tokens that were invalidated before their expiry.
//
// Entries only need to live until the token would have expired anyway.
// A token present in the store is rejected regardless of its signature.
type RevocationStore interface {
	// Revoke records token as invalid until expiresAt.
	Revoke(context stdctx.Context, token string, expiresAt time.Time) error

	// Consume revokes token unless it is already revoked, as one atomic step.
	// It reports false when another caller got there first or the token has
	// expired; single-use tokens are exchanged only on true.
	Consume(context stdctx.Context, token string, expiresAt time.Time) (bool, error)

	// IsRevoked reports whether token was revoked and has not yet expired.
	IsRevoked(context stdctx.Context, token string) (bool, error)

	// Sweep drops entries whose token has expired.
	Sweep(context stdctx.Context) error
}

// MemoryRevocationStore keeps revoked tokens in process memory.
//
// Revocations are immediately visible to every request of this process but
// are NOT shared between instances. Use [RedisRevocationStore] when the API
// runs behind a load balancer.
type MemoryRevocationStore struct {
	entries *gocache.Cache
	now     func() time.Time
}

// NewMemoryRevocationStore creates an empty in-memory store. Expired entries
// are removed by [MemoryRevocationStore.Sweep], usually driven by a
// [RevocationSweeper].
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		entries: gocache.New(gocache.NoExpiration, 0),
		now:     time.Now,
	}
}

// Revoke implements [RevocationStore]. Tokens that already expired are not
// stored since verification rejects them anyway.
func (store *MemoryRevocationStore) Revoke(_ stdctx.Context, token string, expiresAt time.Time) error {
	remaining := expiresAt.Sub(store.now())
	if remaining <= 0 {
		return nil
	}
	store.entries.Set(token, expiresAt, remaining)
	return nil
}

// Consume implements [RevocationStore]. go-cache Add fails when a live entry
// exists, under the same lock as every other write.
func (store *MemoryRevocationStore) Consume(_ stdctx.Context, token string, expiresAt time.Time) (bool, error) {
	remaining := expiresAt.Sub(store.now())
	if remaining <= 0 {
		return false, nil
	}
	return store.entries.Add(token, expiresAt, remaining) == nil, nil
}

// IsRevoked implements [RevocationStore].
func (store *MemoryRevocationStore) IsRevoked(_ stdctx.Context, token string) (bool, error) {
	_, found := store.entries.Get(token)
	return found, nil
}

// Sweep implements [RevocationStore].
func (store *MemoryRevocationStore) Sweep(_ stdctx.Context) error {
	store.entries.DeleteExpired()
	return nil
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (store *MemoryRevocationStore) Len() int {
	return store.entries.ItemCount()
}
