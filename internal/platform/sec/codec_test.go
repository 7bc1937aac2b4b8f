// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/platform/sec"
)

var (
	testAccessSecret  = []byte("access-secret-for-tests-0123456789abcdef")
	testRefreshSecret = []byte("refresh-secret-for-tests-0123456789abcdef")
)

// testClock is a manually advanced clock aligned on whole seconds.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Now().Truncate(time.Second)}
}

func (clock *testClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *testClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(d)
}

func newTestCodec(t *testing.T, clock *testClock) *sec.Codec {
	t.Helper()

	codec, err := sec.NewCodec(sec.CodecConfig{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		Issuer:        "stockroom-test",
		Production:    true,
		Now:           clock.Now,
	})
	require.NoError(t, err)
	return codec
}

var adminPayload = sec.TokenPayload{SubjectID: 1, Email: "a@b.com", Role: sec.RoleAdmin}

/*
TestCodec_SignVerifyRoundTrip verifies a signed token yields the same subject.
*/
func TestCodec_SignVerifyRoundTrip(t *testing.T) {
	clock := newTestClock()
	codec := newTestCodec(t, clock)

	for _, purpose := range []sec.TokenPurpose{sec.PurposeAccess, sec.PurposeRefresh, sec.PurposeResetPassword} {
		t.Run(purpose.String(), func(t *testing.T) {
			signed, err := codec.Sign(adminPayload, purpose, 0)
			require.NoError(t, err)
			assert.Len(t, strings.Split(signed.Value, "."), 3)
			assert.Equal(t, purpose, signed.Purpose)

			verified, err := codec.Verify(signed.Value, purpose)
			require.NoError(t, err)
			assert.Equal(t, adminPayload, verified.Payload())
			assert.Equal(t, purpose, verified.Purpose())
			assert.NotEmpty(t, verified.TokenID())
			assert.WithinDuration(t, clock.Now(), verified.IssuedAt(), 0)
			assert.WithinDuration(t, signed.ExpiresAt, verified.ExpiresAt(), 0)
		})
	}
}

/*
TestCodec_DefaultLifetimes checks ACCESS lasts one hour and REFRESH seven days.
*/
func TestCodec_DefaultLifetimes(t *testing.T) {
	clock := newTestClock()
	codec := newTestCodec(t, clock)

	access, err := codec.Sign(adminPayload, sec.PurposeAccess, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, clock.Now().Add(time.Hour), access.ExpiresAt, 0)

	refresh, err := codec.Sign(adminPayload, sec.PurposeRefresh, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, clock.Now().Add(7*24*time.Hour), refresh.ExpiresAt, 0)

	custom, err := codec.Sign(adminPayload, sec.PurposeVerifyEmail, 15*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, clock.Now().Add(15*time.Minute), custom.ExpiresAt, 0)
}

/*
TestCodec_UniqueTokens ensures identical payloads signed in the same second differ.
*/
func TestCodec_UniqueTokens(t *testing.T) {
	codec := newTestCodec(t, newTestClock())

	first, err := codec.Sign(adminPayload, sec.PurposeAccess, 0)
	require.NoError(t, err)
	second, err := codec.Sign(adminPayload, sec.PurposeAccess, 0)
	require.NoError(t, err)

	assert.NotEqual(t, first.Value, second.Value)
}

/*
TestCodec_PurposeMismatch verifies a token never passes for another purpose.
*/
func TestCodec_PurposeMismatch(t *testing.T) {
	codec := newTestCodec(t, newTestClock())

	access, err := codec.Sign(adminPayload, sec.PurposeAccess, 0)
	require.NoError(t, err)
	refresh, err := codec.Sign(adminPayload, sec.PurposeRefresh, 0)
	require.NoError(t, err)

	_, err = codec.Verify(access.Value, sec.PurposeRefresh)
	assert.ErrorIs(t, err, sec.ErrInvalidTokenPurpose)

	_, err = codec.Verify(refresh.Value, sec.PurposeAccess)
	assert.ErrorIs(t, err, sec.ErrInvalidTokenPurpose)

	_, err = codec.Verify(access.Value, sec.PurposeImpersonation)
	assert.ErrorIs(t, err, sec.ErrInvalidTokenPurpose)

	_, err = codec.Verify(access.Value, sec.TokenPurpose("LOGIN"))
	assert.ErrorIs(t, err, sec.ErrInvalidTokenPurpose)
}

/*
TestCodec_Expiry checks the token is rejected from the exact second it expires.
*/
func TestCodec_Expiry(t *testing.T) {
	clock := newTestClock()
	codec := newTestCodec(t, clock)

	signed, err := codec.Sign(adminPayload, sec.PurposeAccess, time.Minute)
	require.NoError(t, err)

	// 1. One second before expiry
	clock.Advance(59 * time.Second)
	_, err = codec.Verify(signed.Value, sec.PurposeAccess)
	require.NoError(t, err)

	// 2. At expiry
	clock.Advance(time.Second)
	_, err = codec.Verify(signed.Value, sec.PurposeAccess)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestCodec_RejectsForgeries covers signatures the codec must never accept.
*/
func TestCodec_RejectsForgeries(t *testing.T) {
	clock := newTestClock()
	codec := newTestCodec(t, clock)

	claims := func(purpose sec.TokenPurpose) jwt.MapClaims {
		return jwt.MapClaims{
			"iss": "stockroom-test",
			"uid": 1,
			"eml": "a@b.com",
			"rol": "ADMIN",
			"pur": string(purpose),
			"iat": jwt.NewNumericDate(clock.Now()),
			"exp": jwt.NewNumericDate(clock.Now().Add(time.Hour)),
		}
	}

	t.Run("alg_none", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims(sec.PurposeAccess)).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Verify(forged, sec.PurposeAccess)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("unknown_secret", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims(sec.PurposeAccess)).
			SignedString([]byte("guessed"))
		require.NoError(t, err)

		_, err = codec.Verify(forged, sec.PurposeAccess)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("refresh_signed_with_access_secret", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims(sec.PurposeRefresh)).
			SignedString(testAccessSecret)
		require.NoError(t, err)

		_, err = codec.Verify(forged, sec.PurposeRefresh)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("hs512", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims(sec.PurposeAccess)).
			SignedString(testAccessSecret)
		require.NoError(t, err)

		_, err = codec.Verify(forged, sec.PurposeAccess)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		for _, token := range []string{"", "abc", "a.b.c", "only.two"} {
			_, err := codec.Verify(token, sec.PurposeAccess)
			assert.ErrorIs(t, err, sec.ErrInvalidToken, token)
		}
	})
}

/*
TestCodec_DecodeUnsafe verifies introspection works without a valid signature.
*/
func TestCodec_DecodeUnsafe(t *testing.T) {
	clock := newTestClock()
	codec := newTestCodec(t, clock)

	signed, err := codec.Sign(adminPayload, sec.PurposeRefresh, 0)
	require.NoError(t, err)
	other, err := codec.Sign(sec.TokenPayload{SubjectID: 9, Email: "x@y.com", Role: sec.RoleViewer}, sec.PurposeAccess, 0)
	require.NoError(t, err)

	// 1. Swap in another token's signature
	parts := strings.Split(signed.Value, ".")
	parts[2] = strings.Split(other.Value, ".")[2]
	tampered := strings.Join(parts, ".")

	// 2. Verification refuses it
	_, err = codec.Verify(tampered, sec.PurposeRefresh)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	// 3. Unsafe decode still reads the claims
	claims, err := codec.DecodeUnsafe(tampered)
	require.NoError(t, err)
	assert.Equal(t, adminPayload, claims.Payload())
	assert.Equal(t, sec.PurposeRefresh, claims.Purpose)
	assert.WithinDuration(t, signed.ExpiresAt, claims.ExpiresAt, 0)

	// 4. Garbage is rejected
	_, err = codec.DecodeUnsafe("not-a-token")
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestCodec_Secrets checks the ephemeral fallback and the production requirement.
*/
func TestCodec_Secrets(t *testing.T) {
	t.Run("ephemeral_outside_production", func(t *testing.T) {
		codec, err := sec.NewCodec(sec.CodecConfig{})
		require.NoError(t, err)
		assert.True(t, codec.Ephemeral())

		signed, err := codec.Sign(adminPayload, sec.PurposeRefresh, 0)
		require.NoError(t, err)
		_, err = codec.Verify(signed.Value, sec.PurposeRefresh)
		require.NoError(t, err)
	})

	t.Run("ephemeral_secrets_differ_per_process", func(t *testing.T) {
		first, err := sec.NewCodec(sec.CodecConfig{})
		require.NoError(t, err)
		second, err := sec.NewCodec(sec.CodecConfig{})
		require.NoError(t, err)

		signed, err := first.Sign(adminPayload, sec.PurposeAccess, 0)
		require.NoError(t, err)
		_, err = second.Verify(signed.Value, sec.PurposeAccess)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("production_requires_secret", func(t *testing.T) {
		codec, err := sec.NewCodec(sec.CodecConfig{AccessSecret: testAccessSecret, Production: true})
		require.NoError(t, err)
		assert.False(t, codec.Ephemeral())

		_, err = codec.Sign(adminPayload, sec.PurposeAccess, 0)
		require.NoError(t, err)

		_, err = codec.Sign(adminPayload, sec.PurposeRefresh, 0)
		assert.ErrorIs(t, err, sec.ErrTokenGeneration)
	})
}
