// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, token management and the
// role model.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing,
// revocation) from the domain logic. Domain services only talk to
// [TokenService]; the HTTP layer only sees [Identity] values built from a
// [VerifiedPayload].
package sec

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ephemeralSecretSize is the length of the random secrets generated outside
// production.
const ephemeralSecretSize = 32

// CodecConfig carries the signing material for a [Codec].
type CodecConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Issuer        string

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Production disables the ephemeral secret fallback. A missing secret
	// then surfaces as [ErrTokenGeneration] when signing.
	Production bool

	// Now overrides the clock. Nil means [time.Now].
	Now func() time.Time
}

// SignedToken is a freshly minted token string and its metadata.
type SignedToken struct {
	Value     string       `json:"token"`
	Purpose   TokenPurpose `json:"purpose"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Codec signs and verifies HS256 tokens.
//
// Two secret slots exist: REFRESH tokens are signed with the refresh secret,
// every other purpose with the access secret.
type Codec struct {
	secrets    [2][]byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	ephemeral  bool
	now        func() time.Time
}

// NewCodec creates a new Codec. Outside production, empty secrets are
// replaced by random ones, which means tokens do not survive a restart.
func NewCodec(cfg CodecConfig) (*Codec, error) {
	codec := &Codec{
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        cfg.Now,
	}

	if codec.accessTTL <= 0 {
		codec.accessTTL = DefaultAccessTokenTTL
	}
	if codec.refreshTTL <= 0 {
		codec.refreshTTL = DefaultRefreshTokenTTL
	}
	if codec.now == nil {
		codec.now = time.Now
	}

	codec.secrets[slotAccess] = cfg.AccessSecret
	codec.secrets[slotRefresh] = cfg.RefreshSecret

	if cfg.Production {
		return codec, nil
	}

	for slot, secret := range codec.secrets {
		if len(secret) > 0 {
			continue
		}
		generated, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("sec: failed to generate ephemeral secret: %w", err)
		}
		codec.secrets[slot] = generated
		codec.ephemeral = true
	}

	return codec, nil
}

// Ephemeral reports whether at least one secret was generated at startup.
func (codec *Codec) Ephemeral() bool {
	return codec.ephemeral
}

// DefaultTTL returns the lifetime used when a caller does not choose one.
func (codec *Codec) DefaultTTL(purpose TokenPurpose) time.Duration {
	if purpose == PurposeRefresh {
		return codec.refreshTTL
	}
	return codec.accessTTL
}

// # Signing

// Sign mints a token for payload. A non-positive ttl selects [Codec.DefaultTTL].
//
// Every token gets a random jti so identical payloads signed within the same
// second still produce distinct strings.
func (codec *Codec) Sign(payload TokenPayload, purpose TokenPurpose, ttl time.Duration) (SignedToken, error) {
	if !purpose.Valid() {
		return SignedToken{}, ErrInvalidTokenPurpose
	}

	secret := codec.secrets[purpose.slot()]
	if len(secret) == 0 {
		return SignedToken{}, fmt.Errorf("%w: no secret configured for %s tokens", ErrTokenGeneration, purpose)
	}

	if ttl <= 0 {
		ttl = codec.DefaultTTL(purpose)
	}

	currentTime := codec.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(payload.SubjectID, 10),
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(ttl)),
		},
		SubjectID: payload.SubjectID,
		Email:     payload.Email,
		Role:      payload.Role,
		Purpose:   purpose,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return SignedToken{}, fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}

	return SignedToken{Value: signed, Purpose: purpose, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// # Verification

// Verify checks token and returns its claims once they can be trusted.
//
// The purpose is peeked from the unverified body first so a token presented
// for the wrong purpose is rejected without any HMAC work. The signature is
// then checked with the expected purpose's secret and the purpose is compared
// again on the verified claims.
func (codec *Codec) Verify(token string, expected TokenPurpose) (VerifiedPayload, error) {
	if !expected.Valid() {
		return VerifiedPayload{}, ErrInvalidTokenPurpose
	}

	peek, err := codec.DecodeUnsafe(token)
	if err != nil {
		return VerifiedPayload{}, err
	}
	if peek.Purpose != expected {
		return VerifiedPayload{}, ErrInvalidTokenPurpose
	}

	secret := codec.secrets[expected.slot()]
	if len(secret) == 0 {
		return VerifiedPayload{}, fmt.Errorf("%w: no secret configured for %s tokens", ErrTokenVerification, expected)
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(codec.now),
	}
	if codec.issuer != "" {
		options = append(options, jwt.WithIssuer(codec.issuer))
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, options...)
	if err != nil {
		return VerifiedPayload{}, classifyParseError(err)
	}
	if !parsed.Valid {
		return VerifiedPayload{}, ErrInvalidToken
	}

	if claims.Purpose != expected {
		return VerifiedPayload{}, ErrInvalidTokenPurpose
	}

	return VerifiedPayload{claims: claims}, nil
}

// DecodeUnsafe reads the claims WITHOUT verifying the signature.
//
// The result is for introspection only (expiry, revocation bookkeeping) and
// must never be used to grant access.
func (codec *Codec) DecodeUnsafe(token string) (UnverifiedClaims, error) {
	if token == "" {
		return UnverifiedClaims{}, ErrInvalidToken
	}

	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return UnverifiedClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return unverifiedFrom(&claims), nil
}

// classifyParseError folds jwt errors into the package taxonomy.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidClaims),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenVerification, err)
	}
}

func randomSecret() ([]byte, error) {
	secret := make([]byte, ephemeralSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}
