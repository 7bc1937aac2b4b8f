// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

// # Token Service

// TokenService is the only entry point domain code uses for tokens.
//
// It validates payloads once, consults the [RevocationStore] before any
// cryptographic work and delegates signing to the [Codec].
type TokenService struct {
	codec    *Codec
	store    RevocationStore
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// TokenPair is what a successful login or refresh rotation returns.
type TokenPair struct {
	Access  SignedToken `json:"access"`
	Refresh SignedToken `json:"refresh"`
}

// NewTokenService wires a codec and a revocation store together.
func NewTokenService(codec *Codec, store RevocationStore, logger *slog.Logger) *TokenService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("role", func(field validator.FieldLevel) bool {
		return UserRole(field.Field().String()).Valid()
	})

	return &TokenService{
		codec:    codec,
		store:    store,
		validate: validate,
		logger:   logger,
		now:      codec.now,
	}
}

// # Issuing

/*
GenerateToken validates payload and mints a token for purpose with the
purpose's default lifetime.

Returns:
  - SignedToken: The token string and its expiry
  - error: *ValidationError, ErrInvalidTokenPurpose or ErrTokenGeneration
*/
func (service *TokenService) GenerateToken(context stdctx.Context, payload TokenPayload, purpose TokenPurpose) (SignedToken, error) {
	return service.GenerateTokenWithTTL(context, payload, purpose, 0)
}

// GenerateTokenWithTTL is [TokenService.GenerateToken] with a caller chosen
// lifetime. A non-positive ttl selects the purpose default.
func (service *TokenService) GenerateTokenWithTTL(_ stdctx.Context, payload TokenPayload, purpose TokenPurpose, ttl time.Duration) (SignedToken, error) {
	if err := service.validate.Struct(payload); err != nil {
		return SignedToken{}, newValidationError(err)
	}
	if !purpose.Valid() {
		return SignedToken{}, ErrInvalidTokenPurpose
	}

	signed, err := service.codec.Sign(payload, purpose, ttl)
	if err != nil {
		service.logger.Error("token_generation_failed",
			slog.String("purpose", purpose.String()),
			slog.Any("error", err),
		)
		return SignedToken{}, err
	}
	return signed, nil
}

// IssuePair mints an ACCESS and a REFRESH token for the same subject.
func (service *TokenService) IssuePair(context stdctx.Context, payload TokenPayload) (TokenPair, error) {
	access, err := service.GenerateToken(context, payload, PurposeAccess)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := service.GenerateToken(context, payload, PurposeRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// # Verification

/*
VerifyToken checks token for purpose.

Description: Revocation is consulted first and pre-empts decoding entirely.
A revoked token is reported as revoked even when it would also fail
signature or expiry checks.

Returns:
  - VerifiedPayload: Trusted claims
  - error: ErrTokenRevoked, ErrTokenExpired, ErrInvalidToken,
    ErrInvalidTokenPurpose or ErrTokenVerification
*/
func (service *TokenService) VerifyToken(context stdctx.Context, token string, purpose TokenPurpose) (VerifiedPayload, error) {
	if token == "" {
		return VerifiedPayload{}, ErrInvalidToken
	}

	revoked, err := service.store.IsRevoked(context, token)
	if err != nil {
		service.logger.Error("revocation_lookup_failed", slog.Any("error", err))
		return VerifiedPayload{}, fmt.Errorf("%w: %w", ErrTokenVerification, err)
	}
	if revoked {
		return VerifiedPayload{}, ErrTokenRevoked
	}

	payload, err := service.codec.Verify(token, purpose)
	if err != nil {
		if errors.Is(err, ErrTokenVerification) {
			service.logger.Error("token_verification_failed", slog.Any("error", err))
		}
		return VerifiedPayload{}, err
	}

	return payload, nil
}

// # Refresh

/*
RefreshToken exchanges a REFRESH token for a new ACCESS token.

Description: The refresh token is single use. It is consumed in the
revocation store before anything is minted, so of several concurrent
exchanges exactly one succeeds and the others fail with ErrTokenRevoked.
Nothing is minted when verification fails.

Returns:
  - SignedToken: The new access token
  - error: Any error of [TokenService.VerifyToken] or ErrTokenGeneration
*/
func (service *TokenService) RefreshToken(context stdctx.Context, refreshToken string) (SignedToken, error) {
	verified, err := service.VerifyToken(context, refreshToken, PurposeRefresh)
	if err != nil {
		return SignedToken{}, err
	}

	if err := service.consume(context, refreshToken, verified); err != nil {
		return SignedToken{}, err
	}

	return service.GenerateToken(context, verified.Payload(), PurposeAccess)
}

// PayloadResolver maps a verified refresh token to the payload of the pair
// minted in exchange for it.
type PayloadResolver func(context stdctx.Context, verified VerifiedPayload) (TokenPayload, error)

// RotateRefreshToken is [TokenService.RefreshToken] that also returns a new
// refresh token, keeping the session alive past the original refresh expiry.
func (service *TokenService) RotateRefreshToken(context stdctx.Context, refreshToken string) (TokenPair, error) {
	return service.RotateRefreshTokenWith(context, refreshToken, nil)
}

// RotateRefreshTokenWith rotates like [TokenService.RotateRefreshToken] but
// lets resolve rebuild the payload, typically from the current user record.
// A resolver error aborts the exchange and the refresh token stays unused.
// A nil resolver reuses the verified payload.
func (service *TokenService) RotateRefreshTokenWith(context stdctx.Context, refreshToken string, resolve PayloadResolver) (TokenPair, error) {
	verified, err := service.VerifyToken(context, refreshToken, PurposeRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	payload := verified.Payload()
	if resolve != nil {
		if payload, err = resolve(context, verified); err != nil {
			return TokenPair{}, err
		}
	}

	if err := service.consume(context, refreshToken, verified); err != nil {
		return TokenPair{}, err
	}

	return service.IssuePair(context, payload)
}

// consume marks a refresh token as used. Only the caller that wins the
// store's atomic check may mint tokens for it.
func (service *TokenService) consume(context stdctx.Context, refreshToken string, verified VerifiedPayload) error {
	consumed, err := service.store.Consume(context, refreshToken, verified.ExpiresAt())
	if err != nil {
		service.logger.Error("refresh_token_revocation_failed",
			slog.Int64("subject_id", verified.SubjectID()),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %w", ErrTokenVerification, err)
	}

	if !consumed {
		service.logger.Warn("refresh_token_reused",
			slog.String("token_id", verified.TokenID()),
			slog.Int64("subject_id", verified.SubjectID()),
		)
		return ErrTokenRevoked
	}
	return nil
}

// # Revocation

// RevokeToken invalidates token until its natural expiry.
//
// Only the structure is checked: revoking does not require trusting the
// claims. Undecodable input fails with [ErrInvalidToken].
func (service *TokenService) RevokeToken(context stdctx.Context, token string) error {
	claims, err := service.codec.DecodeUnsafe(token)
	if err != nil {
		return err
	}
	if claims.ExpiresAt.IsZero() {
		return fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}

	if err := service.store.Revoke(context, token, claims.ExpiresAt); err != nil {
		service.logger.Error("token_revocation_failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrTokenVerification, err)
	}

	service.logger.Info("token_revoked",
		slog.String("token_id", claims.TokenID),
		slog.Int64("subject_id", claims.SubjectID),
		slog.String("purpose", claims.Purpose.String()),
	)
	return nil
}

// # Introspection

// IsTokenExpired reports whether token has expired. Anything that cannot be
// decoded counts as expired.
func (service *TokenService) IsTokenExpired(token string) bool {
	claims, err := service.codec.DecodeUnsafe(token)
	if err != nil || claims.ExpiresAt.IsZero() {
		return true
	}
	return !service.now().Before(claims.ExpiresAt)
}

// TokenTimeRemaining returns the whole seconds left before token expires,
// never negative. Undecodable input yields 0.
func (service *TokenService) TokenTimeRemaining(token string) int64 {
	claims, err := service.codec.DecodeUnsafe(token)
	if err != nil || claims.ExpiresAt.IsZero() {
		return 0
	}

	remaining := claims.ExpiresAt.Sub(service.now()).Seconds()
	if remaining <= 0 {
		return 0
	}
	return int64(math.Floor(remaining))
}
