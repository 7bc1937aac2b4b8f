// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// # Token Errors

// Token failures are sentinels so the HTTP boundary can map kind to status
// with [errors.Is]. Wrapping errors keep the original cause for logs.
var (
	// ErrInvalidToken: malformed structure, bad encoding or bad signature.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired: the exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked: the token was explicitly invalidated before expiry.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInvalidTokenPurpose: unknown purpose, or a token used for the wrong purpose.
	ErrInvalidTokenPurpose = errors.New("invalid token purpose")

	// ErrTokenGeneration: signing failed (e.g. missing secret).
	ErrTokenGeneration = errors.New("token generation failed")

	// ErrTokenVerification: unexpected internal failure while verifying.
	ErrTokenVerification = errors.New("token verification failed")
)

// ValidationError reports a [TokenPayload] that does not satisfy its schema.
type ValidationError struct {
	Fields map[string]string
}

// FieldNames returns the failing fields in sorted order.
func (e *ValidationError) FieldNames() []string {
	return slices.Sorted(maps.Keys(e.Fields))
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.FieldNames() {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "invalid token payload: " + strings.Join(parts, ", ")
}

func newValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}
