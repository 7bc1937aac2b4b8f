// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
)

/*
TestConstructors verifies each constructor maps to its status and code.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		err    *apperr.AppError
		status int
		code   string
	}{
		{apperr.ValidationError("bad"), http.StatusBadRequest, apperr.CodeValidation},
		{apperr.Unauthorized("who"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{apperr.TokenExpired(), http.StatusUnauthorized, apperr.CodeTokenExpired},
		{apperr.TokenRevoked(), http.StatusUnauthorized, apperr.CodeTokenRevoked},
		{apperr.InvalidToken(), http.StatusUnauthorized, apperr.CodeInvalidToken},
		{apperr.Forbidden("no"), http.StatusForbidden, apperr.CodeForbidden},
		{apperr.NotFound("Product"), http.StatusNotFound, apperr.CodeNotFound},
		{apperr.Conflict("dup"), http.StatusConflict, apperr.CodeConflict},
		{apperr.Unprocessable("rule"), http.StatusUnprocessableEntity, apperr.CodeUnprocessable},
		{apperr.RateLimited(3), http.StatusTooManyRequests, apperr.CodeRateLimited},
		{apperr.Internal(errors.New("db down")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Product not found", apperr.NotFound("Product").Message)
	assert.Equal(t, 3, apperr.RateLimited(3).RetryAfter)
	assert.Equal(t, 1, apperr.RateLimited(0).RetryAfter)
}

/*
TestAppError_Chain verifies causes stay reachable and codes match through wrapping.
*/
func TestAppError_Chain(t *testing.T) {
	root := errors.New("connection reset")
	internal := apperr.Internal(root)

	// 1. The cause is reachable but the message stays generic
	assert.ErrorIs(t, internal, root)
	assert.Equal(t, "An unexpected error occurred", internal.Message)

	// 2. Code matching survives fmt wrapping
	wrapped := fmt.Errorf("refresh: %w", apperr.TokenExpired())
	assert.ErrorIs(t, wrapped, apperr.TokenExpired())
	assert.NotErrorIs(t, wrapped, apperr.TokenRevoked())

	// 3. As digs the AppError out of the chain
	found := apperr.As(wrapped)
	require.NotNil(t, found)
	assert.Equal(t, apperr.CodeTokenExpired, found.Code)
	assert.Nil(t, apperr.As(root))

	// 4. WithCause does not mutate the original
	conflict := apperr.Conflict("SKU is already in use")
	withCause := conflict.WithCause(root)
	assert.Nil(t, conflict.Cause)
	assert.Same(t, root, withCause.Cause)
}
