// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type every service returns to the HTTP layer.

An [AppError] pairs a stable machine code with a client-safe message and the
HTTP status it maps to. Storage and library failures are attached as Cause,
which is logged by package respond and never serialized.

Codes:

  - 400 VALIDATION_ERROR, with per-field Details
  - 401 UNAUTHORIZED, TOKEN_EXPIRED, TOKEN_REVOKED, INVALID_TOKEN
  - 403 FORBIDDEN
  - 404 NOT_FOUND
  - 409 CONFLICT
  - 422 UNPROCESSABLE
  - 429 RATE_LIMITED, with RetryAfter
  - 500 INTERNAL_ERROR
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeTokenExpired  = "TOKEN_EXPIRED"
	CodeTokenRevoked  = "TOKEN_REVOKED"
	CodeInvalidToken  = "INVALID_TOKEN"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeUnprocessable = "UNPROCESSABLE"
	CodeRateLimited   = "RATE_LIMITED"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppError is a classified failure ready to be rendered as an API error.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int

	// Details lists per-field failures for CodeValidation.
	Details []FieldError

	// RetryAfter is the wait in seconds for CodeRateLimited, zero otherwise.
	RetryAfter int

	// Cause is for server-side logs only.
	Cause error
}

// FieldError is a single failed input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another [*AppError] by code, so errors.Is(err, apperr.TokenExpired()) works.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && other.Code == e.Code
}

// WithCause returns a copy of e carrying cause for logging.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(http.StatusBadRequest, CodeValidation, message)
	err.Details = details
	return err
}

func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func TokenExpired() *AppError {
	return newError(http.StatusUnauthorized, CodeTokenExpired, "Token has expired")
}

func TokenRevoked() *AppError {
	return newError(http.StatusUnauthorized, CodeTokenRevoked, "Token has been revoked")
}

// InvalidToken covers malformed, forged and wrong-purpose tokens alike.
func InvalidToken() *AppError {
	return newError(http.StatusUnauthorized, CodeInvalidToken, "Invalid token")
}

func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

// NotFound names the missing resource, e.g. NotFound("Product") reads "Product not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Conflict(message string) *AppError {
	return newError(http.StatusConflict, CodeConflict, message)
}

// Unprocessable reports well-formed input that breaks a business rule.
func Unprocessable(message string) *AppError {
	return newError(http.StatusUnprocessableEntity, CodeUnprocessable, message)
}

func RateLimited(retryAfterSeconds int) *AppError {
	retryAfterSeconds = max(1, retryAfterSeconds)
	err := newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
	err.RetryAfter = retryAfterSeconds
	return err
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred").WithCause(cause)
}

// # Helpers

func IsAppError(err error) bool {
	return As(err) != nil
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}
