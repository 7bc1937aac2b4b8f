// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate accumulates field failures and turns them into one
// VALIDATION_ERROR [apperr.AppError].
//
// Services validate; handlers only decode and stores trust their input.
// A field keeps its first failure only, so a blank SKU reports
// "This field is required" and not an extra pattern complaint.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
)

const (
	msgRequired = "This field is required"
	msgFailed   = "Validation failed"
)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Fail builds a single-field validation error.
func Fail(field, message string) *apperr.AppError {
	return apperr.ValidationError(msgFailed, apperr.FieldError{Field: field, Message: message})
}

// Validator is a per-operation collector; do not share it between goroutines.
//
//	validator := &validate.Validator{}
//	validator.Required("name", name).MaxLen("name", name, 120)
//	if err := validator.Err(); err != nil { ... }
type Validator struct {
	details []apperr.FieldError
	failed  map[string]struct{}
}

// # Strings

func (v *Validator) Required(field, value string) *Validator {
	return v.check(field, strings.TrimSpace(value) == "", msgRequired)
}

// MaxLen counts runes, not bytes.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) > limit, fmt.Sprintf("Maximum %d characters", limit))
}

// OptionalMaxLen is [Validator.MaxLen] for nullable columns; nil passes.
func (v *Validator) OptionalMaxLen(field string, value *string, limit int) *Validator {
	if value == nil {
		return v
	}
	return v.MaxLen(field, *value, limit)
}

func (v *Validator) MinLen(field, value string, limit int) *Validator {
	return v.check(field, utf8.RuneCountInString(value) < limit, fmt.Sprintf("Minimum %d characters", limit))
}

// Email accepts a bare address only; "Ada <ada@example.com>" fails.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	return v.check(field, err != nil || address.Address != value, "Must be a valid email address")
}

// Match ignores empty values so that Required decides about blanks.
func (v *Validator) Match(field, value string, pattern *regexp.Regexp, message string) *Validator {
	return v.check(field, value != "" && !pattern.MatchString(value), message)
}

func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	return v.check(field, !slices.Contains(allowed, value), "Must be one of: "+strings.Join(allowed, ", "))
}

// # Numbers

// ID treats zero as missing: an absent JSON key decodes as 0.
func (v *Validator) ID(field string, id int64) *Validator {
	return v.check(field, id <= 0, msgRequired)
}

func (v *Validator) OptionalID(field string, id *int64) *Validator {
	return v.check(field, id != nil && *id <= 0, "Must be a positive integer")
}

func (v *Validator) NonNegative(field string, value int) *Validator {
	return v.check(field, value < 0, "Must not be negative")
}

// Custom records message against field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	return v.check(field, failed, message)
}

// # Result

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.details) == 0 {
		return nil
	}
	return apperr.ValidationError(msgFailed, v.details...)
}

// Failed reports whether field already holds a failure.
func (v *Validator) Failed(field string) bool {
	_, ok := v.failed[field]
	return ok
}

func (v *Validator) check(field string, failed bool, message string) *Validator {
	if !failed || v.Failed(field) {
		return v
	}
	if v.failed == nil {
		v.failed = make(map[string]struct{})
	}
	v.failed[field] = struct{}{}
	v.details = append(v.details, apperr.FieldError{Field: field, Message: message})
	return v
}
