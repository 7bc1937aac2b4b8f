// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer has small generics for nullable values. Optional JSON
// fields and NULL-able columns are both modelled as pointers.
package pointer

import "strings"

// To returns &v, which a literal cannot do directly.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, yielding the zero value for nil.
func Val[T any](p *T) T {
	if p != nil {
		return *p
	}
	var zero T
	return zero
}

// Trim normalizes optional text: surrounding space is removed and blank input becomes nil.
func Trim(p *string) *string {
	if p == nil {
		return nil
	}
	if trimmed := strings.TrimSpace(*p); trimmed != "" {
		return &trimmed
	}
	return nil
}
