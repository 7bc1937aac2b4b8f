// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package reference generates human-quotable, time-ordered document
// references such as stock movement numbers.
//
// References are ULIDs drawn from a monotonic entropy source, so two
// references minted in the same millisecond still sort in creation order.
package reference

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a reference for the current time with the given prefix,
// e.g. "MV-01J9ZQ3K7N4X8V2B6C5D0E1F2G".
func New(prefix string) string {
	return NewAt(prefix, time.Now().UTC())
}

// NewAt returns a reference embedding t.
func NewAt(prefix string, t time.Time) string {
	mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(t), entropy)
	mu.Unlock()

	if prefix == "" {
		return id.String()
	}
	return prefix + "-" + id.String()
}

// Time extracts the creation time of a reference. The zero time is returned
// for malformed input.
func Time(ref string) time.Time {
	if i := strings.LastIndexByte(ref, '-'); i >= 0 {
		ref = ref[i+1:]
	}

	id, err := ulid.ParseStrict(ref)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(id.Time())
}
