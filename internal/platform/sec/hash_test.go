// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/platform/sec"
)

/*
TestPasswordHash verifies hashing, comparison and the bcrypt byte limit.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("correct horsE", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse", "not-a-hash"))

	// 1. 24 three-byte runes fit; 25 do not
	_, err = sec.HashPassword(strings.Repeat("€", 24))
	assert.NoError(t, err)
	_, err = sec.HashPassword(strings.Repeat("€", 25))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)

	// 2. The throwaway comparison must not panic on any input
	assert.NotPanics(t, func() { sec.SpendPasswordCheck("anything") })
}
