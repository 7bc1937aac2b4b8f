// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/platform/sec"
)

/*
TestHasRoleAccess checks the literal numeric ordering of the role hierarchy.
*/
func TestHasRoleAccess(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		required string
		allowed  bool
	}{
		{"admin_over_everything", "ADMIN", "MANAGER", true},
		{"same_rank", "USER", "USER", true},
		{"manager_over_supervisor", "MANAGER", "SUPERVISOR", true},
		{"user_below_supervisor", "USER", "SUPERVISOR", false},
		{"auditor_below_user", "AUDITOR", "USER", false},
		{"auditor_over_viewer", "AUDITOR", "VIEWER", true},
		{"viewer_is_lowest", "VIEWER", "AUDITOR", false},
		{"unknown_actual_denied", "ROOT", "VIEWER", false},
		{"unknown_required_denied", "ADMIN", "ROOT", false},
		{"empty_role_denied", "", "VIEWER", false},
		{"lowercase_not_normalised", "admin", "VIEWER", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, sec.HasRoleAccess(tt.actual, tt.required))
		})
	}
}

/*
TestParseRole verifies normalisation of role names from configuration and input.
*/
func TestParseRole(t *testing.T) {
	role, ok := sec.ParseRole("  supervisor ")
	require.True(t, ok)
	assert.Equal(t, sec.RoleSupervisor, role)
	assert.Equal(t, 4, role.Rank())

	role, ok = sec.ParseRole("janitor")
	assert.False(t, ok)
	assert.Equal(t, 0, role.Rank())
	assert.False(t, role.Valid())
}

/*
TestAllRoles_Ordered ensures AllRoles runs from the highest rank to the lowest.
*/
func TestAllRoles_Ordered(t *testing.T) {
	require.Len(t, sec.AllRoles, 6)
	for i := 1; i < len(sec.AllRoles); i++ {
		assert.Greater(t, sec.AllRoles[i-1].Rank(), sec.AllRoles[i].Rank())
	}
}
