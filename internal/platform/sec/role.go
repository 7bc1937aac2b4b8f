// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "ADMIN"

	// Manages catalogue, suppliers and can delete records
	RoleManager UserRole = "MANAGER"

	// Oversees warehouse operations, can (de)activate records
	RoleSupervisor UserRole = "SUPERVISOR"

	// Default role for registered staff; records stock movements
	RoleUser UserRole = "USER"

	// Read access plus the audit trail
	RoleAuditor UserRole = "AUDITOR"

	// Read-only access
	RoleViewer UserRole = "VIEWER"
)

// AllRoles lists every known role from the highest rank to the lowest.
var AllRoles = []UserRole{RoleAdmin, RoleManager, RoleSupervisor, RoleUser, RoleAuditor, RoleViewer}

// # Role Hierarchy

// roleRank is the fixed total order used by rank-based guards.
//
// AUDITOR and VIEWER sit below USER even though AUDITOR can read the audit
// trail; see [Policy] for the set-based rules that coexist with this table.
var roleRank = map[UserRole]int{
	RoleAdmin:      6,
	RoleManager:    5,
	RoleSupervisor: 4,
	RoleUser:       3,
	RoleAuditor:    2,
	RoleViewer:     1,
}

// ParseRole normalises s into a [UserRole]. The second value reports whether
// the role is part of the hierarchy.
func ParseRole(s string) (UserRole, bool) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := roleRank[role]
	return role, ok
}

// Rank returns the numeric level of the role. Unknown roles rank 0.
func (r UserRole) Rank() int {
	return roleRank[r]
}

// Valid reports whether the role is part of the hierarchy.
func (r UserRole) Valid() bool {
	return r.Rank() > 0
}

// AtLeast checks if the current role meets or exceeds the required target role.
//
// An unknown role never satisfies anything, and nothing satisfies an unknown
// requirement.
func (r UserRole) AtLeast(target UserRole) bool {
	if !r.Valid() || !target.Valid() {
		return false
	}
	return r.Rank() >= target.Rank()
}

// String implements [fmt.Stringer].
func (r UserRole) String() string {
	return string(r)
}

// HasRoleAccess reports whether actual satisfies required by rank.
func HasRoleAccess(actual, required string) bool {
	return UserRole(actual).AtLeast(UserRole(required))
}
