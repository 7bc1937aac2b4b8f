// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"
	"slices"
)

// # Authorization Policy

// Policy is the single evaluation point for authorization decisions.
//
// Two strategies coexist on purpose:
//   - rank requirements ([Policy.AllowsRank]) use the fixed hierarchy in [roleRank];
//   - set requirements ([Policy.CanWrite], [Policy.CanRead]) use explicit allow-lists.
//
// The lists are not derived from the ranks and may disagree with them once
// configured (e.g. granting AUDITOR write access while it still ranks below
// USER). Operators choose the lists through configuration.
type Policy struct {
	writeRoles []UserRole
	readRoles  []UserRole
}

// DefaultWriteRoles is the allow-list used by write guards unless overridden.
var DefaultWriteRoles = []UserRole{RoleAdmin, RoleManager, RoleUser, RoleSupervisor}

// DefaultReadRoles is the allow-list used by read guards unless overridden.
var DefaultReadRoles = AllRoles

// NewPolicy builds a policy from role names. Empty lists fall back to the
// defaults; unknown names are rejected so a typo in configuration cannot
// silently grant or drop access.
func NewPolicy(writeRoles, readRoles []string) (*Policy, error) {
	write, err := parseRoles(writeRoles, DefaultWriteRoles)
	if err != nil {
		return nil, fmt.Errorf("sec: write roles: %w", err)
	}

	read, err := parseRoles(readRoles, DefaultReadRoles)
	if err != nil {
		return nil, fmt.Errorf("sec: read roles: %w", err)
	}

	return &Policy{writeRoles: write, readRoles: read}, nil
}

// DefaultPolicy returns the policy with the built-in allow-lists.
func DefaultPolicy() *Policy {
	return &Policy{
		writeRoles: slices.Clone(DefaultWriteRoles),
		readRoles:  slices.Clone(DefaultReadRoles),
	}
}

// AllowsRank reports whether role meets the minimum rank of required.
func (p *Policy) AllowsRank(role, required UserRole) bool {
	return role.AtLeast(required)
}

// CanWrite reports whether role is on the write allow-list.
func (p *Policy) CanWrite(role UserRole) bool {
	return slices.Contains(p.writeRoles, role)
}

// CanRead reports whether role is on the read allow-list.
func (p *Policy) CanRead(role UserRole) bool {
	return slices.Contains(p.readRoles, role)
}

// WriteRoles returns a copy of the write allow-list.
func (p *Policy) WriteRoles() []UserRole {
	return slices.Clone(p.writeRoles)
}

// ReadRoles returns a copy of the read allow-list.
func (p *Policy) ReadRoles() []UserRole {
	return slices.Clone(p.readRoles)
}

func parseRoles(names []string, fallback []UserRole) ([]UserRole, error) {
	if len(names) == 0 {
		return slices.Clone(fallback), nil
	}

	roles := make([]UserRole, 0, len(names))
	for _, name := range names {
		role, ok := ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("unknown role %q", name)
		}
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	return roles, nil
}
