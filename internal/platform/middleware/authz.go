// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/respond"
	"github.com/taibuivan/stockroom/internal/platform/sec"
)

// # Role Guards

// Guards builds authorization middleware from a single [sec.Policy].
//
// Rank guards ([Guards.RequireRole] and the named shortcuts) compare the
// caller's rank against a minimum. Set guards ([Guards.RequireWritePermissions],
// [Guards.RequireReadPermissions]) check the policy's allow-lists. The two are
// evaluated independently.
type Guards struct {
	policy *sec.Policy
}

// NewGuards creates guards for policy. A nil policy uses [sec.DefaultPolicy].
func NewGuards(policy *sec.Policy) *Guards {
	if policy == nil {
		policy = sec.DefaultPolicy()
	}
	return &Guards{policy: policy}
}

// RequireRole blocks requests if the caller's role ranks below role.
//
// # Flow
//  1. Check if [*sec.Identity] exists in context (implies AuthN).
//  2. Check the rank with [sec.Policy.AllowsRank].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func (guards *Guards) RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return guards.require(func(identity *sec.Identity) bool {
		return guards.policy.AllowsRank(identity.Role, role)
	})
}

// RequireAdmin allows ADMIN only.
func (guards *Guards) RequireAdmin(next http.Handler) http.Handler {
	return guards.RequireRole(sec.RoleAdmin)(next)
}

// RequireManager allows MANAGER and above.
func (guards *Guards) RequireManager(next http.Handler) http.Handler {
	return guards.RequireRole(sec.RoleManager)(next)
}

// RequireSupervisor allows SUPERVISOR and above.
func (guards *Guards) RequireSupervisor(next http.Handler) http.Handler {
	return guards.RequireRole(sec.RoleSupervisor)(next)
}

// RequireUser allows USER and above.
func (guards *Guards) RequireUser(next http.Handler) http.Handler {
	return guards.RequireRole(sec.RoleUser)(next)
}

// RequireAuditor allows AUDITOR and above.
func (guards *Guards) RequireAuditor(next http.Handler) http.Handler {
	return guards.RequireRole(sec.RoleAuditor)(next)
}

// RequireViewer allows any known role.
func (guards *Guards) RequireViewer(next http.Handler) http.Handler {
	return guards.RequireRole(sec.RoleViewer)(next)
}

// RequireWritePermissions allows roles on the policy's write allow-list.
func (guards *Guards) RequireWritePermissions(next http.Handler) http.Handler {
	return guards.require(func(identity *sec.Identity) bool {
		return guards.policy.CanWrite(identity.Role)
	})(next)
}

// RequireReadPermissions allows roles on the policy's read allow-list.
func (guards *Guards) RequireReadPermissions(next http.Handler) http.Handler {
	return guards.require(func(identity *sec.Identity) bool {
		return guards.policy.CanRead(identity.Role)
	})(next)
}

func (guards *Guards) require(allowed func(*sec.Identity) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !allowed(identity) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
