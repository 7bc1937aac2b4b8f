// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/middleware"
	"github.com/taibuivan/stockroom/internal/platform/sec"
	"github.com/taibuivan/stockroom/internal/platform/testutil"
	"github.com/taibuivan/stockroom/internal/users/account"
)

func newRequest(method, target, body string, role sec.UserRole) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	identity := &sec.Identity{ID: "1", SubjectID: 1, Role: role}
	return request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
}

/*
TestHandler_Routes verifies the admin guard and the role endpoint.
*/
func TestHandler_Routes(t *testing.T) {
	service := account.NewService(seedUsers(), &fakeRecorder{}, testutil.Logger())
	router := account.NewHandler(service, middleware.NewGuards(nil)).Routes()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		role   sec.UserRole
		status int
	}{
		{"manager cannot list", http.MethodGet, "/", "", sec.RoleManager, http.StatusForbidden},
		{"admin lists", http.MethodGet, "/", "", sec.RoleAdmin, http.StatusOK},
		{"admin gets", http.MethodGet, "/2", "", sec.RoleAdmin, http.StatusOK},
		{"bad id", http.MethodGet, "/abc", "", sec.RoleAdmin, http.StatusBadRequest},
		{"role change", http.MethodPatch, "/2/role", `{"role":"SUPERVISOR"}`, sec.RoleAdmin, http.StatusOK},
		{"unknown role", http.MethodPatch, "/2/role", `{"role":"KING"}`, sec.RoleAdmin, http.StatusBadRequest},
		{"self delete", http.MethodDelete, "/1", "", sec.RoleAdmin, http.StatusForbidden},
		{"delete", http.MethodDelete, "/2", "", sec.RoleAdmin, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, newRequest(tt.method, tt.target, tt.body, tt.role))
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}
