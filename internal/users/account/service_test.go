// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/sec"
	"github.com/taibuivan/stockroom/internal/platform/testutil"
	"github.com/taibuivan/stockroom/internal/users/account"
	"github.com/taibuivan/stockroom/internal/users/auth"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

// # Fakes

type fakeUsers struct {
	byID       map[int64]*auth.User
	lastLimit  int
	lastOffset int
}

func newFakeUsers(users ...*auth.User) *fakeUsers {
	repo := &fakeUsers{byID: make(map[int64]*auth.User)}
	for _, user := range users {
		repo.byID[user.ID] = user
	}
	return repo
}

func (repo *fakeUsers) FindByID(_ context.Context, id int64) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repo *fakeUsers) FindByEmail(context.Context, string) (*auth.User, error) {
	return nil, apperr.NotFound("User")
}

func (repo *fakeUsers) EmailExists(context.Context, string) (bool, error) { return false, nil }

func (repo *fakeUsers) Create(context.Context, *auth.User) error { return nil }

func (repo *fakeUsers) TouchLastLogin(context.Context, int64) error { return nil }

func (repo *fakeUsers) List(_ context.Context, limit, offset int) (repository.Page[auth.User], error) {
	repo.lastLimit, repo.lastOffset = limit, offset
	items := make([]*auth.User, 0, len(repo.byID))
	for _, user := range repo.byID {
		items = append(items, user)
	}
	return repository.Page[auth.User]{Items: items, Total: len(items)}, nil
}

func (repo *fakeUsers) UpdateRole(_ context.Context, id int64, role sec.UserRole) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user.Role = role
	clone := *user
	return &clone, nil
}

func (repo *fakeUsers) SetActive(_ context.Context, id int64, active bool) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user.IsActive = active
	clone := *user
	return &clone, nil
}

func (repo *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := repo.byID[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.byID, id)
	return nil
}

type recordedAction struct {
	action   string
	entityID int64
	details  map[string]any
}

type fakeRecorder struct {
	records []recordedAction
}

func (recorder *fakeRecorder) Record(_ context.Context, action, _ string, entityID int64, details map[string]any) {
	recorder.records = append(recorder.records, recordedAction{action: action, entityID: entityID, details: details})
}

// # Fixtures

func seedUsers() *fakeUsers {
	return newFakeUsers(
		&auth.User{ID: 1, Email: "admin@example.com", Role: sec.RoleAdmin, IsActive: true},
		&auth.User{ID: 2, Email: "staff@example.com", Role: sec.RoleUser, IsActive: true},
	)
}

func adminContext() context.Context {
	return ctxutil.WithIdentity(context.Background(), &sec.Identity{ID: "1", SubjectID: 1, Role: sec.RoleAdmin})
}

func statusOf(err error) int {
	if appError := apperr.As(err); appError != nil {
		return appError.HTTPStatus
	}
	return 0
}

// # Tests

/*
TestService_ChangeRole verifies role parsing, the self guard and auditing.
*/
func TestService_ChangeRole(t *testing.T) {
	users := seedUsers()
	recorder := &fakeRecorder{}
	service := account.NewService(users, recorder, testutil.Logger())
	ctx := adminContext()

	// 1. Promotion, case-insensitive
	user, err := service.ChangeRole(ctx, 2, "manager")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleManager, user.Role)
	require.Len(t, recorder.records, 1)
	assert.Equal(t, "ROLE_CHANGE", recorder.records[0].action)
	assert.Equal(t, sec.RoleUser, recorder.records[0].details["from"])
	assert.Equal(t, sec.RoleManager, recorder.records[0].details["to"])

	// 2. Same role is a no-op
	_, err = service.ChangeRole(ctx, 2, "MANAGER")
	require.NoError(t, err)
	assert.Len(t, recorder.records, 1)

	// 3. Unknown role
	_, err = service.ChangeRole(ctx, 2, "OWNER")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	// 4. Own account
	_, err = service.ChangeRole(ctx, 1, "VIEWER")
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	// 5. Missing account
	_, err = service.ChangeRole(ctx, 99, "VIEWER")
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

/*
TestService_Activation verifies deactivation, reactivation and the self guard.
*/
func TestService_Activation(t *testing.T) {
	users := seedUsers()
	recorder := &fakeRecorder{}
	service := account.NewService(users, recorder, testutil.Logger())
	ctx := adminContext()

	user, err := service.Deactivate(ctx, 2)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	user, err = service.Activate(ctx, 2)
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = service.Deactivate(ctx, 1)
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	require.Len(t, recorder.records, 2)
	assert.Equal(t, "DEACTIVATE", recorder.records[0].action)
	assert.Equal(t, "ACTIVATE", recorder.records[1].action)
}

/*
TestService_Delete verifies removal and the self guard.
*/
func TestService_Delete(t *testing.T) {
	users := seedUsers()
	service := account.NewService(users, &fakeRecorder{}, testutil.Logger())
	ctx := adminContext()

	require.NoError(t, service.Delete(ctx, 2))
	_, err := service.Get(ctx, 2)
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	assert.Equal(t, http.StatusForbidden, statusOf(service.Delete(ctx, 1)))
}

/*
TestService_List verifies pagination is translated to limit and offset.
*/
func TestService_List(t *testing.T) {
	users := seedUsers()
	service := account.NewService(users, &fakeRecorder{}, testutil.Logger())

	page, err := service.List(context.Background(), pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 10, users.lastLimit)
	assert.Equal(t, 20, users.lastOffset)
}
