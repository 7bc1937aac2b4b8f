// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/inventory/category"
	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/testutil"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

// # Fakes

type fakeRepository struct {
	nextID     int64
	byID       map[int64]*category.Category
	activeOnly bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[int64]*category.Category)}
}

func (repo *fakeRepository) FindByID(_ context.Context, id int64) (*category.Category, error) {
	item, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	clone := *item
	return &clone, nil
}

func (repo *fakeRepository) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	for _, item := range repo.byID {
		if item.Slug == slug {
			clone := *item
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Category")
}

func (repo *fakeRepository) List(_ context.Context, activeOnly bool, _, _ int) (repository.Page[category.Category], error) {
	repo.activeOnly = activeOnly
	return repository.Page[category.Category]{}, nil
}

func (repo *fakeRepository) SlugTaken(_ context.Context, slug string, exceptID int64) (bool, error) {
	for id, item := range repo.byID {
		if item.Slug == slug && id != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeRepository) Create(_ context.Context, item *category.Category) error {
	repo.nextID++
	item.ID = repo.nextID
	item.IsActive = true
	clone := *item
	repo.byID[item.ID] = &clone
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, item *category.Category) (*category.Category, error) {
	stored := repo.byID[item.ID]
	stored.Name, stored.Slug, stored.Description = item.Name, item.Slug, item.Description
	clone := *stored
	return &clone, nil
}

func (repo *fakeRepository) SetActive(_ context.Context, id int64, active bool) (*category.Category, error) {
	item, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	item.IsActive = active
	clone := *item
	return &clone, nil
}

func (repo *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := repo.byID[id]; !ok {
		return apperr.NotFound("Category")
	}
	delete(repo.byID, id)
	return nil
}

type fakeRecorder struct {
	actions []string
}

func (recorder *fakeRecorder) Record(_ context.Context, action, _ string, _ int64, _ map[string]any) {
	recorder.actions = append(recorder.actions, action)
}

func statusOf(err error) int {
	if appError := apperr.As(err); appError != nil {
		return appError.HTTPStatus
	}
	return 0
}

// # Tests

/*
TestService_Create verifies slug derivation, validation and conflicts.
*/
func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	recorder := &fakeRecorder{}
	service := category.NewService(repo, recorder, testutil.Logger())
	ctx := context.Background()

	// 1. Slug from an accented, spaced name
	description := "  Drills, saws and grinders  "
	created, err := service.Create(ctx, category.Input{Name: " Électric Power Tools ", Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Électric Power Tools", created.Name)
	assert.Equal(t, "electric-power-tools", created.Slug)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Drills, saws and grinders", *created.Description)

	// 2. A name producing the same slug conflicts
	_, err = service.Create(ctx, category.Input{Name: "electric power-tools"})
	assert.Equal(t, http.StatusConflict, statusOf(err))

	// 3. Validation
	_, err = service.Create(ctx, category.Input{Name: "   "})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	_, err = service.Create(ctx, category.Input{Name: "!!!"})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	assert.Equal(t, []string{"CREATE"}, recorder.actions)
}

/*
TestService_Update verifies renames re-derive the slug and keep their own slug free.
*/
func TestService_Update(t *testing.T) {
	repo := newFakeRepository()
	service := category.NewService(repo, &fakeRecorder{}, testutil.Logger())
	ctx := context.Background()

	hand, err := service.Create(ctx, category.Input{Name: "Hand Tools"})
	require.NoError(t, err)
	_, err = service.Create(ctx, category.Input{Name: "Fasteners"})
	require.NoError(t, err)

	// 1. Same name keeps its slug without conflicting with itself
	updated, err := service.Update(ctx, hand.ID, category.Input{Name: "Hand tools"})
	require.NoError(t, err)
	assert.Equal(t, "hand-tools", updated.Slug)

	// 2. Rename
	updated, err = service.Update(ctx, hand.ID, category.Input{Name: "Manual Tools"})
	require.NoError(t, err)
	assert.Equal(t, "manual-tools", updated.Slug)

	// 3. Taking another category's slug
	_, err = service.Update(ctx, hand.ID, category.Input{Name: "FASTENERS"})
	assert.Equal(t, http.StatusConflict, statusOf(err))

	// 4. Missing
	_, err = service.Update(ctx, 404, category.Input{Name: "Ghost"})
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

/*
TestService_Lifecycle verifies activation, listing flags and deletion.
*/
func TestService_Lifecycle(t *testing.T) {
	repo := newFakeRepository()
	recorder := &fakeRecorder{}
	service := category.NewService(repo, recorder, testutil.Logger())
	ctx := context.Background()

	created, err := service.Create(ctx, category.Input{Name: "Paint"})
	require.NoError(t, err)

	deactivated, err := service.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	activated, err := service.Activate(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	_, err = service.List(ctx, false, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.True(t, repo.activeOnly)
	_, err = service.List(ctx, true, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.False(t, repo.activeOnly)

	require.NoError(t, service.Delete(ctx, created.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(service.Delete(ctx, created.ID)))

	assert.Equal(t, []string{"CREATE", "DEACTIVATE", "ACTIVATE", "DELETE"}, recorder.actions)
}
