// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package supplier_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/inventory/supplier"
	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/testutil"
	"github.com/taibuivan/stockroom/pkg/pointer"
)

type fakeRepository struct {
	nextID int64
	byID   map[int64]*supplier.Supplier
}

func (repo *fakeRepository) FindByID(_ context.Context, id int64) (*supplier.Supplier, error) {
	item, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("Supplier")
	}
	return item, nil
}

func (repo *fakeRepository) List(context.Context, bool, int, int) (repository.Page[supplier.Supplier], error) {
	return repository.Page[supplier.Supplier]{}, nil
}

func (repo *fakeRepository) Create(_ context.Context, item *supplier.Supplier) error {
	repo.nextID++
	item.ID = repo.nextID
	item.IsActive = true
	repo.byID[item.ID] = item
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, item *supplier.Supplier) (*supplier.Supplier, error) {
	if _, ok := repo.byID[item.ID]; !ok {
		return nil, apperr.NotFound("Supplier")
	}
	repo.byID[item.ID] = item
	return item, nil
}

func (repo *fakeRepository) SetActive(_ context.Context, id int64, active bool) (*supplier.Supplier, error) {
	item, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("Supplier")
	}
	item.IsActive = active
	return item, nil
}

func (repo *fakeRepository) Delete(_ context.Context, id int64) error {
	delete(repo.byID, id)
	return nil
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, string, string, int64, map[string]any) {}

func newService() (*supplier.Service, *fakeRepository) {
	repo := &fakeRepository{byID: make(map[int64]*supplier.Supplier)}
	return supplier.NewService(repo, nopRecorder{}, testutil.Logger()), repo
}

/*
TestService_Create verifies normalization of the optional contact fields.
*/
func TestService_Create(t *testing.T) {
	service, _ := newService()

	created, err := service.Create(context.Background(), supplier.Input{
		Name:        "  Acme Hardware ",
		ContactName: pointer.To("  "),
		Email:       pointer.To(" Orders@Acme.example "),
		Phone:       pointer.To("+61 2 5550 1234"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Hardware", created.Name)
	assert.Nil(t, created.ContactName)
	assert.Equal(t, "orders@acme.example", pointer.Val(created.Email))
	assert.Equal(t, "+61 2 5550 1234", pointer.Val(created.Phone))
	assert.Nil(t, created.Address)
	assert.True(t, created.IsActive)
}

/*
TestService_Validation verifies the rejected inputs.
*/
func TestService_Validation(t *testing.T) {
	service, _ := newService()

	tests := map[string]supplier.Input{
		"missing name":   {Name: " "},
		"bad email":      {Name: "Acme", Email: pointer.To("not-an-email")},
		"phone too long": {Name: "Acme", Phone: pointer.To("0123456789012345678901234567890123456789")},
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := service.Create(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
		})
	}
}

/*
TestService_Update verifies updates replace every field and report missing rows.
*/
func TestService_Update(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, supplier.Input{Name: "Acme", Phone: pointer.To("555")})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, supplier.Input{Name: "Acme Pty Ltd"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Pty Ltd", updated.Name)
	assert.Nil(t, updated.Phone)

	_, err = service.Update(ctx, 999, supplier.Input{Name: "Ghost"})
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
