// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package location_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/inventory/location"
	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/testutil"
)

type fakeRepository struct {
	created  []*location.Location
	lastCode string
}

func (repo *fakeRepository) FindByID(context.Context, int64) (*location.Location, error) {
	return nil, apperr.NotFound("Location")
}

func (repo *fakeRepository) FindByCode(_ context.Context, code string) (*location.Location, error) {
	repo.lastCode = code
	return &location.Location{ID: 1, Code: code}, nil
}

func (repo *fakeRepository) List(context.Context, bool, int, int) (repository.Page[location.Location], error) {
	return repository.Page[location.Location]{}, nil
}

func (repo *fakeRepository) Create(_ context.Context, item *location.Location) error {
	item.ID = int64(len(repo.created) + 1)
	repo.created = append(repo.created, item)
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, item *location.Location) (*location.Location, error) {
	return item, nil
}

func (repo *fakeRepository) SetActive(context.Context, int64, bool) (*location.Location, error) {
	return nil, apperr.NotFound("Location")
}

func (repo *fakeRepository) Delete(context.Context, int64) error { return nil }

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, string, string, int64, map[string]any) {}

/*
TestService_CodeNormalization verifies codes are stored and looked up in upper case.
*/
func TestService_CodeNormalization(t *testing.T) {
	repo := &fakeRepository{}
	service := location.NewService(repo, nopRecorder{}, testutil.Logger())
	ctx := context.Background()

	created, err := service.Create(ctx, location.Input{Code: " wh1-a04 ", Name: "Aisle 4"})
	require.NoError(t, err)
	assert.Equal(t, "WH1-A04", created.Code)

	_, err = service.GetByCode(ctx, "wh1-a04")
	require.NoError(t, err)
	assert.Equal(t, "WH1-A04", repo.lastCode)
}

/*
TestService_CodeValidation verifies the accepted code alphabet.
*/
func TestService_CodeValidation(t *testing.T) {
	service := location.NewService(&fakeRepository{}, nopRecorder{}, testutil.Logger())

	tests := []struct {
		code  string
		valid bool
	}{
		{"WH1", true},
		{"wh1.bin-07", true},
		{"", false},
		{"WH 1", false},
		{"-WH1", false},
		{"WH1--A", false},
		{"WH1/A", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := service.Create(context.Background(), location.Input{Code: tt.code, Name: "Somewhere"})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
		})
	}
}
