// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package location_test

import (
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/inventory/location"
	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/testutil"
)

/*
TestPostgresRepository exercises the location store against a real database.
*/
func TestPostgresRepository(t *testing.T) {
	pool := testutil.StartPostgres(t)

	t.Run("create, find and deactivate", func(t *testing.T) {
		testutil.WithTx(t, pool, func(tx pgx.Tx) {
			store := location.NewPostgresRepository(tx)

			created := &location.Location{Code: "WH1-A01", Name: "Aisle 1"}
			require.NoError(t, store.Create(t.Context(), created))
			assert.NotZero(t, created.ID)
			assert.True(t, created.IsActive)

			found, err := store.FindByCode(t.Context(), "WH1-A01")
			require.NoError(t, err)
			assert.Equal(t, created.ID, found.ID)

			deactivated, err := store.SetActive(t.Context(), created.ID, false)
			require.NoError(t, err)
			assert.False(t, deactivated.IsActive)

			active, err := store.List(t.Context(), true, 10, 0)
			require.NoError(t, err)
			assert.Zero(t, active.Total)

			all, err := store.List(t.Context(), false, 10, 0)
			require.NoError(t, err)
			assert.Equal(t, 1, all.Total)
		})
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		testutil.WithTx(t, pool, func(tx pgx.Tx) {
			store := location.NewPostgresRepository(tx)

			require.NoError(t, store.Create(t.Context(), &location.Location{Code: "WH2", Name: "Second"}))

			err := store.Create(t.Context(), &location.Location{Code: "WH2", Name: "Again"})
			require.Error(t, err)
			assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
		})
	})

	t.Run("missing rows", func(t *testing.T) {
		store := location.NewPostgresRepository(pool)

		_, err := store.FindByCode(t.Context(), "NOPE")
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
		assert.Equal(t, http.StatusNotFound, apperr.As(store.Delete(t.Context(), 12345)).HTTPStatus)
	})
}
