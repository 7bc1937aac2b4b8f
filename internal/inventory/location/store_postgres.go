// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package location

import (
	"context"
	"fmt"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/database/schema"
	"github.com/taibuivan/stockroom/internal/platform/dberr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// PostgresRepository implements [Repository] on inventory.location.
type PostgresRepository struct {
	base *repository.Base[Location]
}

// NewPostgresRepository creates the Postgres location store.
func NewPostgresRepository(db repository.Querier) *PostgresRepository {
	table := schema.InventoryLocation
	return &PostgresRepository{
		base: repository.New[Location](db, repository.Table{
			Name:       table.Table,
			Columns:    table.Columns(),
			ID:         table.ID,
			IsActive:   table.IsActive,
			UpdatedAt:  table.UpdatedAt,
			OrderBy:    table.Code,
			Filterable: []string{table.Code},
		}, "Location"),
	}
}

func (store *PostgresRepository) FindByID(context context.Context, id int64) (*Location, error) {
	return store.base.FindByID(context, id)
}

func (store *PostgresRepository) FindByCode(context context.Context, code string) (*Location, error) {
	matches, err := store.base.FindByField(context, schema.InventoryLocation.Code, code)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperr.NotFound("Location")
	}
	return matches[0], nil
}

func (store *PostgresRepository) List(context context.Context, activeOnly bool, limit, offset int) (repository.Page[Location], error) {
	if activeOnly {
		return store.base.FindWhere(context, schema.InventoryLocation.IsActive+" = TRUE", nil, limit, offset)
	}
	return store.base.FindAll(context, limit, offset)
}

/*
Create inserts a location.

Returns:
  - error: apperr.Conflict when the code is taken, or database errors
*/
func (store *PostgresRepository) Create(context context.Context, location *Location) error {
	table := schema.InventoryLocation
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s, %s`,
		table.Table, table.Code, table.Name, table.Description,
		table.ID, table.IsActive, table.CreatedAt, table.UpdatedAt,
	)

	err := store.base.DB().QueryRow(context, query, location.Code, location.Name, location.Description).
		Scan(&location.ID, &location.IsActive, &location.CreatedAt, &location.UpdatedAt)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("Location code is already in use")
	}
	return dberr.Wrap(err, "create_location")
}

func (store *PostgresRepository) Update(context context.Context, location *Location) (*Location, error) {
	table := schema.InventoryLocation
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table, table.Code, table.Name, table.Description, table.UpdatedAt,
		table.ID, store.base.SelectColumns(),
	)

	updated, err := store.base.QueryOne(context, "update_location", query, location.ID, location.Code, location.Name, location.Description)
	if appError := apperr.As(err); appError != nil && dberr.IsUniqueViolation(appError.Cause) {
		return nil, apperr.Conflict("Location code is already in use")
	}
	return updated, err
}

func (store *PostgresRepository) SetActive(context context.Context, id int64, active bool) (*Location, error) {
	if active {
		return store.base.Activate(context, id)
	}
	return store.base.Deactivate(context, id)
}

func (store *PostgresRepository) Delete(context context.Context, id int64) error {
	return store.base.Delete(context, id)
}
