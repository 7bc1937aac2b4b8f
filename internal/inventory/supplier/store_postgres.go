// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package supplier

import (
	"context"
	"fmt"

	"github.com/taibuivan/stockroom/internal/platform/database/schema"
	"github.com/taibuivan/stockroom/internal/platform/dberr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// PostgresRepository implements [Repository] on inventory.supplier.
type PostgresRepository struct {
	base *repository.Base[Supplier]
}

// NewPostgresRepository creates the Postgres supplier store.
func NewPostgresRepository(db repository.Querier) *PostgresRepository {
	table := schema.InventorySupplier
	return &PostgresRepository{
		base: repository.New[Supplier](db, repository.Table{
			Name:      table.Table,
			Columns:   table.Columns(),
			ID:        table.ID,
			IsActive:  table.IsActive,
			UpdatedAt: table.UpdatedAt,
			OrderBy:   table.Name,
		}, "Supplier"),
	}
}

func (store *PostgresRepository) FindByID(context context.Context, id int64) (*Supplier, error) {
	return store.base.FindByID(context, id)
}

func (store *PostgresRepository) List(context context.Context, activeOnly bool, limit, offset int) (repository.Page[Supplier], error) {
	if activeOnly {
		return store.base.FindWhere(context, schema.InventorySupplier.IsActive+" = TRUE", nil, limit, offset)
	}
	return store.base.FindAll(context, limit, offset)
}

func (store *PostgresRepository) Create(context context.Context, supplier *Supplier) error {
	table := schema.InventorySupplier
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s, %s`,
		table.Table, table.Name, table.ContactName, table.Email, table.Phone, table.Address,
		table.ID, table.IsActive, table.CreatedAt, table.UpdatedAt,
	)

	err := store.base.DB().QueryRow(context, query,
		supplier.Name, supplier.ContactName, supplier.Email, supplier.Phone, supplier.Address,
	).Scan(&supplier.ID, &supplier.IsActive, &supplier.CreatedAt, &supplier.UpdatedAt)
	return dberr.Wrap(err, "create_supplier")
}

func (store *PostgresRepository) Update(context context.Context, supplier *Supplier) (*Supplier, error) {
	table := schema.InventorySupplier
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table, table.Name, table.ContactName, table.Email, table.Phone, table.Address, table.UpdatedAt,
		table.ID, store.base.SelectColumns(),
	)
	return store.base.QueryOne(context, "update_supplier", query,
		supplier.ID, supplier.Name, supplier.ContactName, supplier.Email, supplier.Phone, supplier.Address,
	)
}

func (store *PostgresRepository) SetActive(context context.Context, id int64, active bool) (*Supplier, error) {
	if active {
		return store.base.Activate(context, id)
	}
	return store.base.Deactivate(context, id)
}

func (store *PostgresRepository) Delete(context context.Context, id int64) error {
	return store.base.Delete(context, id)
}
