// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/database/schema"
	"github.com/taibuivan/stockroom/internal/platform/dberr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
)

const skuTaken = "SKU is already in use"

// PostgresRepository implements [Repository] on inventory.product.
type PostgresRepository struct {
	base *repository.Base[Product]
}

// NewPostgresRepository creates the Postgres product store.
func NewPostgresRepository(db repository.Querier) *PostgresRepository {
	table := schema.InventoryProduct
	return &PostgresRepository{
		base: repository.New[Product](db, repository.Table{
			Name:       table.Table,
			Columns:    table.Columns(),
			ID:         table.ID,
			IsActive:   table.IsActive,
			UpdatedAt:  table.UpdatedAt,
			OrderBy:    table.Name + ", " + table.ID,
			Filterable: []string{table.SKU, table.CategoryID},
		}, "Product"),
	}
}

func (store *PostgresRepository) FindByID(context context.Context, id int64) (*Product, error) {
	return store.base.FindByID(context, id)
}

func (store *PostgresRepository) FindBySKU(context context.Context, sku string) (*Product, error) {
	matches, err := store.base.FindByField(context, schema.InventoryProduct.SKU, sku)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperr.NotFound("Product")
	}
	return matches[0], nil
}

/*
List returns one page of products matching filter.

Description: Query matches SKU or name case-insensitively. LowStock keeps
products whose quantity is at or below their reorder level.
*/
func (store *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) (repository.Page[Product], error) {
	table := schema.InventoryProduct

	var conditions []string
	var args []any
	placeholder := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.IncludeInactive {
		conditions = append(conditions, table.IsActive+" = TRUE")
	}
	if filter.CategoryID > 0 {
		conditions = append(conditions, table.CategoryID+" = "+placeholder(filter.CategoryID))
	}
	if filter.LowStock {
		conditions = append(conditions, table.Quantity+" <= "+table.ReorderLevel)
	}
	if filter.Query != "" {
		pattern := placeholder("%" + escapeLike(filter.Query) + "%")
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE %s OR %s ILIKE %s)", table.SKU, pattern, table.Name, pattern))
	}

	return store.base.FindWhere(context, strings.Join(conditions, " AND "), args, limit, offset)
}

func (store *PostgresRepository) Create(context context.Context, product *Product) error {
	table := schema.InventoryProduct
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s, %s, %s, %s`,
		table.Table,
		table.SKU, table.Name, table.Description, table.CategoryID, table.SupplierID, table.LocationID,
		table.UnitCost, table.UnitPrice, table.ReorderLevel,
		table.ID, table.Quantity, table.IsActive, table.CreatedAt, table.UpdatedAt,
	)

	err := store.base.DB().QueryRow(context, query,
		product.SKU, product.Name, product.Description, product.CategoryID, product.SupplierID, product.LocationID,
		product.UnitCost, product.UnitPrice, product.ReorderLevel,
	).Scan(&product.ID, &product.Quantity, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)

	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict(skuTaken)
	}
	return dberr.Wrap(err, "create_product")
}

// Update rewrites every writable column. Quantity is left untouched.
func (store *PostgresRepository) Update(context context.Context, product *Product) (*Product, error) {
	table := schema.InventoryProduct
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table,
		table.SKU, table.Name, table.Description, table.CategoryID, table.SupplierID, table.LocationID,
		table.UnitCost, table.UnitPrice, table.ReorderLevel, table.UpdatedAt,
		table.ID, store.base.SelectColumns(),
	)

	updated, err := store.base.QueryOne(context, "update_product", query,
		product.ID, product.SKU, product.Name, product.Description, product.CategoryID, product.SupplierID, product.LocationID,
		product.UnitCost, product.UnitPrice, product.ReorderLevel,
	)
	if appError := apperr.As(err); appError != nil && dberr.IsUniqueViolation(appError.Cause) {
		return nil, apperr.Conflict(skuTaken)
	}
	return updated, err
}

func (store *PostgresRepository) SetActive(context context.Context, id int64, active bool) (*Product, error) {
	if active {
		return store.base.Activate(context, id)
	}
	return store.base.Deactivate(context, id)
}

// Delete removes a product and, by cascade, its movement history.
func (store *PostgresRepository) Delete(context context.Context, id int64) error {
	return store.base.Delete(context, id)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
