// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/taibuivan/stockroom/internal/platform/database/schema"
	"github.com/taibuivan/stockroom/internal/platform/dberr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// PostgresRepository implements [Repository] on inventory.category.
type PostgresRepository struct {
	base *repository.Base[Category]
}

// NewPostgresRepository creates the Postgres category store.
func NewPostgresRepository(db repository.Querier) *PostgresRepository {
	table := schema.InventoryCategory
	return &PostgresRepository{
		base: repository.New[Category](db, repository.Table{
			Name:       table.Table,
			Columns:    table.Columns(),
			ID:         table.ID,
			IsActive:   table.IsActive,
			UpdatedAt:  table.UpdatedAt,
			OrderBy:    table.Name,
			Filterable: []string{table.Slug},
		}, "Category"),
	}
}

func (store *PostgresRepository) FindByID(context context.Context, id int64) (*Category, error) {
	return store.base.FindByID(context, id)
}

func (store *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	table := schema.InventoryCategory
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, store.base.SelectColumns(), table.Table, table.Slug)
	return store.base.QueryOne(context, "find_category_by_slug", query, slug)
}

func (store *PostgresRepository) List(context context.Context, activeOnly bool, limit, offset int) (repository.Page[Category], error) {
	if activeOnly {
		return store.base.FindWhere(context, schema.InventoryCategory.IsActive+" = TRUE", nil, limit, offset)
	}
	return store.base.FindAll(context, limit, offset)
}

// SlugTaken reports whether another category already uses slug.
func (store *PostgresRepository) SlugTaken(context context.Context, slug string, exceptID int64) (bool, error) {
	table := schema.InventoryCategory
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)`, table.Table, table.Slug, table.ID)

	var taken bool
	if err := store.base.DB().QueryRow(context, query, slug, exceptID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "category_slug_taken")
	}
	return taken, nil
}

func (store *PostgresRepository) Create(context context.Context, category *Category) error {
	table := schema.InventoryCategory
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s, %s`,
		table.Table, table.Name, table.Slug, table.Description,
		table.ID, table.IsActive, table.CreatedAt, table.UpdatedAt,
	)

	err := store.base.DB().QueryRow(context, query, category.Name, category.Slug, category.Description).
		Scan(&category.ID, &category.IsActive, &category.CreatedAt, &category.UpdatedAt)
	return dberr.Wrap(err, "create_category")
}

func (store *PostgresRepository) Update(context context.Context, category *Category) (*Category, error) {
	table := schema.InventoryCategory
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		table.Table, table.Name, table.Slug, table.Description, table.UpdatedAt,
		table.ID, store.base.SelectColumns(),
	)
	return store.base.QueryOne(context, "update_category", query, category.ID, category.Name, category.Slug, category.Description)
}

func (store *PostgresRepository) SetActive(context context.Context, id int64, active bool) (*Category, error) {
	if active {
		return store.base.Activate(context, id)
	}
	return store.base.Deactivate(context, id)
}

func (store *PostgresRepository) Delete(context context.Context, id int64) error {
	return store.base.Delete(context, id)
}
