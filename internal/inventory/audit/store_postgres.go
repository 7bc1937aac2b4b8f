// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/stockroom/internal/platform/database/schema"
	"github.com/taibuivan/stockroom/internal/platform/dberr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// PostgresRepository stores entries in inventory.auditlog.
type PostgresRepository struct {
	base *repository.Base[Entry]
}

// NewPostgresRepository creates the Postgres audit store.
func NewPostgresRepository(db repository.Querier) *PostgresRepository {
	table := schema.InventoryAuditLog
	return &PostgresRepository{
		base: repository.New[Entry](db, repository.Table{
			Name:       table.Table,
			Columns:    table.Columns(),
			ID:         table.ID,
			OrderBy:    table.CreatedAt + " DESC, " + table.ID + " DESC",
			Filterable: []string{table.EntityType, table.ActorID, table.Action},
		}, "Audit entry"),
	}
}

// Insert appends an entry and fills its ID and timestamp.
func (store *PostgresRepository) Insert(context context.Context, entry *Entry) error {
	table := schema.InventoryAuditLog
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		table.Table,
		table.ActorID, table.Action, table.EntityType, table.EntityID, table.IPAddress, table.Details,
		table.ID, table.CreatedAt,
	)

	err := store.base.DB().QueryRow(context, query,
		entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, entry.IPAddress, entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_audit_entry")
	}
	return nil
}

// List returns entries newest first.
func (store *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) (repository.Page[Entry], error) {
	table := schema.InventoryAuditLog

	var (
		conditions []string
		args       []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.EntityType != "" {
		add(table.EntityType, filter.EntityType)
	}
	if filter.EntityID > 0 {
		add(table.EntityID, filter.EntityID)
	}
	if filter.ActorID > 0 {
		add(table.ActorID, filter.ActorID)
	}
	if filter.Action != "" {
		add(table.Action, filter.Action)
	}

	return store.base.FindWhere(context, strings.Join(conditions, " AND "), args, limit, offset)
}
