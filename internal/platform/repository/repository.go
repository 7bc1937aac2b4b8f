// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package repository provides the generic CRUD building block shared by every
Postgres store.

Each store embeds a [Base] for the operations that look the same for every
table (lookup, listing, existence checks, activation, deletion) and writes
its own Create/Update, which differ per entity.

Rows are mapped with [pgx.RowToAddrOfStructByName], so entity structs carry
`db` tags matching the column names declared in [Table].
*/
package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/dberr"
)

// Querier is the subset of pgx shared by [*pgxpool.Pool] and [pgx.Tx].
type Querier interface {
	Exec(context context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(context context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(context context.Context, sql string, arguments ...any) pgx.Row
}

// Table describes the columns a [Base] may touch.
type Table struct {
	// Name is the schema-qualified table name.
	Name string
	// Columns are selected in this order.
	Columns []string
	// ID is the primary key column.
	ID string
	// IsActive is the boolean status column. Empty disables Activate/Deactivate.
	IsActive string
	// UpdatedAt is bumped on status changes. May be empty.
	UpdatedAt string
	// OrderBy is the default ORDER BY expression for FindAll.
	OrderBy string
	// Filterable lists the columns FindByField/ExistsByField accept.
	Filterable []string
}

// Page is one slice of a listing plus the total row count.
type Page[T any] struct {
	Items []*T
	Total int
}

// Base implements the entity-independent operations of a store.
type Base[T any] struct {
	db       Querier
	table    Table
	resource string
}

// New creates a Base for table. resource names the entity in NOT_FOUND errors.
func New[T any](db Querier, table Table, resource string) *Base[T] {
	return &Base[T]{db: db, table: table, resource: resource}
}

// DB returns the underlying querier for entity-specific statements.
func (base *Base[T]) DB() Querier {
	return base.db
}

// Table returns the table description.
func (base *Base[T]) Table() Table {
	return base.table
}

// SelectColumns returns the comma separated column list.
func (base *Base[T]) SelectColumns() string {
	return strings.Join(base.table.Columns, ", ")
}

// # Reads

// FindByID returns the row with the given primary key.
func (base *Base[T]) FindByID(context context.Context, id int64) (*T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		base.SelectColumns(), base.table.Name, base.table.ID,
	)
	return base.QueryOne(context, base.action("find"), query, id)
}

// FindAll returns one page of rows ordered by the table's default order.
func (base *Base[T]) FindAll(context context.Context, limit, offset int) (Page[T], error) {
	return base.FindWhere(context, "", nil, limit, offset)
}

// FindWhere lists rows matching a caller-built condition. Placeholders in
// where must start at $1; limit and offset are appended after args.
func (base *Base[T]) FindWhere(context context.Context, where string, args []any, limit, offset int) (Page[T], error) {
	condition := ""
	if where != "" {
		condition = " WHERE " + where
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s%s`, base.table.Name, condition)
	if err := base.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return Page[T]{}, dberr.Wrap(err, base.action("count"))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		base.SelectColumns(), base.table.Name, condition, base.orderBy(), len(args)+1, len(args)+2,
	)
	items, err := base.QueryMany(context, base.action("list"), query, append(slices.Clone(args), limit, offset)...)
	if err != nil {
		return Page[T]{}, err
	}

	return Page[T]{Items: items, Total: total}, nil
}

// FindByField returns every row whose field equals value. The field must be
// declared in [Table.Filterable].
func (base *Base[T]) FindByField(context context.Context, field string, value any) ([]*T, error) {
	if err := base.checkField(field); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		base.SelectColumns(), base.table.Name, field, base.orderBy(),
	)
	return base.QueryMany(context, base.action("find")+"_by_"+field, query, value)
}

// ExistsByField reports whether any row has field equal to value.
func (base *Base[T]) ExistsByField(context context.Context, field string, value any) (bool, error) {
	if err := base.checkField(field); err != nil {
		return false, err
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, base.table.Name, field)

	var found bool
	if err := base.db.QueryRow(context, query, value).Scan(&found); err != nil {
		return false, dberr.Wrap(err, base.action("exists"))
	}
	return found, nil
}

// # Writes

// Delete removes the row with the given primary key.
func (base *Base[T]) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, base.table.Name, base.table.ID)

	cmd, err := base.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, base.action("delete"))
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(base.resource)
	}
	return nil
}

// Activate sets the status column to true.
func (base *Base[T]) Activate(context context.Context, id int64) (*T, error) {
	return base.setActive(context, id, true)
}

// Deactivate sets the status column to false.
func (base *Base[T]) Deactivate(context context.Context, id int64) (*T, error) {
	return base.setActive(context, id, false)
}

func (base *Base[T]) setActive(context context.Context, id int64, active bool) (*T, error) {
	if base.table.IsActive == "" {
		return nil, apperr.Internal(fmt.Errorf("repository: %s has no status column", base.table.Name))
	}

	assignments := base.table.IsActive + " = $2"
	if base.table.UpdatedAt != "" {
		assignments += ", " + base.table.UpdatedAt + " = NOW()"
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		base.table.Name, assignments, base.table.ID, base.SelectColumns(),
	)
	return base.QueryOne(context, base.action("set_active"), query, id, active)
}

// # Row Mapping

// QueryOne runs query and maps exactly one row.
func (base *Base[T]) QueryOne(context context.Context, action, query string, args ...any) (*T, error) {
	rows, err := base.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(base.resource)
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return item, nil
}

// QueryMany runs query and maps every row.
func (base *Base[T]) QueryMany(context context.Context, action, query string, args ...any) ([]*T, error) {
	rows, err := base.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return items, nil
}

func (base *Base[T]) action(verb string) string {
	return verb + "_" + strings.ToLower(base.resource)
}

func (base *Base[T]) orderBy() string {
	if base.table.OrderBy != "" {
		return base.table.OrderBy
	}
	return base.table.ID
}

func (base *Base[T]) checkField(field string) error {
	if !slices.Contains(base.table.Filterable, field) {
		return apperr.Internal(fmt.Errorf("repository: field %q is not filterable on %s", field, base.table.Name))
	}
	return nil
}
