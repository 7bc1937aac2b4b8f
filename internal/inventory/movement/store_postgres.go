// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movement

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/database/schema"
	"github.com/taibuivan/stockroom/internal/platform/dberr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// Database is a [repository.Querier] that can open transactions.
// Both [*pgxpool.Pool] and [pgx.Tx] satisfy it; on a pgx.Tx, Begin opens a savepoint.
type Database interface {
	repository.Querier
	Begin(context context.Context) (pgx.Tx, error)
}

// PostgresRepository implements [Repository] on inventory.movement.
type PostgresRepository struct {
	db   Database
	base *repository.Base[Movement]
}

// NewPostgresRepository creates the Postgres movement store.
func NewPostgresRepository(db Database) *PostgresRepository {
	return &PostgresRepository{db: db, base: newBase(db)}
}

func newBase(db repository.Querier) *repository.Base[Movement] {
	table := schema.InventoryMovement
	return repository.New[Movement](db, repository.Table{
		Name:       table.Table,
		Columns:    table.Columns(),
		ID:         table.ID,
		OrderBy:    table.CreatedAt + " DESC, " + table.ID + " DESC",
		Filterable: []string{table.Reference, table.ProductID},
	}, "Movement")
}

func (store *PostgresRepository) FindByReference(context context.Context, reference string) (*Movement, error) {
	matches, err := store.base.FindByField(context, schema.InventoryMovement.Reference, reference)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperr.NotFound("Movement")
	}
	return matches[0], nil
}

// List returns one page of the ledger, newest first.
func (store *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) (repository.Page[Movement], error) {
	table := schema.InventoryMovement

	var conditions []string
	var args []any
	if filter.ProductID > 0 {
		args = append(args, filter.ProductID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", table.ProductID, len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conditions = append(conditions, fmt.Sprintf("%s = $%d", table.Type, len(args)))
	}

	return store.base.FindWhere(context, strings.Join(conditions, " AND "), args, limit, offset)
}

/*
InTx runs fn inside one transaction.

Description: The transaction commits only when fn returns nil. Row locks
taken through the [Ledger] are held until then.
*/
func (store *PostgresRepository) InTx(context context.Context, fn func(ledger Ledger) error) error {
	transaction, err := store.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_movement")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if err := fn(&postgresLedger{tx: transaction}); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_movement")
}

// # Ledger

type postgresLedger struct {
	tx pgx.Tx
}

func (ledger *postgresLedger) LockStock(context context.Context, productID int64) (*Stock, error) {
	table := schema.InventoryProduct
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 FOR UPDATE`,
		table.ID, table.Quantity, table.LocationID, table.IsActive, table.Table, table.ID)

	var stock Stock
	err := ledger.tx.QueryRow(context, query, productID).
		Scan(&stock.ProductID, &stock.Quantity, &stock.LocationID, &stock.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Product")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "lock_stock")
	}
	return &stock, nil
}

func (ledger *postgresLedger) UpdateStock(context context.Context, productID int64, quantity int, locationID *int64) error {
	table := schema.InventoryProduct
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1`,
		table.Table, table.Quantity, table.LocationID, table.UpdatedAt, table.ID)

	tag, err := ledger.tx.Exec(context, query, productID, quantity, locationID)
	if err != nil {
		return dberr.Wrap(err, "update_stock")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}
	return nil
}

func (ledger *postgresLedger) Insert(context context.Context, movement *Movement) error {
	table := schema.InventoryMovement
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s`,
		table.Table,
		table.Reference, table.ProductID, table.Type, table.Quantity, table.QuantityBefore, table.QuantityAfter,
		table.FromLocationID, table.ToLocationID, table.Note, table.CreatedBy,
		table.ID, table.CreatedAt,
	)

	err := ledger.tx.QueryRow(context, query,
		movement.Reference, movement.ProductID, string(movement.Type), movement.Quantity,
		movement.QuantityBefore, movement.QuantityAfter,
		movement.FromLocationID, movement.ToLocationID, movement.Note, movement.CreatedBy,
	).Scan(&movement.ID, &movement.CreatedAt)

	return dberr.Wrap(err, "insert_movement")
}
