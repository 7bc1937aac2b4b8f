// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movement

import (
	"context"

	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// Repository reads the ledger and opens movement transactions.
type Repository interface {
	FindByReference(context context.Context, reference string) (*Movement, error)
	List(context context.Context, filter Filter, limit, offset int) (repository.Page[Movement], error)

	// InTx runs fn in one transaction. It commits when fn returns nil and
	// rolls back otherwise.
	InTx(context context.Context, fn func(ledger Ledger) error) error
}

// Ledger is the transactional view used while applying a movement.
type Ledger interface {
	// LockStock reads a product and holds its row lock until the transaction ends.
	LockStock(context context.Context, productID int64) (*Stock, error)
	UpdateStock(context context.Context, productID int64, quantity int, locationID *int64) error
	Insert(context context.Context, movement *Movement) error
}
