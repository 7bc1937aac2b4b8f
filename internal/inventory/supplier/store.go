// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package supplier

import (
	"context"

	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// Repository persists suppliers.
type Repository interface {
	FindByID(context context.Context, id int64) (*Supplier, error)
	List(context context.Context, activeOnly bool, limit, offset int) (repository.Page[Supplier], error)
	Create(context context.Context, supplier *Supplier) error
	Update(context context.Context, supplier *Supplier) (*Supplier, error)
	SetActive(context context.Context, id int64, active bool) (*Supplier, error)
	Delete(context context.Context, id int64) error
}
