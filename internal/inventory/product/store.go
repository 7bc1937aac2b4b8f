// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"

	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// Repository persists products.
type Repository interface {
	FindByID(context context.Context, id int64) (*Product, error)
	FindBySKU(context context.Context, sku string) (*Product, error)
	List(context context.Context, filter Filter, limit, offset int) (repository.Page[Product], error)
	Create(context context.Context, product *Product) error
	Update(context context.Context, product *Product) (*Product, error)
	SetActive(context context.Context, id int64, active bool) (*Product, error)
	Delete(context context.Context, id int64) error
}
