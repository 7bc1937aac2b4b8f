// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package location

import (
	"context"

	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// Repository persists locations.
type Repository interface {
	FindByID(context context.Context, id int64) (*Location, error)
	FindByCode(context context.Context, code string) (*Location, error)
	List(context context.Context, activeOnly bool, limit, offset int) (repository.Page[Location], error)
	Create(context context.Context, location *Location) error
	Update(context context.Context, location *Location) (*Location, error)
	SetActive(context context.Context, id int64, active bool) (*Location, error)
	Delete(context context.Context, id int64) error
}
