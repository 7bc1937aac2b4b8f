// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"

	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// Repository persists categories.
type Repository interface {
	FindByID(context context.Context, id int64) (*Category, error)
	FindBySlug(context context.Context, slug string) (*Category, error)
	List(context context.Context, activeOnly bool, limit, offset int) (repository.Page[Category], error)
	SlugTaken(context context.Context, slug string, exceptID int64) (bool, error)
	Create(context context.Context, category *Category) error
	Update(context context.Context, category *Category) (*Category, error)
	SetActive(context context.Context, id int64, active bool) (*Category, error)
	Delete(context context.Context, id int64) error
}
