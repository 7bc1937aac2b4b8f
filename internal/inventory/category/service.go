// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/stockroom/internal/inventory/audit"
	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/validate"
	"github.com/taibuivan/stockroom/pkg/pagination"
	"github.com/taibuivan/stockroom/pkg/pointer"
	"github.com/taibuivan/stockroom/pkg/slug"
)

// Service implements category use cases.
type Service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a category [Service].
func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

func (service *Service) Get(context context.Context, id int64) (*Category, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) GetBySlug(context context.Context, slug string) (*Category, error) {
	return service.repo.FindBySlug(context, slug)
}

// List returns one page of categories. Inactive ones are included only when
// includeInactive is set.
func (service *Service) List(context context.Context, includeInactive bool, params pagination.Params) (repository.Page[Category], error) {
	return service.repo.List(context, !includeInactive, params.Limit, params.Offset())
}

/*
Create validates input and stores a new category.

Description: The slug is derived from the name. Two names that produce the
same slug conflict.

Returns:
  - *Category: Stored entity
  - error: Validation, Conflict or storage errors
*/
func (service *Service) Create(context context.Context, input Input) (*Category, error) {
	category, err := service.prepare(context, 0, input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.ActionCreate, audit.EntityCategory, category.ID, map[string]any{"slug": category.Slug})
	return category, nil
}

// Update replaces the writable fields of a category. Renaming re-derives the slug.
func (service *Service) Update(context context.Context, id int64, input Input) (*Category, error) {
	if _, err := service.repo.FindByID(context, id); err != nil {
		return nil, err
	}

	category, err := service.prepare(context, id, input)
	if err != nil {
		return nil, err
	}
	category.ID = id

	updated, err := service.repo.Update(context, category)
	if err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.ActionUpdate, audit.EntityCategory, id, map[string]any{"slug": updated.Slug})
	return updated, nil
}

func (service *Service) Activate(context context.Context, id int64) (*Category, error) {
	category, err := service.repo.SetActive(context, id, true)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionActivate, audit.EntityCategory, id, nil)
	return category, nil
}

func (service *Service) Deactivate(context context.Context, id int64) (*Category, error) {
	category, err := service.repo.SetActive(context, id, false)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionDeactivate, audit.EntityCategory, id, nil)
	return category, nil
}

// Delete removes a category. Categories still holding products yield 422.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.recorder.Record(context, audit.ActionDelete, audit.EntityCategory, id, nil)
	return nil
}

// prepare validates input and builds the entity to persist for id (0 on create).
func (service *Service) prepare(context context.Context, id int64, input Input) (*Category, error) {
	name := strings.TrimSpace(input.Name)
	description := pointer.Trim(input.Description)

	validator := &validate.Validator{}
	categorySlug := slug.From(name)
	validator.Required(FieldName, name).
		MaxLen(FieldName, name, nameMaxLength).
		Custom(FieldName, categorySlug == "", "Must contain at least one letter or digit").
		OptionalMaxLen(FieldDescription, description, descriptionMaxLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	taken, err := service.repo.SlugTaken(context, categorySlug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("A category with this name already exists")
	}

	return &Category{Name: name, Slug: categorySlug, Description: description}, nil
}
