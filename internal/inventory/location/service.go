// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package location

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/stockroom/internal/inventory/audit"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/validate"
	"github.com/taibuivan/stockroom/pkg/pagination"
	"github.com/taibuivan/stockroom/pkg/pointer"
)

// Service implements location use cases.
type Service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a location [Service].
func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

func (service *Service) Get(context context.Context, id int64) (*Location, error) {
	return service.repo.FindByID(context, id)
}

// GetByCode looks a location up by its label code, case-insensitively.
func (service *Service) GetByCode(context context.Context, code string) (*Location, error) {
	return service.repo.FindByCode(context, normalizeCode(code))
}

func (service *Service) List(context context.Context, includeInactive bool, params pagination.Params) (repository.Page[Location], error) {
	return service.repo.List(context, !includeInactive, params.Limit, params.Offset())
}

func (service *Service) Create(context context.Context, input Input) (*Location, error) {
	location, err := build(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, location); err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.ActionCreate, audit.EntityLocation, location.ID, map[string]any{"code": location.Code})
	return location, nil
}

func (service *Service) Update(context context.Context, id int64, input Input) (*Location, error) {
	location, err := build(input)
	if err != nil {
		return nil, err
	}
	location.ID = id

	updated, err := service.repo.Update(context, location)
	if err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.ActionUpdate, audit.EntityLocation, id, map[string]any{"code": updated.Code})
	return updated, nil
}

func (service *Service) Activate(context context.Context, id int64) (*Location, error) {
	location, err := service.repo.SetActive(context, id, true)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionActivate, audit.EntityLocation, id, nil)
	return location, nil
}

func (service *Service) Deactivate(context context.Context, id int64) (*Location, error) {
	location, err := service.repo.SetActive(context, id, false)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionDeactivate, audit.EntityLocation, id, nil)
	return location, nil
}

// Delete removes a location. Locations holding products or named by past
// movements yield 422.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.recorder.Record(context, audit.ActionDelete, audit.EntityLocation, id, nil)
	return nil
}

func build(input Input) (*Location, error) {
	location := &Location{
		Code:        normalizeCode(input.Code),
		Name:        strings.TrimSpace(input.Name),
		Description: pointer.Trim(input.Description),
	}

	validator := &validate.Validator{}
	validator.Required(FieldCode, location.Code).
		MaxLen(FieldCode, location.Code, codeMaxLength).
		Match(FieldCode, location.Code, codePattern, "Use letters, digits, dots and hyphens only").
		Required(FieldName, location.Name).
		MaxLen(FieldName, location.Name, nameMaxLength).
		OptionalMaxLen(FieldDescription, location.Description, descriptionMaxLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return location, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
