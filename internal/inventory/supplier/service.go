// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package supplier

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

// Service implements supplier use cases.
type Service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a supplier [Service].
func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

func (service *Service) Get(context context.Context, id int64) (*Supplier, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) List(context context.Context, includeInactive bool, params pagination.Params) (repository.Page[Supplier], error) {
	return service.repo.List(context, !includeInactive, params.Limit, params.Offset())
}

func (service *Service) Create(context context.Context, input Input) (*Supplier, error) {
	supplier, err := build(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, supplier); err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.ActionCreate, audit.EntitySupplier, supplier.ID, map[string]any{"name": supplier.Name})
	return supplier, nil
}

func (service *Service) Update(context context.Context, id int64, input Input) (*Supplier, error) {
	supplier, err := build(input)
	if err != nil {
		return nil, err
	}
	supplier.ID = id

	updated, err := service.repo.Update(context, supplier)
	if err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.ActionUpdate, audit.EntitySupplier, id, nil)
	return updated, nil
}

func (service *Service) Activate(context context.Context, id int64) (*Supplier, error) {
	supplier, err := service.repo.SetActive(context, id, true)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionActivate, audit.EntitySupplier, id, nil)
	return supplier, nil
}

func (service *Service) Deactivate(context context.Context, id int64) (*Supplier, error) {
	supplier, err := service.repo.SetActive(context, id, false)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionDeactivate, audit.EntitySupplier, id, nil)
	return supplier, nil
}

// Delete removes a supplier. Suppliers still linked to products yield 422.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.recorder.Record(context, audit.ActionDelete, audit.EntitySupplier, id, nil)
	return nil
}

// build validates input. Blank optional fields are stored as NULL.
func build(input Input) (*Supplier, error) {
	supplier := &Supplier{
		Name:        strings.TrimSpace(input.Name),
		ContactName: pointer.Trim(input.ContactName),
		Email:       pointer.Trim(input.Email),
		Phone:       pointer.Trim(input.Phone),
		Address:     pointer.Trim(input.Address),
	}
	if supplier.Email != nil {
		lowered := strings.ToLower(*supplier.Email)
		supplier.Email = &lowered
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, supplier.Name).
		MaxLen(FieldName, supplier.Name, nameMaxLength).
		OptionalMaxLen(FieldContactName, supplier.ContactName, nameMaxLength).
		OptionalMaxLen(FieldPhone, supplier.Phone, phoneMaxLength).
		OptionalMaxLen(FieldAddress, supplier.Address, addressMaxLength)
	if supplier.Email != nil {
		validator.Email(FieldEmail, *supplier.Email)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return supplier, nil
}
