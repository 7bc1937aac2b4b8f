// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/stockroom/internal/inventory/audit"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/validate"
	"github.com/taibuivan/stockroom/pkg/pagination"
	"github.com/taibuivan/stockroom/pkg/pointer"
)

// Service implements product use cases.
type Service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a product [Service].
func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

func (service *Service) Get(context context.Context, id int64) (*Product, error) {
	return service.repo.FindByID(context, id)
}

// GetBySKU looks a product up by SKU, case-insensitively.
func (service *Service) GetBySKU(context context.Context, sku string) (*Product, error) {
	return service.repo.FindBySKU(context, normalizeSKU(sku))
}

func (service *Service) List(context context.Context, filter Filter, params pagination.Params) (repository.Page[Product], error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return service.repo.List(context, filter, params.Limit, params.Offset())
}

/*
Create validates and stores a new product with zero stock.

Returns:
  - *Product: Stored entity
  - error: Validation, Conflict (SKU), Unprocessable (unknown category,
    supplier or location) or storage errors
*/
func (service *Service) Create(context context.Context, input Input) (*Product, error) {
	product, err := build(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, product); err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.ActionCreate, audit.EntityProduct, product.ID, map[string]any{"sku": product.SKU})
	return product, nil
}

// Update replaces the writable fields of a product. Stock is not affected.
func (service *Service) Update(context context.Context, id int64, input Input) (*Product, error) {
	product, err := build(input)
	if err != nil {
		return nil, err
	}
	product.ID = id

	updated, err := service.repo.Update(context, product)
	if err != nil {
		return nil, err
	}

	service.recorder.Record(context, audit.ActionUpdate, audit.EntityProduct, id, map[string]any{"sku": updated.SKU})
	return updated, nil
}

func (service *Service) Activate(context context.Context, id int64) (*Product, error) {
	product, err := service.repo.SetActive(context, id, true)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionActivate, audit.EntityProduct, id, nil)
	return product, nil
}

func (service *Service) Deactivate(context context.Context, id int64) (*Product, error) {
	product, err := service.repo.SetActive(context, id, false)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionDeactivate, audit.EntityProduct, id, nil)
	return product, nil
}

// Delete removes a product together with its movement history.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.logger.Info("product_deleted", slog.Int64("product_id", id))
	service.recorder.Record(context, audit.ActionDelete, audit.EntityProduct, id, nil)
	return nil
}

// # Validation

func build(input Input) (*Product, error) {
	product := &Product{
		SKU:          normalizeSKU(input.SKU),
		Name:         strings.TrimSpace(input.Name),
		Description:  pointer.Trim(input.Description),
		CategoryID:   input.CategoryID,
		SupplierID:   input.SupplierID,
		LocationID:   input.LocationID,
		UnitCost:     input.UnitCost,
		UnitPrice:    input.UnitPrice,
		ReorderLevel: input.ReorderLevel,
	}

	validator := &validate.Validator{}
	validator.Required(FieldSKU, product.SKU).
		MaxLen(FieldSKU, product.SKU, skuMaxLength).
		Match(FieldSKU, product.SKU, skuPattern, "Use letters, digits and single - _ . separators").
		Required(FieldName, product.Name).
		MaxLen(FieldName, product.Name, nameMaxLength).
		OptionalMaxLen(FieldDescription, product.Description, descriptionMaxLength).
		ID(FieldCategoryID, product.CategoryID).
		OptionalID(FieldSupplierID, product.SupplierID).
		OptionalID(FieldLocationID, product.LocationID).
		NonNegative(FieldReorderLevel, product.ReorderLevel)

	checkMoney(validator, FieldUnitCost, product.UnitCost)
	checkMoney(validator, FieldUnitPrice, product.UnitPrice)

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return product, nil
}

func checkMoney(validator *validate.Validator, field string, amount decimal.Decimal) {
	validator.
		Custom(field, amount.IsNegative(), "Must not be negative").
		Custom(field, !amount.Equal(amount.Round(moneyScale)), fmt.Sprintf("At most %d decimal places", moneyScale)).
		Custom(field, amount.GreaterThanOrEqual(maxMoney), "Amount is too large")
}

func normalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
