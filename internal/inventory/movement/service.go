// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movement

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/taibuivan/stockroom/internal/inventory/audit"
	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/validate"
	"github.com/taibuivan/stockroom/pkg/pagination"
	"github.com/taibuivan/stockroom/pkg/pointer"
	"github.com/taibuivan/stockroom/pkg/reference"
)

// Service implements movement use cases.
type Service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a movement [Service].
func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

// GetByReference looks a movement up by its MV reference. Strings that are
// not well-formed references are reported as not found without a query.
func (service *Service) GetByReference(context context.Context, ref string) (*Movement, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if !strings.HasPrefix(ref, referencePrefix+"-") || reference.Time(ref).IsZero() {
		return nil, apperr.NotFound("Movement")
	}
	return service.repo.FindByReference(context, ref)
}

func (service *Service) List(context context.Context, filter Filter, params pagination.Params) (repository.Page[Movement], error) {
	filter.Type = normalizeType(filter.Type)
	if filter.Type != "" && !filter.Type.Valid() {
		return repository.Page[Movement]{}, apperr.ValidationError("Unknown movement type",
			apperr.FieldError{Field: FieldType, Message: "Must be one of: IN, OUT, TRANSFER, ADJUSTMENT"})
	}
	return service.repo.List(context, filter, params.Limit, params.Offset())
}

/*
Record applies a stock movement and appends it to the ledger.

Description: The product row is locked for the duration of the transaction,
so concurrent movements on one product apply one after another.

Returns:
  - *Movement: The stored ledger entry
  - error: Unauthorized (no caller), Validation, NotFound (product),
    Unprocessable (inactive product, insufficient stock, bad transfer) or storage errors
*/
func (service *Service) Record(context context.Context, input Input) (*Movement, error) {
	identity := ctxutil.GetIdentity(context)
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	input.Type = normalizeType(input.Type)
	input.Note = pointer.Trim(input.Note)
	if err := check(input); err != nil {
		return nil, err
	}

	movement := &Movement{
		Reference:    reference.New(referencePrefix),
		ProductID:    input.ProductID,
		Type:         input.Type,
		Quantity:     input.Quantity,
		ToLocationID: input.ToLocationID,
		Note:         input.Note,
		CreatedBy:    identity.SubjectID,
	}

	err := service.repo.InTx(context, func(ledger Ledger) error {
		stock, err := ledger.LockStock(context, input.ProductID)
		if err != nil {
			return err
		}

		location, err := apply(movement, stock)
		if err != nil {
			return err
		}

		if err := ledger.UpdateStock(context, stock.ProductID, movement.QuantityAfter, location); err != nil {
			return err
		}
		return ledger.Insert(context, movement)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("stock_moved",
		slog.String("reference", movement.Reference),
		slog.Int64("product_id", movement.ProductID),
		slog.String("type", string(movement.Type)),
		slog.Int("before", movement.QuantityBefore),
		slog.Int("after", movement.QuantityAfter),
	)
	service.recorder.Record(context, audit.ActionMovement, audit.EntityMovement, movement.ID, map[string]any{
		"reference":  movement.Reference,
		"product_id": movement.ProductID,
		"type":       movement.Type,
		"quantity":   movement.Quantity,
	})

	return movement, nil
}

// apply computes the stock change against the locked state. It fills the
// before/after and location fields of movement and returns the product's new location.
func apply(movement *Movement, stock *Stock) (*int64, error) {
	if !stock.IsActive {
		return nil, apperr.Unprocessable("Product is deactivated")
	}

	movement.QuantityBefore = stock.Quantity
	location := stock.LocationID

	var delta int
	switch movement.Type {
	case TypeIn:
		delta = movement.Quantity
		movement.ToLocationID = stock.LocationID
	case TypeOut:
		delta = -movement.Quantity
		movement.FromLocationID = stock.LocationID
	case TypeAdjustment:
		delta = movement.Quantity
		movement.FromLocationID = stock.LocationID
	case TypeTransfer:
		if err := transfer(movement, stock); err != nil {
			return nil, err
		}
		location = movement.ToLocationID
	}

	after := int64(stock.Quantity) + int64(delta)
	if after < 0 {
		return nil, apperr.Unprocessable(fmt.Sprintf("Insufficient stock: %d on hand, %d requested", stock.Quantity, -delta))
	}
	if after > math.MaxInt32 {
		return nil, apperr.Unprocessable("Resulting stock exceeds the supported maximum")
	}
	movement.QuantityAfter = int(after)

	return location, nil
}

// transfer moves the whole on-hand quantity. A zero request quantity means
// "everything"; any other value must match the stock exactly.
func transfer(movement *Movement, stock *Stock) error {
	if stock.Quantity == 0 {
		return apperr.Unprocessable("Product holds no stock; update its location instead")
	}
	if movement.Quantity != 0 && movement.Quantity != stock.Quantity {
		return apperr.Unprocessable(fmt.Sprintf("Transfers move the full stock of %d units", stock.Quantity))
	}
	if stock.LocationID != nil && *stock.LocationID == *movement.ToLocationID {
		return apperr.Unprocessable("Product is already at this location")
	}

	movement.Quantity = stock.Quantity
	movement.FromLocationID = stock.LocationID
	return nil
}

// # Validation

func check(input Input) error {
	validator := &validate.Validator{}
	validator.ID(FieldProductID, input.ProductID).
		OneOf(FieldType, string(input.Type), string(TypeIn), string(TypeOut), string(TypeTransfer), string(TypeAdjustment))

	switch input.Type {
	case TypeIn, TypeOut:
		validator.Custom(FieldQuantity, input.Quantity <= 0, "Must be a positive integer").
			Custom(FieldToLocationID, input.ToLocationID != nil, "Only transfers take a destination")
	case TypeAdjustment:
		validator.Custom(FieldQuantity, input.Quantity == 0, "Must not be zero").
			Custom(FieldToLocationID, input.ToLocationID != nil, "Only transfers take a destination")
	case TypeTransfer:
		validator.Custom(FieldQuantity, input.Quantity < 0, "Must not be negative").
			Custom(FieldToLocationID, input.ToLocationID == nil || *input.ToLocationID <= 0, "This field is required")
	}

	validator.OptionalMaxLen(FieldNote, input.Note, noteMaxLength)
	return validator.Err()
}

func normalizeType(value Type) Type {
	return Type(strings.ToUpper(strings.TrimSpace(string(value))))
}
