// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stockroom/internal/platform/middleware"
	requestutil "github.com/taibuivan/stockroom/internal/platform/request"
	"github.com/taibuivan/stockroom/internal/platform/respond"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

// Handler implements the movement endpoints.
type Handler struct {
	service *Service
	guards  *middleware.Guards
}

// NewHandler constructs a movement [Handler].
func NewHandler(service *Service, guards *middleware.Guards) *Handler {
	return &Handler{service: service, guards: guards}
}

// Routes returns the movement router. The ledger is append-only.
//
// # Endpoints
//   - GET  /              : Lists movements (?product_id, type).
//   - GET  /{reference}   : Returns one movement.
//   - POST /              : Records a movement.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	guards := handler.guards

	router.With(guards.RequireReadPermissions).Get("/", handler.list)
	router.With(guards.RequireReadPermissions).Get("/{reference}", handler.get)
	router.With(guards.RequireWritePermissions).Post("/", handler.create)

	return router
}

/*
GET /api/v1/movements.

Request:
  - product_id: int64 (optional)
  - type: IN | OUT | TRANSFER | ADJUSTMENT (optional)

Response:
  - 200: []Movement with pagination meta, newest first
  - 400: Bad product_id or type
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	productID, err := requestutil.QueryInt64(request, "product_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{ProductID: productID, Type: Type(request.URL.Query().Get("type"))}
	params := pagination.FromRequest(request)

	page, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, pagination.NewMeta(params.Page, params.Limit, page.Total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	movement, err := handler.service.GetByReference(request.Context(), requestutil.Param(request, "reference"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, movement)
}

/*
POST /api/v1/movements.

Request:
  - product_id: int64
  - type: IN | OUT | TRANSFER | ADJUSTMENT
  - quantity: int (signed for ADJUSTMENT, optional for TRANSFER)
  - to_location_id: int64 (TRANSFER only)
  - note: string (optional)

Response:
  - 201: Movement
  - 400: Validation failure
  - 404: Product not found
  - 422: Inactive product, insufficient stock or invalid transfer
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movement, err := handler.service.Record(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, movement)
}
