// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stockroom/internal/platform/middleware"
	requestutil "github.com/taibuivan/stockroom/internal/platform/request"
	"github.com/taibuivan/stockroom/internal/platform/respond"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

// Handler implements the product endpoints.
type Handler struct {
	service *Service
	guards  *middleware.Guards
}

// NewHandler constructs a product [Handler].
func NewHandler(service *Service, guards *middleware.Guards) *Handler {
	return &Handler{service: service, guards: guards}
}

// Routes returns the product router.
//
// # Endpoints
//   - GET    /                 : Lists products (?category_id, low_stock, q, include_inactive).
//   - GET    /{id}             : Returns one product.
//   - GET    /by-sku/{sku}     : Returns one product by SKU.
//   - POST   /                 : Creates a product.
//   - PUT    /{id}             : Replaces a product.
//   - POST   /{id}/activate    : Re-enables a product.
//   - POST   /{id}/deactivate  : Hides a product.
//   - DELETE /{id}             : Removes a product and its movements.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	guards := handler.guards

	router.With(guards.RequireReadPermissions).Get("/", handler.list)
	router.With(guards.RequireReadPermissions).Get("/{id}", handler.get)
	router.With(guards.RequireReadPermissions).Get("/by-sku/{sku}", handler.getBySKU)

	router.With(guards.RequireWritePermissions).Post("/", handler.create)
	router.With(guards.RequireWritePermissions).Put("/{id}", handler.update)

	router.With(guards.RequireSupervisor).Post("/{id}/activate", handler.activate)
	router.With(guards.RequireSupervisor).Post("/{id}/deactivate", handler.deactivate)

	router.With(guards.RequireManager).Delete("/{id}", handler.remove)

	return router
}

/*
GET /api/v1/products.

Request:
  - category_id: int64 (optional)
  - low_stock: bool (quantity at or below reorder level)
  - q: string (matches SKU or name)
  - include_inactive: bool

Response:
  - 200: []Product with pagination meta
  - 400: Non-numeric category_id
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.QueryInt64(request, "category_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		CategoryID:      categoryID,
		LowStock:        requestutil.QueryBool(request, "low_stock"),
		Query:           request.URL.Query().Get("q"),
		IncludeInactive: requestutil.QueryBool(request, "include_inactive"),
	}

	params := pagination.FromRequest(request)
	page, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, pagination.NewMeta(params.Page, params.Limit, page.Total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) getBySKU(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.service.GetBySKU(request.Context(), requestutil.Param(request, "sku"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

/*
POST /api/v1/products.

Response:
  - 201: Product
  - 400: Validation failure
  - 409: SKU already in use
  - 422: Unknown category, supplier or location
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, product)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Activate(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Deactivate(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

/*
DELETE /api/v1/products/{id}.

Response:
  - 204: No Content
  - 404: Product not found
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
