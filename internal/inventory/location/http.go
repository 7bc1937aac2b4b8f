// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package location

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stockroom/internal/platform/middleware"
	requestutil "github.com/taibuivan/stockroom/internal/platform/request"
	"github.com/taibuivan/stockroom/internal/platform/respond"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

// Handler implements the location endpoints.
type Handler struct {
	service *Service
	guards  *middleware.Guards
}

// NewHandler constructs a location [Handler].
func NewHandler(service *Service, guards *middleware.Guards) *Handler {
	return &Handler{service: service, guards: guards}
}

// Routes returns the location router.
//
// # Endpoints
//   - GET    /                 : Lists locations (?include_inactive=true).
//   - GET    /{id}             : Returns one location.
//   - GET    /by-code/{code}   : Returns one location by label code.
//   - POST   /                 : Creates a location.
//   - PUT    /{id}             : Replaces a location.
//   - POST   /{id}/activate    : Re-enables a location.
//   - POST   /{id}/deactivate  : Hides a location.
//   - DELETE /{id}             : Removes an unused location.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	guards := handler.guards

	router.With(guards.RequireReadPermissions).Get("/", handler.list)
	router.With(guards.RequireReadPermissions).Get("/{id}", handler.get)
	router.With(guards.RequireReadPermissions).Get("/by-code/{code}", handler.getByCode)

	router.With(guards.RequireWritePermissions).Post("/", handler.create)
	router.With(guards.RequireWritePermissions).Put("/{id}", handler.update)

	router.With(guards.RequireSupervisor).Post("/{id}/activate", handler.activate)
	router.With(guards.RequireSupervisor).Post("/{id}/deactivate", handler.deactivate)

	router.With(guards.RequireManager).Delete("/{id}", handler.remove)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	page, err := handler.service.List(request.Context(), requestutil.QueryBool(request, "include_inactive"), params)
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

	location, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, location)
}

func (handler *Handler) getByCode(writer http.ResponseWriter, request *http.Request) {
	location, err := handler.service.GetByCode(request.Context(), requestutil.Param(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, location)
}

/*
POST /api/v1/locations.

Response:
  - 201: Location
  - 400: Validation failure
  - 409: Code already in use
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	location, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, location)
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

	location, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, location)
}

func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	location, err := handler.service.Activate(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, location)
}

func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	location, err := handler.service.Deactivate(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, location)
}

/*
DELETE /api/v1/locations/{id}.

Response:
  - 204: No Content
  - 422: Location holds products or appears in movements
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
