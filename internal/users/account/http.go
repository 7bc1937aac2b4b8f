// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stockroom/internal/platform/middleware"
	requestutil "github.com/taibuivan/stockroom/internal/platform/request"
	"github.com/taibuivan/stockroom/internal/platform/respond"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

// Handler implements the HTTP layer for account administration.
type Handler struct {
	accountService *Service
	guards         *middleware.Guards
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, guards *middleware.Guards) *Handler {
	return &Handler{accountService: service, guards: guards}
}

// Routes returns a [chi.Router] configured with the account endpoints.
//
// # Endpoints
//   - GET    /                 : Lists accounts.
//   - GET    /{id}             : Returns one account.
//   - PATCH  /{id}/role        : Assigns a role.
//   - POST   /{id}/activate    : Re-enables an account.
//   - POST   /{id}/deactivate  : Blocks an account.
//   - DELETE /{id}             : Removes an account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.guards.RequireAdmin)

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}/role", handler.changeRole)
	router.Post("/{id}/activate", handler.activate)
	router.Post("/{id}/deactivate", handler.deactivate)
	router.Delete("/{id}", handler.remove)

	return router
}

/*
GET /api/v1/users.

Response:
  - 200: []auth.User with pagination meta
  - 403: Caller is not an administrator
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	page, err := handler.accountService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, pagination.NewMeta(params.Page, params.Limit, page.Total))
}

/*
GET /api/v1/users/{id}.

Response:
  - 200: auth.User
  - 404: User not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

/*
PATCH /api/v1/users/{id}/role.

Request:
  - body: {"role": "MANAGER"}

Response:
  - 200: auth.User
  - 400: Unknown role
  - 403: Caller targets their own account
  - 404: User not found
*/
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeRoleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.ChangeRole(request.Context(), id, input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// POST /api/v1/users/{id}/activate.
func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Activate(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// POST /api/v1/users/{id}/deactivate.
func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Deactivate(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{id}.

Response:
  - 204: No Content
  - 403: Caller targets their own account
  - 422: Account is referenced by stock movements
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
