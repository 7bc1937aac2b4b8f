// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stockroom/internal/platform/middleware"
	requestutil "github.com/taibuivan/stockroom/internal/platform/request"
	"github.com/taibuivan/stockroom/internal/platform/respond"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

// Handler exposes the audit trail.
type Handler struct {
	service *Service
	guards  *middleware.Guards
}

// NewHandler constructs the audit [Handler].
func NewHandler(service *Service, guards *middleware.Guards) *Handler {
	return &Handler{service: service, guards: guards}
}

// Routes returns the audit routes. AUDITOR and every higher rank may read.
//
// # Endpoints
//   - GET / : Lists entries, filterable by entity_type, entity_id, actor_id, action.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.guards.RequireAuditor)
	router.Get("/", handler.list)
	return router
}

/*
GET /api/v1/audit.

Response:
  - 200: []Entry with pagination meta
  - 400: Non-numeric entity_id or actor_id
  - 403: Caller ranks below AUDITOR
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	entityID, err := requestutil.QueryInt64(request, "entity_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actorID, err := requestutil.QueryInt64(request, "actor_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	filter := Filter{
		EntityType: strings.TrimSpace(query.Get("entity_type")),
		EntityID:   entityID,
		ActorID:    actorID,
		Action:     strings.ToUpper(strings.TrimSpace(query.Get("action"))),
	}

	params := pagination.FromRequest(request)
	page, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, pagination.NewMeta(params.Page, params.Limit, page.Total))
}
