// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"log/slog"

	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

// Service records and lists audit entries.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs an audit [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
Record writes one audit entry.

Description: The actor and client address are taken from the request
context. Failures are logged and never returned.

Parameters:
  - context: context.Context
  - action: string (ActionCreate, ActionUpdate, ...)
  - entityType: string (EntityProduct, ...)
  - entityID: int64 (0 when the action has no target row)
  - details: map[string]any (optional)
*/
func (service *Service) Record(context context.Context, action, entityType string, entityID int64, details map[string]any) {
	entry := &Entry{
		Action:     action,
		EntityType: entityType,
		Details:    details,
	}

	if identity := ctxutil.GetIdentity(context); identity != nil {
		actorID := identity.SubjectID
		entry.ActorID = &actorID
	}
	if entityID > 0 {
		entry.EntityID = &entityID
	}
	if ip := ctxutil.GetClientIP(context); ip != "" {
		entry.IPAddress = &ip
	}

	if err := service.repository.Insert(context, entry); err != nil {
		service.logger.WarnContext(context, "audit_record_failed",
			slog.String("request_id", ctxutil.GetRequestID(context)),
			slog.String("action", action),
			slog.String("entity_type", entityType),
			slog.Int64("entity_id", entityID),
			slog.Any("error", err),
		)
	}
}

// List returns one page of entries matching filter.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) (repository.Page[Entry], error) {
	return service.repository.List(context, filter, params.Limit, params.Offset())
}
