// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements administration of staff accounts: listing,
role assignment, activation and removal.

Every operation here is reserved to administrators. Accounts themselves are
created through self-registration in the auth package.
*/
package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/stockroom/internal/inventory/audit"
	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/sec"
	"github.com/taibuivan/stockroom/internal/platform/validate"
	"github.com/taibuivan/stockroom/internal/users/auth"
	"github.com/taibuivan/stockroom/pkg/pagination"
)

// FieldRole names the role field in validation errors.
const FieldRole = "role"

// # Service Layer

// Service orchestrates account administration.
type Service struct {
	users    auth.UserRepository
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(users auth.UserRepository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{users: users, recorder: recorder, logger: logger}
}

// List returns one page of accounts.
func (service *Service) List(context context.Context, params pagination.Params) (repository.Page[auth.User], error) {
	return service.users.List(context, params.Limit, params.Offset())
}

// Get returns one account.
func (service *Service) Get(context context.Context, id int64) (*auth.User, error) {
	return service.users.FindByID(context, id)
}

/*
ChangeRole assigns a new role to an account.

Description: The new role takes effect at the account's next login or token
refresh. Administrators cannot change their own role, which keeps at least
one administrator in place.

Parameters:
  - context: context.Context
  - id: int64 (target account)
  - roleName: string (case-insensitive role name)

Returns:
  - *auth.User: The updated account
  - error: Validation (unknown role), Forbidden (self), NotFound or storage errors
*/
func (service *Service) ChangeRole(context context.Context, id int64, roleName string) (*auth.User, error) {
	role, ok := sec.ParseRole(roleName)
	if !ok {
		return nil, validate.Fail(FieldRole, "Unknown role")
	}

	if err := refuseSelf(context, id, "You cannot change your own role"); err != nil {
		return nil, err
	}

	current, err := service.users.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if current.Role == role {
		return current, nil
	}

	user, err := service.users.UpdateRole(context, id, role)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_role_changed",
		slog.Int64("user_id", id),
		slog.String("from", current.Role.String()),
		slog.String("to", role.String()),
	)
	service.recorder.Record(context, audit.ActionRoleChange, audit.EntityUser, id, map[string]any{
		"from": current.Role,
		"to":   role,
	})

	return user, nil
}

// Activate re-enables a deactivated account.
func (service *Service) Activate(context context.Context, id int64) (*auth.User, error) {
	user, err := service.users.SetActive(context, id, true)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionActivate, audit.EntityUser, id, nil)
	return user, nil
}

/*
Deactivate blocks an account from logging in and refreshing.

Description: Access tokens already issued stay valid until they expire.
Refresh is refused immediately.
*/
func (service *Service) Deactivate(context context.Context, id int64) (*auth.User, error) {
	if err := refuseSelf(context, id, "You cannot deactivate your own account"); err != nil {
		return nil, err
	}

	user, err := service.users.SetActive(context, id, false)
	if err != nil {
		return nil, err
	}
	service.recorder.Record(context, audit.ActionDeactivate, audit.EntityUser, id, nil)
	return user, nil
}

// Delete removes an account. Accounts referenced by stock movements cannot
// be deleted and should be deactivated instead.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := refuseSelf(context, id, "You cannot delete your own account"); err != nil {
		return err
	}

	if err := service.users.Delete(context, id); err != nil {
		return err
	}
	service.recorder.Record(context, audit.ActionDelete, audit.EntityUser, id, nil)
	return nil
}

// # Helpers

func refuseSelf(context context.Context, id int64, message string) error {
	if identity := ctxutil.GetIdentity(context); identity != nil && identity.SubjectID == id {
		return apperr.Forbidden(message)
	}
	return nil
}
