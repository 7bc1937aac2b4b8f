// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/stockroom/internal/inventory/audit"
	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/constants"
	"github.com/taibuivan/stockroom/internal/platform/middleware"
	"github.com/taibuivan/stockroom/internal/platform/sec"
	"github.com/taibuivan/stockroom/internal/platform/validate"
)

// # Contracts & Types

// TokenIssuer is the subset of [sec.TokenService] the auth flows use.
type TokenIssuer interface {
	IssuePair(context context.Context, payload sec.TokenPayload) (sec.TokenPair, error)
	RotateRefreshTokenWith(context context.Context, refreshToken string, resolve sec.PayloadResolver) (sec.TokenPair, error)
	RevokeToken(context context.Context, token string) error
}

// Service implements user authentication use cases.
type Service struct {
	users    UserRepository
	tokens   TokenIssuer
	recorder audit.Recorder
	logger   *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(users UserRepository, tokens TokenIssuer, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		recorder: recorder,
		logger:   logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: New accounts always start with the USER role and active.
Promotion is an administrative action.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Validation, Conflict (email taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Email = normalizeEmail(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, constants.PasswordMinLength).
		Custom(FieldPassword, len(input.Password) > sec.PasswordMaxBytes, fmt.Sprintf("Maximum %d bytes", sec.PasswordMaxBytes)).
		Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, fullNameMaxLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Cheap pre-check; the unique constraint still decides under races
	exists, err := service.users.EmailExists(context, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Email is already registered")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	user := &User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FullName:     input.FullName,
		Role:         sec.RoleUser,
		IsActive:     true,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.Int64("user_id", user.ID))
	service.recorder.Record(context, audit.ActionRegister, audit.EntityUser, user.ID, nil)

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Session is a successfully established login.
type Session struct {
	Tokens sec.TokenPair
	User   *User
}

/*
Login validates user credentials and issues an ACCESS/REFRESH token pair.

Description: Unknown email and wrong password return the same message to
prevent account enumeration. Deactivated accounts are refused only after
the password matched.

Returns:
  - *Session: Tokens and the user profile
  - error: Unauthorized, Forbidden (deactivated) or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByEmail(context, normalizeEmail(input.Email))
	if err != nil {
		if isNotFound(err) {
			sec.SpendPasswordCheck(input.Password)
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	if !user.IsActive {
		return nil, apperr.Forbidden("Account is deactivated")
	}

	pair, err := service.tokens.IssuePair(context, user.TokenPayload())
	if err != nil {
		return nil, tokenFailure(err)
	}

	if err := service.users.TouchLastLogin(context, user.ID); err != nil {
		service.logger.Warn("last_login_update_failed", slog.Int64("user_id", user.ID), slog.Any("error", err))
	}

	service.recorder.Record(context, audit.ActionLogin, audit.EntityUser, user.ID, nil)

	return &Session{Tokens: pair, User: user}, nil
}

// # Session Management

/*
Refresh rotates a refresh token into a new token pair.

Description: The refresh token is single use. The new pair is built from the
current user record, so role changes apply at the next refresh and
deactivated or deleted accounts cannot refresh at all.

Returns:
  - sec.TokenPair: The rotated tokens
  - error: TOKEN_EXPIRED, TOKEN_REVOKED, INVALID_TOKEN, Forbidden or internal failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (sec.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return sec.TokenPair{}, validate.Fail(FieldRefreshToken, "This field is required")
	}

	pair, err := service.tokens.RotateRefreshTokenWith(context, refreshToken, service.currentPayload)
	if err != nil {
		return sec.TokenPair{}, tokenFailure(err)
	}
	return pair, nil
}

// currentPayload reloads the subject of a verified refresh token.
func (service *Service) currentPayload(context context.Context, verified sec.VerifiedPayload) (sec.TokenPayload, error) {
	user, err := service.users.FindByID(context, verified.SubjectID())
	if err != nil {
		if isNotFound(err) {
			return sec.TokenPayload{}, apperr.Unauthorized("Account no longer exists")
		}
		return sec.TokenPayload{}, err
	}

	if !user.IsActive {
		return sec.TokenPayload{}, apperr.Forbidden("Account is deactivated")
	}

	return user.TokenPayload(), nil
}

/*
Logout revokes the presented access token and, when given, the refresh token.

Description: An undecodable refresh token is ignored so a client can always
log out. Storage failures are returned. userID is the authenticated caller
and becomes the audit entry's subject.
*/
func (service *Service) Logout(context context.Context, userID int64, accessToken, refreshToken string) error {
	if err := service.tokens.RevokeToken(context, accessToken); err != nil {
		return tokenFailure(err)
	}

	if refreshToken != "" {
		err := service.tokens.RevokeToken(context, refreshToken)
		if err != nil && !errors.Is(err, sec.ErrInvalidToken) {
			return tokenFailure(err)
		}
	}

	service.recorder.Record(context, audit.ActionLogout, audit.EntityUser, userID, nil)
	return nil
}

// Me returns the profile of the authenticated caller.
func (service *Service) Me(context context.Context, userID int64) (*User, error) {
	return service.users.FindByID(context, userID)
}

// # Helpers

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusNotFound
}

// tokenFailure maps token errors to API errors. A payload rejected while
// minting means a corrupt user record, not a client mistake.
func tokenFailure(err error) error {
	var validationError *sec.ValidationError
	switch {
	case apperr.IsAppError(err):
		return err
	case errors.As(err, &validationError):
		return apperr.Internal(fmt.Errorf("auth_service_invalid_token_payload: %w", err))
	default:
		return middleware.TokenError(err)
	}
}
