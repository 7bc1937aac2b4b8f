// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stockroom/internal/platform/middleware"
	requestutil "github.com/taibuivan/stockroom/internal/platform/request"
	"github.com/taibuivan/stockroom/internal/platform/respond"
	"github.com/taibuivan/stockroom/internal/platform/sec"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService  *Service
	authenticate func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler]. authenticate guards the routes that
// need a caller (logout, me).
func NewHandler(service *Service, authenticate func(http.Handler) http.Handler) *Handler {
	return &Handler{authService: service, authenticate: authenticate}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a token pair.
//   - POST /refresh  : Rotates a refresh token into a new pair.
//   - POST /logout   : Revokes the presented tokens.
//   - GET  /me       : Returns the caller's profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.authenticate)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request & Response Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresIn        int64     `json:"expires_in"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
	User             *User     `json:"user,omitempty"`
}

func newTokenResponse(pair sec.TokenPair, user *User) tokenResponse {
	expiresIn := int64(time.Until(pair.Access.ExpiresAt).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	return tokenResponse{
		AccessToken:      pair.Access.Value,
		RefreshToken:     pair.Refresh.Value,
		TokenType:        "Bearer",
		ExpiresIn:        expiresIn,
		ExpiresAt:        pair.Access.ExpiresAt,
		RefreshExpiresAt: pair.Refresh.ExpiresAt,
		User:             user,
	}
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Response:
  - 201: User: Created user profile
  - 400: Invalid JSON or validation failure
  - 409: Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and returns a token pair.

POST /api/v1/auth/login

Response:
  - 200: tokenResponse
  - 401: Invalid credentials
  - 403: Account deactivated
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newTokenResponse(session.Tokens, session.User))
}

/*
Refresh exchanges a refresh token for a new pair. The old refresh token is
revoked.

POST /api/v1/auth/refresh

Response:
  - 200: tokenResponse (without user)
  - 401: TOKEN_EXPIRED, TOKEN_REVOKED or INVALID_TOKEN
  - 403: Account deactivated
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var input refreshRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Refresh(request.Context(), input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newTokenResponse(pair, nil))
}

/*
Logout revokes the bearer token and the optional refresh token in the body.

POST /api/v1/auth/logout

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	accessToken, _ := middleware.BearerToken(request)

	var input refreshRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	if err := handler.authService.Logout(request.Context(), identity.SubjectID, accessToken, input.RefreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Me returns the authenticated caller's profile.

GET /api/v1/auth/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), identity.SubjectID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
