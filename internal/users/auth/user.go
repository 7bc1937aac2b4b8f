// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user identity: registration, credential checks and
the token session lifecycle (login, refresh rotation, logout).

# Architecture

  - Entity: [User], shared with the account administration package.
  - Service: Orchestrates registration and sessions on top of [sec.TokenService].
  - Repository: [UserRepository] with a Postgres implementation.

Tokens are stateless JWTs. Logging out revokes them in the revocation store
instead of deleting a server-side session.
*/
package auth

import (
	"time"

	"github.com/taibuivan/stockroom/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the inventory staff.
type User struct {
	ID           int64        `json:"id"            db:"id"`
	Email        string       `json:"email"         db:"email"`
	PasswordHash string       `json:"-"             db:"passwordhash"`
	FullName     string       `json:"full_name"     db:"fullname"`
	Role         sec.UserRole `json:"role"          db:"role"`
	IsActive     bool         `json:"is_active"     db:"isactive"`
	LastLoginAt  *time.Time   `json:"last_login_at" db:"lastloginat"`
	CreatedAt    time.Time    `json:"created_at"    db:"createdat"`
	UpdatedAt    time.Time    `json:"updated_at"    db:"updatedat"`
}

// TokenPayload returns the claims minted for this user.
func (user *User) TokenPayload() sec.TokenPayload {
	return sec.TokenPayload{
		SubjectID: user.ID,
		Email:     user.Email,
		Role:      user.Role,
	}
}

// # Field Identifiers

// Field names used in validation errors and JSON payloads.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFullName     = "full_name"
	FieldRefreshToken = "refresh_token"
)

// fullNameMaxLength bounds the display name.
const fullNameMaxLength = 120
