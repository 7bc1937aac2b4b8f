// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Payload

// TokenPayload is what callers ask to have signed.
//
// It is validated once, at the [TokenService] boundary, against the struct
// tags below. Internal components only ever see an already valid payload.
type TokenPayload struct {
	SubjectID int64    `json:"subject_id" validate:"required,gt=0"`
	Email     string   `json:"email"      validate:"required,email"`
	Role      UserRole `json:"role"       validate:"required,role"`
}

// tokenClaims is the JWT body. Custom claims are abbreviated to keep the
// token small.
type tokenClaims struct {
	jwt.RegisteredClaims

	SubjectID int64        `json:"uid"`
	Email     string       `json:"eml"`
	Role      UserRole     `json:"rol"`
	Purpose   TokenPurpose `json:"pur"`
}

func (c *tokenClaims) issuedAt() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

func (c *tokenClaims) expiresAt() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// # Unverified Claims

// UnverifiedClaims is the body of a token read WITHOUT checking its
// signature. It is good for introspection (expiry, revocation bookkeeping)
// and nothing else: it cannot be turned into an [Identity].
type UnverifiedClaims struct {
	TokenID   string
	SubjectID int64
	Email     string
	Role      UserRole
	Purpose   TokenPurpose
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func unverifiedFrom(c *tokenClaims) UnverifiedClaims {
	return UnverifiedClaims{
		TokenID:   c.ID,
		SubjectID: c.SubjectID,
		Email:     c.Email,
		Role:      c.Role,
		Purpose:   c.Purpose,
		IssuedAt:  c.issuedAt(),
		ExpiresAt: c.expiresAt(),
	}
}

// Payload returns the subject part of the claims.
func (c UnverifiedClaims) Payload() TokenPayload {
	return TokenPayload{SubjectID: c.SubjectID, Email: c.Email, Role: c.Role}
}

// # Verified Payload

// VerifiedPayload is the body of a token whose signature, expiry and purpose
// have all been checked by [Codec.Verify]. Its fields are unexported so the
// only way to obtain one is through verification.
type VerifiedPayload struct {
	claims tokenClaims
}

// TokenID returns the jti claim.
func (p VerifiedPayload) TokenID() string { return p.claims.ID }

// SubjectID returns the account identifier the token was issued to.
func (p VerifiedPayload) SubjectID() int64 { return p.claims.SubjectID }

// Email returns the email claim.
func (p VerifiedPayload) Email() string { return p.claims.Email }

// Role returns the role claim.
func (p VerifiedPayload) Role() UserRole { return p.claims.Role }

// Purpose returns the purpose the token was minted for.
func (p VerifiedPayload) Purpose() TokenPurpose { return p.claims.Purpose }

// IssuedAt returns the iat claim.
func (p VerifiedPayload) IssuedAt() time.Time { return p.claims.issuedAt() }

// ExpiresAt returns the exp claim.
func (p VerifiedPayload) ExpiresAt() time.Time { return p.claims.expiresAt() }

// Payload returns the subject part of the claims.
func (p VerifiedPayload) Payload() TokenPayload {
	return TokenPayload{SubjectID: p.claims.SubjectID, Email: p.claims.Email, Role: p.claims.Role}
}

// Identity builds the request identity attached by the authentication middleware.
func (p VerifiedPayload) Identity(now time.Time) *Identity {
	return &Identity{
		ID:           strconv.FormatInt(p.claims.SubjectID, 10),
		SubjectID:    p.claims.SubjectID,
		Email:        p.claims.Email,
		Role:         p.claims.Role,
		TokenID:      p.claims.ID,
		LastActivity: now,
		ExpiresAt:    p.claims.expiresAt(),
	}
}

// # Identity

// Identity is the authenticated caller, reconstructed from a verified access
// token without touching the database.
type Identity struct {
	ID           string    `json:"id"`
	SubjectID    int64     `json:"subject_id"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	TokenID      string    `json:"-"`
	LastActivity time.Time `json:"last_activity"`
	ExpiresAt    time.Time `json:"expires_at"`

	// ExpiringSoon is advisory: the token is still valid but close to expiry.
	ExpiringSoon bool `json:"expiring_soon"`
}
