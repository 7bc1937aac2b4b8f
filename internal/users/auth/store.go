// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given (lower-cased) email.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	// EmailExists reports whether an account already uses email.
	EmailExists(context context.Context, email string) (bool, error)

	/*
		Create persists a new account and fills ID and timestamps.

		Returns:
		  - error: apperr.Conflict on a duplicate email, or storage failures
	*/
	Create(context context.Context, user *User) error

	// TouchLastLogin stamps the account's last successful login.
	TouchLastLogin(context context.Context, id int64) error

	// List returns one page of accounts ordered by ID.
	List(context context.Context, limit, offset int) (repository.Page[User], error)

	// UpdateRole changes the account's role and returns the updated row.
	UpdateRole(context context.Context, id int64, role sec.UserRole) (*User, error)

	// SetActive enables or disables the account.
	SetActive(context context.Context, id int64, active bool) (*User, error)

	// Delete removes the account.
	Delete(context context.Context, id int64) error
}
