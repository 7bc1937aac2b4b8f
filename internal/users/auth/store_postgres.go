// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/database/schema"
	"github.com/taibuivan/stockroom/internal/platform/dberr"
	"github.com/taibuivan/stockroom/internal/platform/repository"
	"github.com/taibuivan/stockroom/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	base *repository.Base[User]
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db repository.Querier) *PostgresUserRepository {
	table := schema.UserAccount
	return &PostgresUserRepository{
		base: repository.New[User](db, repository.Table{
			Name:       table.Table,
			Columns:    table.Columns(),
			ID:         table.ID,
			IsActive:   table.IsActive,
			UpdatedAt:  table.UpdatedAt,
			OrderBy:    table.ID,
			Filterable: []string{table.Email, table.Role},
		}, "User"),
	}
}

// FindByID retrieves an account by primary key.
func (store *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	return store.base.FindByID(context, id)
}

/*
FindByEmail retrieves an account by its unique email address.

Parameters:
  - context: context.Context
  - email: string (already normalized by the service)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		store.base.SelectColumns(), table.Table, table.Email,
	)
	return store.base.QueryOne(context, "find_user_by_email", query, email)
}

// EmailExists reports whether email is taken.
func (store *PostgresUserRepository) EmailExists(context context.Context, email string) (bool, error) {
	return store.base.ExistsByField(context, schema.UserAccount.Email, email)
}

/*
Create persists a new user record into the users.account table.

Description: The database assigns the ID and timestamps, which are copied
back into user.

Returns:
  - error: apperr.Conflict on duplicate email, or database errors
*/
func (store *PostgresUserRepository) Create(context context.Context, user *User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s`,
		table.Table,
		table.Email, table.PasswordHash, table.FullName, table.Role, table.IsActive,
		table.ID, table.CreatedAt, table.UpdatedAt,
	)

	err := store.base.DB().QueryRow(context, query,
		user.Email, user.PasswordHash, user.FullName, user.Role, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("Email is already registered")
	}
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}
	return nil
}

// TouchLastLogin sets lastloginat to now.
func (store *PostgresUserRepository) TouchLastLogin(context context.Context, id int64) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`, table.Table, table.LastLoginAt, table.ID)

	if _, err := store.base.DB().Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "touch_user_last_login")
	}
	return nil
}

// List returns one page of accounts.
func (store *PostgresUserRepository) List(context context.Context, limit, offset int) (repository.Page[User], error) {
	return store.base.FindAll(context, limit, offset)
}

// UpdateRole changes an account's role.
func (store *PostgresUserRepository) UpdateRole(context context.Context, id int64, role sec.UserRole) (*User, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Role, table.UpdatedAt, table.ID, store.base.SelectColumns(),
	)
	return store.base.QueryOne(context, "update_user_role", query, id, role)
}

// SetActive enables or disables an account.
func (store *PostgresUserRepository) SetActive(context context.Context, id int64, active bool) (*User, error) {
	if active {
		return store.base.Activate(context, id)
	}
	return store.base.Deactivate(context, id)
}

// Delete removes an account.
func (store *PostgresUserRepository) Delete(context context.Context, id int64) error {
	return store.base.Delete(context, id)
}
