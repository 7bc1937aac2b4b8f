// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package audit records who changed what across the inventory and user domains.

Domain services call a [Recorder] after every successful mutation. Recording
never fails the caller: storage errors are logged and swallowed so a broken
audit table cannot block stock operations.
*/
package audit

import (
	"context"
	"time"

	"github.com/taibuivan/stockroom/internal/platform/repository"
)

// # Domain Entities

// Entry is one row of the audit trail.
type Entry struct {
	ID         int64          `json:"id"          db:"id"`
	ActorID    *int64         `json:"actor_id"    db:"actorid"`
	Action     string         `json:"action"      db:"action"`
	EntityType string         `json:"entity_type" db:"entitytype"`
	EntityID   *int64         `json:"entity_id"   db:"entityid"`
	IPAddress  *string        `json:"ip_address"  db:"ipaddress"`
	Details    map[string]any `json:"details"     db:"details"`
	CreatedAt  time.Time      `json:"created_at"  db:"createdat"`
}

// # Vocabulary

// Actions written by the domain services.
const (
	ActionCreate     = "CREATE"
	ActionUpdate     = "UPDATE"
	ActionDelete     = "DELETE"
	ActionActivate   = "ACTIVATE"
	ActionDeactivate = "DEACTIVATE"
	ActionMovement   = "MOVEMENT"
	ActionRoleChange = "ROLE_CHANGE"
	ActionRegister   = "REGISTER"
	ActionLogin      = "LOGIN"
	ActionLogout     = "LOGOUT"
)

// Entity types written by the domain services.
const (
	EntityUser     = "user"
	EntityCategory = "category"
	EntitySupplier = "supplier"
	EntityLocation = "location"
	EntityProduct  = "product"
	EntityMovement = "movement"
)

// # Contracts

// Recorder is the dependency domain services take to write audit entries.
type Recorder interface {
	Record(context context.Context, action, entityType string, entityID int64, details map[string]any)
}

// Filter narrows a listing. Zero values are ignored.
type Filter struct {
	EntityType string
	EntityID   int64
	ActorID    int64
	Action     string
}

// Repository persists audit entries.
type Repository interface {
	Insert(context context.Context, entry *Entry) error
	List(context context.Context, filter Filter, limit, offset int) (repository.Page[Entry], error)
}
