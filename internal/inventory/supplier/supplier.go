// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package supplier manages the vendors products are bought from.
package supplier

import "time"

// Supplier is a vendor with optional contact details.
type Supplier struct {
	ID          int64     `json:"id"           db:"id"`
	Name        string    `json:"name"         db:"name"`
	ContactName *string   `json:"contact_name" db:"contactname"`
	Email       *string   `json:"email"        db:"email"`
	Phone       *string   `json:"phone"        db:"phone"`
	Address     *string   `json:"address"      db:"address"`
	IsActive    bool      `json:"is_active"    db:"isactive"`
	CreatedAt   time.Time `json:"created_at"   db:"createdat"`
	UpdatedAt   time.Time `json:"updated_at"   db:"updatedat"`
}

// Input is the writable part of a [Supplier].
type Input struct {
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

const (
	FieldName        = "name"
	FieldContactName = "contact_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
)

const (
	nameMaxLength    = 150
	phoneMaxLength   = 32
	addressMaxLength = 500
)
