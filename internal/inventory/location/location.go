// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package location manages the physical places stock is kept in: warehouses,
aisles, bins.

A location is identified by a short unique code (e.g. "WH1-A04") that is
printed on shelf labels, so codes are normalized to upper case.
*/
package location

import (
	"regexp"
	"time"
)

// Location is a place products are stored.
type Location struct {
	ID          int64     `json:"id"          db:"id"`
	Code        string    `json:"code"        db:"code"`
	Name        string    `json:"name"        db:"name"`
	Description *string   `json:"description" db:"description"`
	IsActive    bool      `json:"is_active"   db:"isactive"`
	CreatedAt   time.Time `json:"created_at"  db:"createdat"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updatedat"`
}

// Input is the writable part of a [Location].
type Input struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

const (
	FieldCode        = "code"
	FieldName        = "name"
	FieldDescription = "description"

	codeMaxLength        = 32
	nameMaxLength        = 100
	descriptionMaxLength = 1000
)

// codePattern allows upper-case letters, digits, dots and hyphens.
var codePattern = regexp.MustCompile(`^[A-Z0-9]+(?:[.-][A-Z0-9]+)*$`)
