// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category manages the product catalogue's categories.

Each category is addressed by a numeric ID and a unique URL slug derived
from its name. Categories referenced by products cannot be deleted; they
are deactivated instead.
*/
package category

import "time"

// Category groups related products.
type Category struct {
	ID          int64     `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	Slug        string    `json:"slug"        db:"slug"`
	Description *string   `json:"description" db:"description"`
	IsActive    bool      `json:"is_active"   db:"isactive"`
	CreatedAt   time.Time `json:"created_at"  db:"createdat"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updatedat"`
}

// Input is the writable part of a [Category].
type Input struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

const (
	FieldName        = "name"
	FieldDescription = "description"

	nameMaxLength        = 100
	descriptionMaxLength = 1000
)
