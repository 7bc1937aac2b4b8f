// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movement records stock changes and is the only writer of product
quantities.

# Types

  - IN: goods received. Quantity is added.
  - OUT: goods issued. Quantity is removed; stock may not go negative.
  - TRANSFER: the product's stock moves to another location. Products have a
    single location, so the whole on-hand quantity moves.
  - ADJUSTMENT: stock-take correction with a signed quantity.

Each movement locks the product row, applies the change and appends a
ledger entry in one transaction, so concurrent movements on the same
product serialize and quantity_before/quantity_after chain without gaps.
*/
package movement

import "time"

// Type classifies a movement.
type Type string

const (
	TypeIn         Type = "IN"
	TypeOut        Type = "OUT"
	TypeTransfer   Type = "TRANSFER"
	TypeAdjustment Type = "ADJUSTMENT"
)

// Valid reports whether t is a known movement type.
func (t Type) Valid() bool {
	switch t {
	case TypeIn, TypeOut, TypeTransfer, TypeAdjustment:
		return true
	}
	return false
}

// Movement is one ledger entry.
//
// Quantity is the requested amount: positive for IN, OUT and TRANSFER,
// signed for ADJUSTMENT. QuantityBefore and QuantityAfter are the product's
// stock around the change.
type Movement struct {
	ID             int64     `json:"id"               db:"id"`
	Reference      string    `json:"reference"        db:"reference"`
	ProductID      int64     `json:"product_id"       db:"productid"`
	Type           Type      `json:"type"             db:"type"`
	Quantity       int       `json:"quantity"         db:"quantity"`
	QuantityBefore int       `json:"quantity_before"  db:"quantitybefore"`
	QuantityAfter  int       `json:"quantity_after"   db:"quantityafter"`
	FromLocationID *int64    `json:"from_location_id" db:"fromlocationid"`
	ToLocationID   *int64    `json:"to_location_id"   db:"tolocationid"`
	Note           *string   `json:"note"             db:"note"`
	CreatedBy      int64     `json:"created_by"       db:"createdby"`
	CreatedAt      time.Time `json:"created_at"       db:"createdat"`
}

// Input is a movement request.
type Input struct {
	ProductID    int64   `json:"product_id"`
	Type         Type    `json:"type"`
	Quantity     int     `json:"quantity"`
	ToLocationID *int64  `json:"to_location_id"`
	Note         *string `json:"note"`
}

// Filter narrows a movement listing. Zero values disable a criterion.
type Filter struct {
	ProductID int64
	Type      Type
}

// Stock is the locked state of a product inside a movement transaction.
type Stock struct {
	ProductID  int64
	Quantity   int
	LocationID *int64
	IsActive   bool
}

const (
	FieldProductID    = "product_id"
	FieldType         = "type"
	FieldQuantity     = "quantity"
	FieldToLocationID = "to_location_id"
	FieldNote         = "note"

	noteMaxLength = 500

	// referencePrefix starts every movement reference, e.g. "MV-01J9...".
	referencePrefix = "MV"
)
