// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package product manages the stocked items.

# Stock Levels

Quantity is read-only here. It starts at zero and only changes through
stock movements (see the movement package), which keep a ledger of every
change. A product is "low stock" when its quantity is at or below its
reorder level.

# Money

Unit cost and price are [decimal.Decimal] values with two fractional digits,
serialized as JSON strings ("12.50") to avoid float rounding.
*/
package product

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stocked item.
type Product struct {
	ID           int64           `json:"id"            db:"id"`
	SKU          string          `json:"sku"           db:"sku"`
	Name         string          `json:"name"          db:"name"`
	Description  *string         `json:"description"   db:"description"`
	CategoryID   int64           `json:"category_id"   db:"categoryid"`
	SupplierID   *int64          `json:"supplier_id"   db:"supplierid"`
	LocationID   *int64          `json:"location_id"   db:"locationid"`
	UnitCost     decimal.Decimal `json:"unit_cost"     db:"unitcost"`
	UnitPrice    decimal.Decimal `json:"unit_price"    db:"unitprice"`
	Quantity     int             `json:"quantity"      db:"quantity"`
	ReorderLevel int             `json:"reorder_level" db:"reorderlevel"`
	IsActive     bool            `json:"is_active"     db:"isactive"`
	CreatedAt    time.Time       `json:"created_at"    db:"createdat"`
	UpdatedAt    time.Time       `json:"updated_at"    db:"updatedat"`
}

// LowStock reports whether the product should be reordered.
func (product *Product) LowStock() bool {
	return product.Quantity <= product.ReorderLevel
}

// Input is the writable part of a [Product]. Quantity is deliberately absent.
type Input struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	CategoryID   int64           `json:"category_id"`
	SupplierID   *int64          `json:"supplier_id"`
	LocationID   *int64          `json:"location_id"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReorderLevel int             `json:"reorder_level"`
}

// Filter narrows a product listing. Zero values disable a criterion.
type Filter struct {
	CategoryID      int64
	LowStock        bool
	Query           string
	IncludeInactive bool
}

const (
	FieldSKU          = "sku"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldCategoryID   = "category_id"
	FieldSupplierID   = "supplier_id"
	FieldLocationID   = "location_id"
	FieldUnitCost     = "unit_cost"
	FieldUnitPrice    = "unit_price"
	FieldReorderLevel = "reorder_level"
)

const (
	skuMaxLength         = 64
	nameMaxLength        = 200
	descriptionMaxLength = 2000
	moneyScale           = 2
)

var (
	// skuPattern allows upper-case letters, digits and single separators.
	skuPattern = regexp.MustCompile(`^[A-Z0-9]+(?:[-_.][A-Z0-9]+)*$`)

	// maxMoney is the first value NUMERIC(12,2) cannot hold.
	maxMoney = decimal.New(1, 10)
)
