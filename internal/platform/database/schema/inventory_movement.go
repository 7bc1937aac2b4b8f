package schema

// InventoryMovementTable represents the 'inventory.movement' table
type InventoryMovementTable struct {
	Table          string
	ID             string
	Reference      string
	ProductID      string
	Type           string
	Quantity       string
	QuantityBefore string
	QuantityAfter  string
	FromLocationID string
	ToLocationID   string
	Note           string
	CreatedBy      string
	CreatedAt      string
}

// InventoryMovement is the schema definition for inventory.movement
var InventoryMovement = InventoryMovementTable{
	Table:          "inventory.movement",
	ID:             "id",
	Reference:      "reference",
	ProductID:      "productid",
	Type:           "type",
	Quantity:       "quantity",
	QuantityBefore: "quantitybefore",
	QuantityAfter:  "quantityafter",
	FromLocationID: "fromlocationid",
	ToLocationID:   "tolocationid",
	Note:           "note",
	CreatedBy:      "createdby",
	CreatedAt:      "createdat",
}

// Columns returns all standard column names
func (t InventoryMovementTable) Columns() []string {
	return []string{
		t.ID, t.Reference, t.ProductID, t.Type, t.Quantity, t.QuantityBefore, t.QuantityAfter,
		t.FromLocationID, t.ToLocationID, t.Note, t.CreatedBy, t.CreatedAt,
	}
}
