package schema

// InventoryLocationTable represents the 'inventory.location' table
type InventoryLocationTable struct {
	Table       string
	ID          string
	Code        string
	Name        string
	Description string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

// InventoryLocation is the schema definition for inventory.location
var InventoryLocation = InventoryLocationTable{
	Table:       "inventory.location",
	ID:          "id",
	Code:        "code",
	Name:        "name",
	Description: "description",
	IsActive:    "isactive",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t InventoryLocationTable) Columns() []string {
	return []string{t.ID, t.Code, t.Name, t.Description, t.IsActive, t.CreatedAt, t.UpdatedAt}
}
