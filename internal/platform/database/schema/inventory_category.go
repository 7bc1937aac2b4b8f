package schema

// InventoryCategoryTable represents the 'inventory.category' table
type InventoryCategoryTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

// InventoryCategory is the schema definition for inventory.category
var InventoryCategory = InventoryCategoryTable{
	Table:       "inventory.category",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	IsActive:    "isactive",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t InventoryCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Description, t.IsActive, t.CreatedAt, t.UpdatedAt}
}
