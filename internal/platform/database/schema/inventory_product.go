package schema

// InventoryProductTable represents the 'inventory.product' table
type InventoryProductTable struct {
	Table        string
	ID           string
	SKU          string
	Name         string
	Description  string
	CategoryID   string
	SupplierID   string
	LocationID   string
	UnitCost     string
	UnitPrice    string
	Quantity     string
	ReorderLevel string
	IsActive     string
	CreatedAt    string
	UpdatedAt    string
}

// InventoryProduct is the schema definition for inventory.product
var InventoryProduct = InventoryProductTable{
	Table:        "inventory.product",
	ID:           "id",
	SKU:          "sku",
	Name:         "name",
	Description:  "description",
	CategoryID:   "categoryid",
	SupplierID:   "supplierid",
	LocationID:   "locationid",
	UnitCost:     "unitcost",
	UnitPrice:    "unitprice",
	Quantity:     "quantity",
	ReorderLevel: "reorderlevel",
	IsActive:     "isactive",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t InventoryProductTable) Columns() []string {
	return []string{
		t.ID, t.SKU, t.Name, t.Description, t.CategoryID, t.SupplierID, t.LocationID,
		t.UnitCost, t.UnitPrice, t.Quantity, t.ReorderLevel, t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}
