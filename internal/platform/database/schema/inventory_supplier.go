package schema

// InventorySupplierTable represents the 'inventory.supplier' table
type InventorySupplierTable struct {
	Table       string
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

// InventorySupplier is the schema definition for inventory.supplier
var InventorySupplier = InventorySupplierTable{
	Table:       "inventory.supplier",
	ID:          "id",
	Name:        "name",
	ContactName: "contactname",
	Email:       "email",
	Phone:       "phone",
	Address:     "address",
	IsActive:    "isactive",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t InventorySupplierTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.ContactName, t.Email, t.Phone, t.Address,
		t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}
