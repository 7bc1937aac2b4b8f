package schema

// InventoryAuditLogTable represents the 'inventory.auditlog' table
type InventoryAuditLogTable struct {
	Table      string
	ID         string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	IPAddress  string
	Details    string
	CreatedAt  string
}

var InventoryAuditLog = InventoryAuditLogTable{
	Table:      "inventory.auditlog",
	ID:         "id",
	ActorID:    "actorid",
	Action:     "action",
	EntityType: "entitytype",
	EntityID:   "entityid",
	IPAddress:  "ipaddress",
	Details:    "details",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t InventoryAuditLogTable) Columns() []string {
	return []string{t.ID, t.ActorID, t.Action, t.EntityType, t.EntityID, t.IPAddress, t.Details, t.CreatedAt}
}
