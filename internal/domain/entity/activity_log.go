package entity

import "time"

// Severidad de una entrada de la bitácora.
const (
	SeverityInfo     = "INFO"
	SeverityWarning  = "WARNING"
	SeverityError    = "ERROR"
	SeverityCritical = "CRITICAL"
)

// Acciones registradas.
const (
	ActionLogin    = "LOGIN"
	ActionLogout   = "LOGOUT"
	ActionCreate   = "CREATE"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionComplete = "COMPLETE"
	ActionCancel   = "CANCEL"
	ActionAdjust   = "ADJUST"
)

// Módulos funcionales (bitácora y catálogo de permisos).
const (
	ModuleAuth      = "AUTH"
	ModuleCatalog   = "CATALOG"
	ModuleInventory = "INVENTORY"
	ModuleTransfers = "TRANSFERS"
	ModuleOrders    = "ORDERS"
	ModuleSecurity  = "SECURITY"
)

// UserActivityLog entrada de auditoría de una acción de usuario.
type UserActivityLog struct {
	ID          string
	UserID      string // vacío para acciones sin sesión (ej. login fallido)
	Username    string
	Action      string
	Description string
	EntityType  string
	EntityID    string
	OldValues   string // JSON
	NewValues   string // JSON
	IPAddress   string
	UserAgent   string
	Module      string
	Severity    string
	CreatedAt   time.Time
}

// ActivitySummary conteos agregados de la bitácora.
type ActivitySummary struct {
	Total      int
	Today      int
	ThisWeek   int
	ThisMonth  int
	ByAction   map[string]int
	ByModule   map[string]int
	BySeverity map[string]int
}
