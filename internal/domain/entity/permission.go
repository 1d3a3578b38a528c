package entity

// Códigos de permiso que viajan en el JWT.
const (
	PermViewInventory    = "VIEW_INVENTORY"
	PermAdjustInventory  = "ADJUST_INVENTORY"
	PermManageProducts   = "MANAGE_PRODUCTS"
	PermManageStores     = "MANAGE_STORES"
	PermManageTransfers  = "MANAGE_TRANSFERS"
	PermApproveTransfers = "APPROVE_TRANSFERS"
	PermManageOrders     = "MANAGE_ORDERS"
	PermApproveOrders    = "APPROVE_ORDERS"
	PermManagePartners   = "MANAGE_PARTNERS" // clientes y proveedores
	PermViewActivityLogs = "VIEW_ACTIVITY_LOGS"
	PermWorkOutsideHours = "WORK_OUTSIDE_WORKING_HOURS"
)

// Permission entrada del catálogo de permisos.
type Permission struct {
	Code        string
	Description string
	Module      string
}

// PermissionCatalog catálogo completo de permisos asignables a roles.
var PermissionCatalog = []Permission{
	{PermViewInventory, "Consultar existencias y movimientos", ModuleInventory},
	{PermAdjustInventory, "Ajustar existencias manualmente", ModuleInventory},
	{PermManageProducts, "Crear y editar productos y categorías", ModuleCatalog},
	{PermManageStores, "Crear y editar tiendas", ModuleCatalog},
	{PermManageTransfers, "Crear y editar traslados", ModuleTransfers},
	{PermApproveTransfers, "Completar o cancelar traslados", ModuleTransfers},
	{PermManageOrders, "Crear y editar órdenes", ModuleOrders},
	{PermApproveOrders, "Completar o cancelar órdenes", ModuleOrders},
	{PermManagePartners, "Crear y editar clientes y proveedores", ModuleCatalog},
	{PermViewActivityLogs, "Consultar la bitácora de actividad", ModuleSecurity},
	{PermWorkOutsideHours, "Trabajar fuera del horario laboral", ModuleSecurity},
}

// IsKnownPermission valida un código contra el catálogo.
func IsKnownPermission(code string) bool {
	for _, p := range PermissionCatalog {
		if p.Code == code {
			return true
		}
	}
	return false
}
