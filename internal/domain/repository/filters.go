package repository

import "time"

// ListFilter filtros comunes de catálogos: texto libre y activos.
type ListFilter struct {
	Search     string
	OnlyActive bool
}

// SubCategoryFilter filtros de subcategorías.
type SubCategoryFilter struct {
	ListFilter
	CategoryID string
}

// ProductFilter filtros de productos. CategoryIDs/ProductIDs restringen al alcance del usuario.
type ProductFilter struct {
	Search        string
	CategoryID    string
	SubCategoryID string
	OnlyActive    bool
	CategoryIDs   []string
	ProductIDs    []string
}

// InventoryFilter filtros de existencias.
type InventoryFilter struct {
	StoreID     string
	ProductID   string
	CategoryIDs []string
	ProductIDs  []string
}

// TransactionFilter filtros del libro de inventario.
type TransactionFilter struct {
	ProductID  string
	StoreID    string
	Type       string
	OrderID    string
	TransferID string
	From       *time.Time
	To         *time.Time
}

// TransferFilter filtros de traslados.
type TransferFilter struct {
	Status      string
	FromStoreID string
	ToStoreID   string
	From        *time.Time
	To          *time.Time
}

// OrderFilter filtros de órdenes.
type OrderFilter struct {
	Type       string
	Status     string
	CustomerID string
	SupplierID string
	From       *time.Time
	To         *time.Time
}

// ActivityFilter filtros de la bitácora.
type ActivityFilter struct {
	UserID   string
	Action   string
	Module   string
	Severity string
	From     *time.Time
	To       *time.Time
}
