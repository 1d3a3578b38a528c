// Package memory implementa los repositorios en memoria que usan los tests de casos de uso.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

var _ ports.TxRunner = (*TxRunner)(nil)

type invKey struct{ productID, storeID string }

type state struct {
	products     map[string]entity.Product
	categories   map[string]entity.Category
	subs         map[string]entity.SubCategory
	units        map[string]entity.Unit
	stores       map[string]entity.Store
	customers    map[string]entity.Customer
	suppliers    map[string]entity.Supplier
	users        map[string]entity.User
	roles        map[string]entity.Role
	inventory    map[invKey]entity.Inventory
	transactions []entity.InventoryTransaction
	transfers    map[string]entity.StoreTransfer
	orders       map[string]entity.Order
	activity     []entity.UserActivityLog
	workingHours map[string]entity.WorkingHours
	exceptions   []entity.WorkingHoursException
}

func newState() *state {
	return &state{
		products:     map[string]entity.Product{},
		categories:   map[string]entity.Category{},
		subs:         map[string]entity.SubCategory{},
		units:        map[string]entity.Unit{},
		stores:       map[string]entity.Store{},
		customers:    map[string]entity.Customer{},
		suppliers:    map[string]entity.Supplier{},
		users:        map[string]entity.User{},
		roles:        map[string]entity.Role{},
		inventory:    map[invKey]entity.Inventory{},
		transfers:    map[string]entity.StoreTransfer{},
		orders:       map[string]entity.Order{},
		workingHours: map[string]entity.WorkingHours{},
	}
}

// clone copia profunda para poder restaurar el estado en un Rollback.
func (s *state) clone() *state {
	c := &state{
		products:     cloneMap(s.products),
		categories:   cloneMap(s.categories),
		subs:         cloneMap(s.subs),
		units:        cloneMap(s.units),
		stores:       cloneMap(s.stores),
		customers:    cloneMap(s.customers),
		suppliers:    cloneMap(s.suppliers),
		users:        cloneMap(s.users),
		roles:        make(map[string]entity.Role, len(s.roles)),
		inventory:    cloneMap(s.inventory),
		transactions: slices.Clone(s.transactions),
		transfers:    make(map[string]entity.StoreTransfer, len(s.transfers)),
		orders:       make(map[string]entity.Order, len(s.orders)),
		activity:     slices.Clone(s.activity),
		workingHours: make(map[string]entity.WorkingHours, len(s.workingHours)),
		exceptions:   slices.Clone(s.exceptions),
	}
	for k, r := range s.roles {
		c.roles[k] = copyRole(r)
	}
	for k, t := range s.transfers {
		c.transfers[k] = copyTransfer(t)
	}
	for k, o := range s.orders {
		c.orders[k] = copyOrder(o)
	}
	for k, wh := range s.workingHours {
		wh.Days = slices.Clone(wh.Days)
		c.workingHours[k] = wh
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyRole(r entity.Role) entity.Role {
	r.Permissions = slices.Clone(r.Permissions)
	r.CategoryIDs = slices.Clone(r.CategoryIDs)
	r.ProductIDs = slices.Clone(r.ProductIDs)
	return r
}

func copyTransfer(t entity.StoreTransfer) entity.StoreTransfer {
	t.Items = slices.Clone(t.Items)
	return t
}

func copyOrder(o entity.Order) entity.Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// DB base de datos en memoria segura para uso concurrente.
type DB struct {
	mu   sync.Mutex
	txMu sync.Mutex // serializa transacciones, equivalente al bloqueo de filas
	s    *state
}

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{s: newState()}
}

// UnitOfWork repositorios sobre esta base (fuera de transacción).
func (db *DB) UnitOfWork() ports.UnitOfWork {
	return ports.UnitOfWork{
		Products:     NewProductRepository(db),
		Stores:       NewStoreRepository(db),
		Inventory:    NewInventoryRepository(db),
		Transactions: NewTransactionRepository(db),
		Transfers:    NewTransferRepository(db),
		Orders:       NewOrderRepository(db),
	}
}

// TxRunner ejecuta fn con Commit/Rollback sobre una instantánea del estado.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run serializa la transacción; si fn falla restaura el estado previo.
func (r *TxRunner) Run(ctx context.Context, fn func(uow ports.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.txMu.Lock()
	defer r.db.txMu.Unlock()

	r.db.mu.Lock()
	snapshot := r.db.s.clone()
	r.db.mu.Unlock()

	if err := fn(r.db.UnitOfWork()); err != nil {
		r.db.mu.Lock()
		r.db.s = snapshot
		r.db.mu.Unlock()
		return err
	}
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
