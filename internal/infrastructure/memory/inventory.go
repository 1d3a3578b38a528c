package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var (
	_ repository.InventoryRepository            = (*InventoryRepo)(nil)
	_ repository.InventoryTransactionRepository = (*TransactionRepo)(nil)
)

// InventoryRepo existencias en memoria.
type InventoryRepo struct{ db *DB }

// NewInventoryRepository construye el repositorio.
func NewInventoryRepository(db *DB) *InventoryRepo { return &InventoryRepo{db: db} }

func (r *InventoryRepo) Get(_ context.Context, productID, storeID string) (*entity.Inventory, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv, ok := r.db.s.inventory[invKey{productID, storeID}]
	if !ok {
		return &entity.Inventory{ProductID: productID, StoreID: storeID, Quantity: decimal.Zero}, nil
	}
	return &inv, nil
}

// GetForUpdate en memoria el bloqueo lo da TxRunner.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, storeID string) (*entity.Inventory, error) {
	return r.Get(ctx, productID, storeID)
}

func (r *InventoryRepo) Exists(_ context.Context, productID, storeID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.s.inventory[invKey{productID, storeID}]
	return ok, nil
}

func (r *InventoryRepo) Upsert(_ context.Context, inv *entity.Inventory) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.s.inventory[invKey{inv.ProductID, inv.StoreID}] = *inv
	return nil
}

func (r *InventoryRepo) List(_ context.Context, f repository.InventoryFilter, limit, offset int) ([]*entity.InventoryView, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rows := r.views(f, func(*entity.InventoryView) bool { return true })
	return paginate(rows, limit, offset), len(rows), nil
}

func (r *InventoryRepo) LowStock(_ context.Context, threshold *decimal.Decimal, fallback decimal.Decimal, f repository.InventoryFilter, limit, offset int) ([]*entity.InventoryView, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rows := r.views(f, func(v *entity.InventoryView) bool {
		if threshold != nil {
			return v.Quantity.LessThanOrEqual(*threshold)
		}
		if v.ReorderLevel.IsPositive() {
			return v.Quantity.LessThanOrEqual(v.ReorderLevel)
		}
		return fallback.IsPositive() && v.Quantity.LessThanOrEqual(fallback)
	})
	return paginate(rows, limit, offset), len(rows), nil
}

func (r *InventoryRepo) Summary(_ context.Context, lowThreshold decimal.Decimal) (*entity.InventorySummary, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s := &entity.InventorySummary{TotalQuantity: decimal.Zero, TotalValue: decimal.Zero, LowStockCeiling: lowThreshold}
	products, stores := map[string]bool{}, map[string]bool{}
	for k, inv := range r.db.s.inventory {
		products[k.productID] = true
		stores[k.storeID] = true
		s.TotalQuantity = s.TotalQuantity.Add(inv.Quantity)
		s.TotalValue = s.TotalValue.Add(inv.Quantity.Mul(r.db.s.products[k.productID].Cost))
		if inv.Quantity.IsZero() {
			s.ZeroStockItems++
		}
		if inv.Quantity.LessThanOrEqual(lowThreshold) {
			s.LowStockItems++
		}
	}
	s.TotalProducts = len(products)
	s.TotalStores = len(stores)
	return s, nil
}

// views arma la proyección con nombres; se llama con mu tomado.
func (r *InventoryRepo) views(f repository.InventoryFilter, keep func(*entity.InventoryView) bool) []*entity.InventoryView {
	var out []*entity.InventoryView
	for k, inv := range r.db.s.inventory {
		if f.StoreID != "" && k.storeID != f.StoreID {
			continue
		}
		if f.ProductID != "" && k.productID != f.ProductID {
			continue
		}
		p := r.db.s.products[k.productID]
		if !inScope(f.CategoryIDs, f.ProductIDs, p.ID, p.CategoryID) {
			continue
		}
		v := &entity.InventoryView{
			Inventory:    inv,
			ProductCode:  p.Code,
			ProductName:  p.Name,
			CategoryID:   p.CategoryID,
			StoreName:    r.db.s.stores[k.storeID].Name,
			ReorderLevel: p.ReorderLevel,
			UnitCost:     p.Cost,
		}
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductCode != out[j].ProductCode {
			return out[i].ProductCode < out[j].ProductCode
		}
		return out[i].StoreName < out[j].StoreName
	})
	return out
}

// TransactionRepo libro de inventario en memoria (solo inserción).
type TransactionRepo struct{ db *DB }

// NewTransactionRepository construye el repositorio.
func NewTransactionRepository(db *DB) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Create(_ context.Context, t *entity.InventoryTransaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.s.transactions = append(r.db.s.transactions, *t)
	return nil
}

func (r *TransactionRepo) List(_ context.Context, f repository.TransactionFilter, limit, offset int) ([]*entity.InventoryTransaction, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.InventoryTransaction
	for _, t := range r.db.s.transactions {
		if (f.ProductID != "" && t.ProductID != f.ProductID) ||
			(f.StoreID != "" && t.StoreID != f.StoreID) ||
			(f.Type != "" && t.Type != f.Type) ||
			(f.OrderID != "" && t.OrderID != f.OrderID) ||
			(f.TransferID != "" && t.TransferID != f.TransferID) ||
			(f.From != nil && t.CreatedAt.Before(*f.From)) ||
			(f.To != nil && t.CreatedAt.After(*f.To)) {
			continue
		}
		t := t
		out = append(out, &t)
	}
	return paginate(out, limit, offset), len(out), nil
}

func (r *TransactionRepo) SumChanged(_ context.Context, productID, storeID string) (decimal.Decimal, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	sum := decimal.Zero
	for _, t := range r.db.s.transactions {
		if t.ProductID == productID && t.StoreID == storeID {
			sum = sum.Add(t.QuantityChanged)
		}
	}
	return sum, nil
}
