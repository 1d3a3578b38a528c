package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var (
	_ repository.StoreTransferRepository = (*TransferRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
)

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func inRange(t time.Time, from, to *time.Time) bool {
	return (from == nil || !t.Before(*from)) && (to == nil || !t.After(*to))
}

// TransferRepo traslados en memoria.
type TransferRepo struct{ db *DB }

// NewTransferRepository construye el repositorio.
func NewTransferRepository(db *DB) *TransferRepo { return &TransferRepo{db: db} }

func (r *TransferRepo) Create(_ context.Context, t *entity.StoreTransfer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.transfers[t.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.s.transfers[t.ID] = copyTransfer(*t)
	return nil
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.StoreTransfer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.s.transfers[id]
	if !ok {
		return nil, nil
	}
	t = copyTransfer(t)
	return &t, nil
}

func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.StoreTransfer, error) {
	return r.GetByID(ctx, id)
}

func (r *TransferRepo) Update(_ context.Context, t *entity.StoreTransfer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.transfers[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.transfers[t.ID] = copyTransfer(*t)
	return nil
}

func (r *TransferRepo) UpdateStatus(_ context.Context, t *entity.StoreTransfer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.s.transfers[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = t.Status
	cur.CompletedBy = t.CompletedBy
	cur.CompletedAt = t.CompletedAt
	cur.CancelledAt = t.CancelledAt
	cur.UpdatedAt = t.UpdatedAt
	r.db.s.transfers[t.ID] = cur
	return nil
}

func (r *TransferRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.transfers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.s.transfers, id)
	return nil
}

func (r *TransferRepo) List(_ context.Context, f repository.TransferFilter, limit, offset int) ([]*entity.StoreTransfer, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.StoreTransfer
	for _, t := range r.db.s.transfers {
		if (f.Status != "" && t.Status != f.Status) ||
			(f.FromStoreID != "" && t.FromStoreID != f.FromStoreID) ||
			(f.ToStoreID != "" && t.ToStoreID != f.ToStoreID) ||
			!inRange(t.TransferDate, f.From, f.To) {
			continue
		}
		t.Items = nil
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), len(out), nil
}

func (r *TransferRepo) CountByDate(_ context.Context, day time.Time) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, t := range r.db.s.transfers {
		if sameDay(t.CreatedAt, day) {
			n++
		}
	}
	return n, nil
}

// OrderRepo órdenes en memoria.
type OrderRepo struct{ db *DB }

// NewOrderRepository construye el repositorio.
func NewOrderRepository(db *DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.s.orders[o.ID] = copyOrder(*o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	o, ok := r.db.s.orders[id]
	if !ok {
		return nil, nil
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.orders[o.ID] = copyOrder(*o)
	return nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.s.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = o.Status
	cur.CompletedAt = o.CompletedAt
	cur.CancelledAt = o.CancelledAt
	cur.UpdatedAt = o.UpdatedAt
	r.db.s.orders[o.ID] = cur
	return nil
}

func (r *OrderRepo) UpdateItemCosts(_ context.Context, o *entity.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cur, ok := r.db.s.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cost := make(map[string]decimal.Decimal, len(o.Items))
	for _, it := range o.Items {
		cost[it.ID] = it.UnitCost
	}
	cur = copyOrder(cur)
	for i := range cur.Items {
		if c, ok := cost[cur.Items[i].ID]; ok {
			cur.Items[i].UnitCost = c
		}
	}
	r.db.s.orders[o.ID] = cur
	return nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.db.s.orders, id)
	return nil
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.db.s.orders {
		if (f.Type != "" && o.Type != f.Type) ||
			(f.Status != "" && o.Status != f.Status) ||
			(f.CustomerID != "" && o.CustomerID != f.CustomerID) ||
			(f.SupplierID != "" && o.SupplierID != f.SupplierID) ||
			!inRange(o.OrderDate, f.From, f.To) {
			continue
		}
		o.Items = nil
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), len(out), nil
}

func (r *OrderRepo) CountByDate(_ context.Context, orderType string, day time.Time) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, o := range r.db.s.orders {
		if o.Type == orderType && sameDay(o.CreatedAt, day) {
			n++
		}
	}
	return n, nil
}
