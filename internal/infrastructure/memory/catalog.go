package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.StoreRepository    = (*StoreRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// ProductRepo productos en memoria.
type ProductRepo struct{ db *DB }

// NewProductRepository construye el repositorio.
func NewProductRepository(db *DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.s.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.db.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.s.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	r.db.s.products[id] = p
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.db.s.products {
		if f.OnlyActive && !p.IsActive {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.SubCategoryID != "" && p.SubCategoryID != f.SubCategoryID {
			continue
		}
		if !inScope(f.CategoryIDs, f.ProductIDs, p.ID, p.CategoryID) {
			continue
		}
		if !matches(f.Search, p.Code, p.Name) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, limit, offset), len(out), nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, t := range r.db.s.transactions {
		if t.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.s.products, id)
	return nil
}

func inScope(categoryIDs, productIDs []string, productID, categoryID string) bool {
	if len(categoryIDs) == 0 && len(productIDs) == 0 {
		return true
	}
	return slices.Contains(productIDs, productID) || (categoryID != "" && slices.Contains(categoryIDs, categoryID))
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ db *DB }

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(db *DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.s.categories {
		if existing.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	r.db.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) List(_ context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Category, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.db.s.categories {
		if (f.OnlyActive && !c.IsActive) || !matches(f.Search, c.Code, c.Name) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), len(out), nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.db.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	for _, sub := range r.db.s.subs {
		if sub.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.s.categories, id)
	return nil
}

// StoreRepo tiendas en memoria.
type StoreRepo struct{ db *DB }

// NewStoreRepository construye el repositorio.
func NewStoreRepository(db *DB) *StoreRepo { return &StoreRepo{db: db} }

func (r *StoreRepo) Create(_ context.Context, s *entity.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.s.stores {
		if existing.Code == s.Code {
			return domain.ErrDuplicate
		}
	}
	r.db.s.stores[s.ID] = *s
	return nil
}

func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.s.stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *StoreRepo) Update(_ context.Context, s *entity.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.stores[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.stores[s.ID] = *s
	return nil
}

func (r *StoreRepo) List(_ context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Store, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Store
	for _, s := range r.db.s.stores {
		if (f.OnlyActive && !s.IsActive) || !matches(f.Search, s.Code, s.Name) {
			continue
		}
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, limit, offset), len(out), nil
}

func (r *StoreRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.stores[id]; !ok {
		return domain.ErrNotFound
	}
	for k := range r.db.s.inventory {
		if k.storeID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.s.stores, id)
	return nil
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ db *DB }

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(db *DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) List(_ context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Customer, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.db.s.customers {
		if (f.OnlyActive && !c.IsActive) || !matches(f.Search, c.Name, c.TaxID, c.Email) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), len(out), nil
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.db.s.orders {
		if o.CustomerID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.s.customers, id)
	return nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ db *DB }

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(db *DB) *SupplierRepo { return &SupplierRepo{db: db} }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.s.suppliers[s.ID] = *s
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.suppliers[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.s.suppliers[s.ID] = *s
	return nil
}

func (r *SupplierRepo) List(_ context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Supplier, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Supplier
	for _, s := range r.db.s.suppliers {
		if (f.OnlyActive && !s.IsActive) || !matches(f.Search, s.Name, s.TaxID, s.Email) {
			continue
		}
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), len(out), nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.db.s.orders {
		if o.SupplierID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.s.suppliers, id)
	return nil
}
