package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var (
	_ repository.UnitRepository        = (*UnitRepo)(nil)
	_ repository.SubCategoryRepository = (*SubCategoryRepo)(nil)
)

// UnitRepo unidades de medida en memoria.
type UnitRepo struct{ db *DB }

// NewUnitRepository construye el repositorio.
func NewUnitRepository(db *DB) *UnitRepo { return &UnitRepo{db: db} }

func (r *UnitRepo) Create(_ context.Context, u *entity.Unit) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.s.units {
		if existing.Code == u.Code {
			return domain.ErrDuplicate
		}
	}
	r.db.s.units[u.ID] = *u
	return nil
}

func (r *UnitRepo) GetByID(_ context.Context, id string) (*entity.Unit, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.s.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UnitRepo) Update(_ context.Context, u *entity.Unit) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.units[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.s.units {
		if existing.ID != u.ID && existing.Code == u.Code {
			return domain.ErrDuplicate
		}
	}
	r.db.s.units[u.ID] = *u
	return nil
}

func (r *UnitRepo) List(_ context.Context, f repository.ListFilter, limit, offset int) ([]*entity.Unit, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Unit
	for _, u := range r.db.s.units {
		if (f.OnlyActive && !u.IsActive) || !matches(f.Search, u.Code, u.Name) {
			continue
		}
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return paginate(out, limit, offset), len(out), nil
}

func (r *UnitRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.units[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.db.s.products {
		if p.UnitID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.s.units, id)
	return nil
}

// SubCategoryRepo subcategorías en memoria.
type SubCategoryRepo struct{ db *DB }

// NewSubCategoryRepository construye el repositorio.
func NewSubCategoryRepository(db *DB) *SubCategoryRepo { return &SubCategoryRepo{db: db} }

func (r *SubCategoryRepo) Create(_ context.Context, sub *entity.SubCategory) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.categories[sub.CategoryID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.s.subs {
		if existing.Code == sub.Code {
			return domain.ErrDuplicate
		}
	}
	r.db.s.subs[sub.ID] = *sub
	return nil
}

func (r *SubCategoryRepo) GetByID(_ context.Context, id string) (*entity.SubCategory, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	sub, ok := r.db.s.subs[id]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (r *SubCategoryRepo) Update(_ context.Context, sub *entity.SubCategory) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.subs[sub.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.db.s.categories[sub.CategoryID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.db.s.subs {
		if existing.ID != sub.ID && existing.Code == sub.Code {
			return domain.ErrDuplicate
		}
	}
	r.db.s.subs[sub.ID] = *sub
	return nil
}

func (r *SubCategoryRepo) List(_ context.Context, f repository.SubCategoryFilter, limit, offset int) ([]*entity.SubCategory, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.SubCategory
	for _, sub := range r.db.s.subs {
		if f.CategoryID != "" && sub.CategoryID != f.CategoryID {
			continue
		}
		if (f.OnlyActive && !sub.IsActive) || !matches(f.Search, sub.Code, sub.Name) {
			continue
		}
		sub := sub
		out = append(out, &sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), len(out), nil
}

func (r *SubCategoryRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.s.subs[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.db.s.products {
		if p.SubCategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.db.s.subs, id)
	return nil
}
