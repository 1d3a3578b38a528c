package repository

import (
	"context"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// UnitRepository unidades de medida. GetByID devuelve (nil, nil) si no existe.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id string) (*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*entity.Unit, int, error)
	Delete(ctx context.Context, id string) error
}

// SubCategoryRepository subcategorías de producto.
type SubCategoryRepository interface {
	Create(ctx context.Context, sub *entity.SubCategory) error
	GetByID(ctx context.Context, id string) (*entity.SubCategory, error)
	Update(ctx context.Context, sub *entity.SubCategory) error
	List(ctx context.Context, f SubCategoryFilter, limit, offset int) ([]*entity.SubCategory, int, error)
	Delete(ctx context.Context, id string) error
}
