package repository

import (
	"context"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*entity.Store, int, error)
	Delete(ctx context.Context, id string) error
}
