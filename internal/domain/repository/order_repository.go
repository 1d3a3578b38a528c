package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// OrderRepository persistencia de órdenes con sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, o *entity.Order) error
	UpdateStatus(ctx context.Context, o *entity.Order) error
	// UpdateItemCosts persiste el costo unitario de cada línea (costo al despachar una venta).
	UpdateItemCosts(ctx context.Context, o *entity.Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f OrderFilter, limit, offset int) ([]*entity.Order, int, error)
	CountByDate(ctx context.Context, orderType string, day time.Time) (int, error)
}
