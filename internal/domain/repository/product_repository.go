package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetBy* devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	List(ctx context.Context, f ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
}
