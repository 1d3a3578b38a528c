package repository

import (
	"context"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*entity.Customer, int, error)
	Delete(ctx context.Context, id string) error
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*entity.Supplier, int, error)
	Delete(ctx context.Context, id string) error
}
