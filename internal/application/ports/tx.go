package ports

import (
	"context"

	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

// UnitOfWork repositorios atados a una misma transacción de BD.
type UnitOfWork struct {
	Products     repository.ProductRepository
	Stores       repository.StoreRepository
	Inventory    repository.InventoryRepository
	Transactions repository.InventoryTransactionRepository
	Transfers    repository.StoreTransferRepository
	Orders       repository.OrderRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow UnitOfWork) error) error
}
