package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(uow ports.UnitOfWork) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUnitOfWork(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewUnitOfWork repositorios sobre q (pool o tx).
func NewUnitOfWork(q Querier) ports.UnitOfWork {
	return ports.UnitOfWork{
		Products:     NewProductRepository(q),
		Stores:       NewStoreRepository(q),
		Inventory:    NewInventoryRepository(q),
		Transactions: NewTransactionRepository(q),
		Transfers:    NewStoreTransferRepository(q),
		Orders:       NewOrderRepository(q),
	}
}
