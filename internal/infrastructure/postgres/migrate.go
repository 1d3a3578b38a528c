package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrator aplica las migraciones embebidas con goose sobre el pool.
type Migrator struct {
	pool *pgxpool.Pool
}

// NewMigrator construye el migrador.
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	goose.SetBaseFS(migrationsFS)
	return &Migrator{pool: pool}
}

func (m *Migrator) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return fn(ctx)
}

// Up aplica todas las migraciones pendientes.
func (m *Migrator) Up(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()
	return m.run(ctx, func(ctx context.Context) error {
		if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		return nil
	})
}

// Down revierte la última migración.
func (m *Migrator) Down(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()
	return m.run(ctx, func(ctx context.Context) error {
		if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		return nil
	})
}

// Status imprime el estado de cada migración (vía el logger de goose).
func (m *Migrator) Status(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()
	return m.run(ctx, func(ctx context.Context) error {
		return goose.StatusContext(ctx, db, migrationsDir)
	})
}

// Version versión actual del esquema.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("goose dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, db)
}
