package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Warehousing-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migraciones del esquema (goose, embebidas en el binario)",
}

func init() {
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
				m := postgres.NewMigrator(e.pool)
				if err := m.Up(ctx); err != nil {
					return err
				}
				return printVersion(ctx, m)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte la última migración",
			Args:  cobra.NoArgs,
			RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
				m := postgres.NewMigrator(e.pool)
				if err := m.Down(ctx); err != nil {
					return err
				}
				return printVersion(ctx, m)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Estado de cada migración",
			Args:  cobra.NoArgs,
			RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
				return postgres.NewMigrator(e.pool).Status(ctx)
			}),
		},
	)
	rootCmd.AddCommand(migrateCmd)
}

func printVersion(ctx context.Context, m *postgres.Migrator) error {
	v, err := m.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("versión del esquema: %d\n", v)
	return nil
}
