// whctl tareas de operación fuera del API: migraciones, usuario administrador y depuración de bitácora.
//
// Uso: go run ./cmd/whctl migrate up
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Warehousing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Warehousing-api/pkg/config"
	"github.com/jhoicas/Warehousing-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "whctl",
	Short:         "Herramientas de operación del API de bodegas",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// env configuración, logger y pool compartidos por los subcomandos.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func connect(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "whctl"})
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &env{cfg: cfg, log: log, pool: pool}, nil
}

// withEnv abre la conexión para el comando y la cierra al terminar.
func withEnv(fn func(ctx context.Context, e *env, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := connect(ctx)
		if err != nil {
			return err
		}
		defer e.pool.Close()
		return fn(ctx, e, args)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
