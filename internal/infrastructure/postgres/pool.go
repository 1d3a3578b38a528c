package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Warehousing-api/pkg/config"
)

// NewPool crea el pool de conexiones con NUMERIC mapeado a decimal.Decimal.
// Usa DATABASE_URL si está definido; si no, el DSN armado desde DB_HOST, DB_PORT, etc.
// Con cfg.SlowQuery > 0 las consultas lentas se registran en log.
func NewPool(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	// Preferir IPv4 en el dial: en Docker suele no haber ruta IPv6 aunque el DNS devuelva AAAA.
	poolConfig.ConnConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		if conn, err := dialer.DialContext(ctx, "tcp4", addr); err == nil {
			return conn, nil
		}
		return dialer.DialContext(ctx, network, addr)
	}
	if cfg.SlowQuery > 0 {
		poolConfig.ConnConfig.Tracer = &slowQueryTracer{log: log, threshold: cfg.SlowQuery}
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 && cfg.MinConns <= cfg.MaxConns {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// slowQueryTracer registra consultas que superan el umbral o que fallan.
type slowQueryTracer struct {
	log       zerolog.Logger
	threshold time.Duration
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: time.Now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := time.Since(start.at)
	if data.Err == nil && elapsed < t.threshold {
		return
	}
	ev := t.log.Warn()
	if data.Err != nil {
		ev = t.log.Debug().Err(data.Err)
	}
	ev.Dur("elapsed", elapsed).Str("sql", compactSQL(start.sql)).Msg("consulta lenta o fallida")
}
