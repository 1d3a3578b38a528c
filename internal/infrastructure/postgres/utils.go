package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx; los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation la fila está referenciada por otra tabla (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isNoRows sin filas, o un id con formato que no es UUID (22P02): para el llamador es "no existe".
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02"
}

// violatedConstraint nombre del constraint que falló, si el error viene de PostgreSQL.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// conditions arma un WHERE con placeholders numerados.
type conditions struct {
	parts []string
	args  []any
}

// add agrega una condición; cada "?" de expr se reemplaza por el siguiente $n.
func (c *conditions) add(expr string, values ...any) {
	for _, v := range values {
		c.args = append(c.args, v)
		expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", len(c.args)), 1)
	}
	c.parts = append(c.parts, expr)
}

func (c *conditions) eq(column, value string) {
	if value != "" {
		c.add(column+" = ?", value)
	}
}

func (c *conditions) between(column string, from, to *time.Time) {
	if from != nil {
		c.add(column+" >= ?", *from)
	}
	if to != nil {
		c.add(column+" <= ?", *to)
	}
}

// search ILIKE sobre varias columnas con un mismo parámetro.
func (c *conditions) search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	c.args = append(c.args, "%"+term+"%")
	ph := fmt.Sprintf("$%d", len(c.args))
	ors := make([]string, 0, len(columns))
	for _, col := range columns {
		ors = append(ors, col+" ILIKE "+ph)
	}
	c.parts = append(c.parts, "("+strings.Join(ors, " OR ")+")")
}

// scope restringe a productos visibles por categoría o id; sin listas no filtra.
func (c *conditions) scope(productCol, categoryCol string, categoryIDs, productIDs []string) {
	if len(categoryIDs) == 0 && len(productIDs) == 0 {
		return
	}
	c.add(fmt.Sprintf("(%s = ANY(?) OR %s = ANY(?))", categoryCol, productCol), nonNil(categoryIDs), nonNil(productIDs))
}

func (c *conditions) where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// page agrega LIMIT/OFFSET al final de los argumentos. limit <= 0 devuelve todas las filas.
func (c *conditions) page(limit, offset int) (string, []any) {
	args := append([]any{}, c.args...)
	if limit <= 0 {
		args = append(args, offset)
		return fmt.Sprintf(" OFFSET $%d", len(args)), args
	}
	args = append(args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// nullable convierte "" en NULL para columnas de referencia opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// compactSQL colapsa espacios y saltos de línea para el log.
func compactSQL(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
