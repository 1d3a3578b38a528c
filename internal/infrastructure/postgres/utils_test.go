package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConditions_NumeraPlaceholders(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var c conditions
	c.eq("status", "DRAFT")
	c.eq("type", "")
	c.search("tor", "code", "name")
	c.between("created_at", &from, nil)

	assert.Equal(t, " WHERE status = $1 AND (code ILIKE $2 OR name ILIKE $2) AND created_at >= $3", c.where())
	assert.Equal(t, []any{"DRAFT", "%tor%", from}, c.args)

	pageSQL, args := c.page(20, 40)
	assert.Equal(t, " LIMIT $4 OFFSET $5", pageSQL)
	assert.Len(t, args, 5)
	assert.Len(t, c.args, 3, "page no debe modificar los argumentos del filtro")
}

func TestConditions_SinLimite(t *testing.T) {
	var c conditions
	pageSQL, args := c.page(0, 0)
	assert.Equal(t, " OFFSET $1", pageSQL)
	assert.Equal(t, []any{0}, args)
	assert.Empty(t, c.where())
}

func TestConditions_Alcance(t *testing.T) {
	var c conditions
	c.scope("p.id", "p.category_id", nil, nil)
	assert.Empty(t, c.where(), "sin listas no filtra")

	c.scope("p.id", "p.category_id", []string{"c1"}, nil)
	assert.Equal(t, " WHERE (p.category_id = ANY($1) OR p.id = ANY($2))", c.where())
	assert.Equal(t, []any{[]string{"c1"}, []string{}}, c.args)
}

func TestErroresPostgres(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	assert.True(t, isUniqueViolation(unique))
	assert.Equal(t, "users_email_key", violatedConstraint(unique))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(&pgconn.PgError{Code: "22P02"}), "un id mal formado equivale a inexistente")
	assert.False(t, isNoRows(&pgconn.PgError{Code: "40001"}))
}

func TestCompactSQL(t *testing.T) {
	assert.Equal(t, "SELECT id FROM orders WHERE id = $1", compactSQL("\n\t\tSELECT id\n\t\tFROM orders   WHERE id = $1\n"))
}
