package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
)

var _ repository.StoreTransferRepository = (*StoreTransferRepo)(nil)

const transferColumns = `id, number, from_store_id, to_store_id, transfer_date, status, notes,
	created_by, completed_by, completed_at, cancelled_at, created_at, updated_at`

// StoreTransferRepo traslados y sus líneas sobre PostgreSQL (usable con pool o tx).
type StoreTransferRepo struct {
	q Querier
}

// NewStoreTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreTransferRepository(q Querier) *StoreTransferRepo {
	return &StoreTransferRepo{q: q}
}

// Create inserta cabecera y líneas. Debe ir dentro de una transacción.
func (r *StoreTransferRepo) Create(ctx context.Context, t *entity.StoreTransfer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO store_transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.Number, t.FromStoreID, t.ToStoreID, t.TransferDate, t.Status, t.Notes,
		nullable(t.CreatedBy), nullable(t.CompletedBy), t.CompletedAt, t.CancelledAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store transfer: %w", err)
	}
	return r.insertItems(ctx, t)
}

func (r *StoreTransferRepo) insertItems(ctx context.Context, t *entity.StoreTransfer) error {
	for _, it := range t.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO store_transfer_items (id, transfer_id, product_id, quantity, unit_cost, notes)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, t.ID, it.ProductID, it.Quantity, it.UnitCost, it.Notes)
		if err != nil {
			return fmt.Errorf("insert store transfer item: %w", err)
		}
	}
	return nil
}

// GetByID cabecera con líneas; (nil, nil) si no existe.
func (r *StoreTransferRepo) GetByID(ctx context.Context, id string) (*entity.StoreTransfer, error) {
	return r.get(ctx, `SELECT `+transferColumns+` FROM store_transfers WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la cabecera hasta el fin de la transacción.
func (r *StoreTransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.StoreTransfer, error) {
	return r.get(ctx, `SELECT `+transferColumns+` FROM store_transfers WHERE id = $1 FOR UPDATE`, id)
}

func (r *StoreTransferRepo) get(ctx context.Context, query, id string) (*entity.StoreTransfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store transfer: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, transfer_id, product_id, quantity, unit_cost, notes
		FROM store_transfer_items WHERE transfer_id = $1 ORDER BY product_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list store transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.StoreTransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.Quantity, &it.UnitCost, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan store transfer item: %w", err)
		}
		t.Items = append(t.Items, it)
	}
	return t, rows.Err()
}

// Update reemplaza cabecera y líneas de un borrador.
func (r *StoreTransferRepo) Update(ctx context.Context, t *entity.StoreTransfer) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE store_transfers SET from_store_id = $2, to_store_id = $3, transfer_date = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		t.ID, t.FromStoreID, t.ToStoreID, t.TransferDate, t.Notes, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update store transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM store_transfer_items WHERE transfer_id = $1`, t.ID); err != nil {
		return fmt.Errorf("delete store transfer items: %w", err)
	}
	return r.insertItems(ctx, t)
}

// UpdateStatus persiste estado y marcas de tiempo del cierre.
func (r *StoreTransferRepo) UpdateStatus(ctx context.Context, t *entity.StoreTransfer) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE store_transfers SET status = $2, completed_by = $3, completed_at = $4, cancelled_at = $5, updated_at = $6
		WHERE id = $1`,
		t.ID, t.Status, nullable(t.CompletedBy), t.CompletedAt, t.CancelledAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update store transfer status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el traslado; las líneas caen por cascada.
func (r *StoreTransferRepo) Delete(ctx context.Context, id string) error {
	return deleteReferenced(ctx, r.q, "store_transfers", id)
}

// List cabeceras sin líneas, más reciente primero.
func (r *StoreTransferRepo) List(ctx context.Context, f repository.TransferFilter, limit, offset int) ([]*entity.StoreTransfer, int, error) {
	var c conditions
	c.eq("status", f.Status)
	c.eq("from_store_id::text", f.FromStoreID)
	c.eq("to_store_id::text", f.ToStoreID)
	c.between("transfer_date", f.From, f.To)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM store_transfers`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count store transfers: %w", err)
	}
	pageSQL, args := c.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+transferColumns+` FROM store_transfers`+c.where()+` ORDER BY created_at DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list store transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoreTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan store transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// CountByDate último consecutivo usado en el día; un borrador eliminado no libera su número.
func (r *StoreTransferRepo) CountByDate(ctx context.Context, day time.Time) (int, error) {
	return lastSequence(ctx, r.q, "store_transfers", "", day)
}

func scanTransfer(row pgx.Row) (*entity.StoreTransfer, error) {
	var t entity.StoreTransfer
	var createdBy, completedBy *string
	if err := row.Scan(&t.ID, &t.Number, &t.FromStoreID, &t.ToStoreID, &t.TransferDate, &t.Status, &t.Notes,
		&createdBy, &completedBy, &t.CompletedAt, &t.CancelledAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.CreatedBy, t.CompletedBy = deref(createdBy), deref(completedBy)
	return &t, nil
}

// lastSequence mayor sufijo NNNN de los números (PREFIJO-AAAAMMDD-NNNN) creados en el día.
func lastSequence(ctx context.Context, q Querier, table, orderType string, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	var c conditions
	c.add("created_at >= ?", start)
	c.add("created_at < ?", start.AddDate(0, 0, 1))
	c.eq("type", orderType)
	// el candado dura hasta el fin de la transacción: dos altas del mismo día no leen el mismo máximo
	key := fmt.Sprintf("%s:%s:%s", table, orderType, start.Format("20060102"))
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return 0, fmt.Errorf("sequence lock %s: %w", table, err)
	}
	var n int
	err := q.QueryRow(ctx,
		`SELECT COALESCE(max(NULLIF(split_part(number, '-', 3), '')::int), 0) FROM `+table+c.where(),
		c.args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", table, err)
	}
	return n, nil
}
