package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/inventory"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/memory"
)

type fixture struct {
	db       *memory.DB
	uc       *UseCase
	ctx      context.Context
	product  *entity.Product
	from, to *entity.Store
	metrics  *countingMetrics
}

type countingMetrics struct {
	ports.NopMetrics
	ledger   map[string]int
	finished map[string]int
}

func (m *countingMetrics) LedgerEntry(t string)      { m.ledger[t]++ }
func (m *countingMetrics) TransferFinished(s string) { m.finished[s]++ }

type stubSlips struct{ got ports.TransferSlip }

func (s *stubSlips) RenderTransferSlip(slip ports.TransferSlip) ([]byte, error) {
	s.got = slip
	return []byte("%PDF"), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.NewDB()
	uow := db.UnitOfWork()
	ctx := ports.WithActor(context.Background(), ports.Actor{UserID: "u-1", Username: "bodega"})

	f := &fixture{
		db:      db,
		ctx:     ctx,
		product: &entity.Product{ID: uuid.NewString(), Code: "P-1", Name: "Tornillo", Cost: decimal.NewFromInt(2), IsActive: true},
		from:    &entity.Store{ID: uuid.NewString(), Code: "T1", Name: "Principal", IsActive: true},
		to:      &entity.Store{ID: uuid.NewString(), Code: "T2", Name: "Sucursal", IsActive: true},
		metrics: &countingMetrics{ledger: map[string]int{}, finished: map[string]int{}},
	}
	require.NoError(t, uow.Products.Create(ctx, f.product))
	require.NoError(t, uow.Stores.Create(ctx, f.from))
	require.NoError(t, uow.Stores.Create(ctx, f.to))

	f.uc = NewUseCase(Deps{
		TxRunner:     memory.NewTxRunner(db),
		Transfers:    uow.Transfers,
		Transactions: uow.Transactions,
		Stores:       uow.Stores,
		Products:     uow.Products,
		Slips:        &stubSlips{},
		Metrics:      f.metrics,
	})
	f.uc.now = func() time.Time { return time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) stock(t *testing.T, storeID string, qty int64) {
	t.Helper()
	err := memory.NewTxRunner(f.db).Run(f.ctx, func(uow ports.UnitOfWork) error {
		_, err := inventory.Post(f.ctx, uow, inventory.Entry{
			ProductID: f.product.ID, StoreID: storeID, Type: entity.TxTypeOpeningBalance,
			Delta: decimal.NewFromInt(qty),
		})
		return err
	})
	require.NoError(t, err)
}

func (f *fixture) quantity(t *testing.T, storeID string) decimal.Decimal {
	t.Helper()
	inv, err := f.db.UnitOfWork().Inventory.Get(f.ctx, f.product.ID, storeID)
	require.NoError(t, err)
	return inv.Quantity
}

func (f *fixture) request(qty ...int64) dto.TransferRequest {
	req := dto.TransferRequest{FromStoreID: f.from.ID, ToStoreID: f.to.ID}
	for _, q := range qty {
		req.Items = append(req.Items, dto.TransferItemRequest{ProductID: f.product.ID, Quantity: decimal.NewFromInt(q)})
	}
	return req
}

func TestCreate_BorradorConNumeroYLineasFusionadas(t *testing.T) {
	f := newFixture(t)

	got, err := f.uc.Create(f.ctx, f.request(3, 2))
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusDraft, got.Status)
	assert.Equal(t, "TR-20261018-0001", got.Number)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, got.Items[0].UnitCost.Equal(f.product.Cost), "sin costo usa el del producto")
	assert.True(t, f.quantity(t, f.from.ID).IsZero(), "el borrador no mueve inventario")

	second, err := f.uc.Create(f.ctx, f.request(1))
	require.NoError(t, err)
	assert.Equal(t, "TR-20261018-0002", second.Number)
}

func TestCreate_MismaTiendaRechazado(t *testing.T) {
	f := newFixture(t)
	req := f.request(1)
	req.ToStoreID = req.FromStoreID

	_, err := f.uc.Create(f.ctx, req)
	assert.ErrorIs(t, err, domain.ErrSameStore)
}

func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	req := f.request(1)
	req.Items[0].ProductID = uuid.NewString()

	_, err := f.uc.Create(f.ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplete_ConservaLaSumaEntreTiendas(t *testing.T) {
	f := newFixture(t)
	f.stock(t, f.from.ID, 10)

	created, err := f.uc.Create(f.ctx, f.request(4))
	require.NoError(t, err)

	done, err := f.uc.Complete(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, done.Status)
	assert.Equal(t, "u-1", done.CompletedBy)
	require.NotNil(t, done.CompletedAt)

	from, to := f.quantity(t, f.from.ID), f.quantity(t, f.to.ID)
	assert.True(t, from.Equal(decimal.NewFromInt(6)))
	assert.True(t, to.Equal(decimal.NewFromInt(4)))
	assert.True(t, from.Add(to).Equal(decimal.NewFromInt(10)))

	rows, err := f.uc.Transactions(f.ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	types := []string{rows[0].Type, rows[1].Type}
	assert.ElementsMatch(t, []string{entity.TxTypeTransferOut, entity.TxTypeTransferIn}, types)
	assert.Equal(t, 1, f.metrics.finished[entity.TransferStatusCompleted])
	assert.Equal(t, 1, f.metrics.ledger[entity.TxTypeTransferOut])
}

func TestComplete_ExistenciaInsuficienteNoAplicaNada(t *testing.T) {
	f := newFixture(t)
	f.stock(t, f.from.ID, 2)

	created, err := f.uc.Create(f.ctx, f.request(5))
	require.NoError(t, err)

	_, err = f.uc.Complete(f.ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	require.Len(t, ise.Shortages, 1)
	assert.True(t, ise.Shortages[0].Available.Equal(decimal.NewFromInt(2)))
	assert.True(t, ise.Shortages[0].Requested.Equal(decimal.NewFromInt(5)))

	assert.True(t, f.quantity(t, f.from.ID).Equal(decimal.NewFromInt(2)))
	assert.True(t, f.quantity(t, f.to.ID).IsZero())

	got, err := f.uc.Get(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusDraft, got.Status)
}

func TestCancel_NoTocaInventarioYEsTerminal(t *testing.T) {
	f := newFixture(t)
	f.stock(t, f.from.ID, 10)

	created, err := f.uc.Create(f.ctx, f.request(4))
	require.NoError(t, err)

	cancelled, err := f.uc.Cancel(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCancelled, cancelled.Status)
	assert.True(t, f.quantity(t, f.from.ID).Equal(decimal.NewFromInt(10)))

	_, err = f.uc.Complete(f.ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.Cancel(f.ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCompletado_NoEditableNiCancelable(t *testing.T) {
	f := newFixture(t)
	f.stock(t, f.from.ID, 10)

	created, err := f.uc.Create(f.ctx, f.request(1))
	require.NoError(t, err)
	_, err = f.uc.Complete(f.ctx, created.ID)
	require.NoError(t, err)

	_, err = f.uc.Update(f.ctx, created.ID, f.request(2))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, f.uc.Delete(f.ctx, created.ID), domain.ErrInvalidTransition)
	_, err = f.uc.Cancel(f.ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdate_ReemplazaLineas(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(f.ctx, f.request(1))
	require.NoError(t, err)

	updated, err := f.uc.Update(f.ctx, created.ID, f.request(7))
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.True(t, updated.TotalQuantity.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, created.Number, updated.Number)
}

func TestDelete_Borrador(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(f.ctx, f.request(1))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(f.ctx, created.ID))
	_, err = f.uc.Get(f.ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSlip_ResuelveTiendasYProductos(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(f.ctx, f.request(1))
	require.NoError(t, err)

	pdf, err := f.uc.Slip(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)

	slips := f.uc.slips.(*stubSlips)
	assert.Equal(t, "Principal", slips.got.FromStore.Name)
	assert.Equal(t, "Tornillo", slips.got.Products[f.product.ID].Name)
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	a, err := f.uc.Create(f.ctx, f.request(1))
	require.NoError(t, err)
	_, err = f.uc.Create(f.ctx, f.request(1))
	require.NoError(t, err)
	_, err = f.uc.Cancel(f.ctx, a.ID)
	require.NoError(t, err)

	list, err := f.uc.List(f.ctx, dto.TransferListQuery{Status: entity.TransferStatusDraft})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit)
}
