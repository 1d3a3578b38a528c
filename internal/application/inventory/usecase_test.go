package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/memory"
)

type recorder struct{ entries []ports.ActivityEntry }

func (r *recorder) Record(_ context.Context, e ports.ActivityEntry) { r.entries = append(r.entries, e) }

type env struct {
	db       *memory.DB
	adjust   *AdjustmentUseCase
	query    *QueryUseCase
	activity *recorder
	ctx      context.Context
	product  *entity.Product
	store    *entity.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := memory.NewDB()
	uow := db.UnitOfWork()
	e := &env{
		db:       db,
		activity: &recorder{},
		ctx:      ports.WithActor(context.Background(), ports.Actor{UserID: "u-1"}),
		product: &entity.Product{
			ID: uuid.NewString(), Code: "P-1", Name: "Clavo", CategoryID: "cat-1",
			Cost: decimal.NewFromInt(3), ReorderLevel: decimal.NewFromInt(5), IsActive: true,
		},
		store: &entity.Store{ID: uuid.NewString(), Code: "T1", Name: "Principal", IsActive: true},
	}
	require.NoError(t, uow.Products.Create(e.ctx, e.product))
	require.NoError(t, uow.Stores.Create(e.ctx, e.store))
	e.adjust = NewAdjustmentUseCase(memory.NewTxRunner(db), e.activity, nil)
	e.query = NewQueryUseCase(uow.Inventory, uow.Transactions, nil)
	return e
}

func (e *env) req(qty int64) dto.AdjustInventoryRequest {
	return dto.AdjustInventoryRequest{
		ProductID: e.product.ID, StoreID: e.store.ID,
		Quantity: decimal.NewFromInt(qty), Reason: "Conteo físico",
	}
}

func (e *env) quantity(t *testing.T) decimal.Decimal {
	t.Helper()
	inv, err := e.db.UnitOfWork().Inventory.Get(e.ctx, e.product.ID, e.store.ID)
	require.NoError(t, err)
	return inv.Quantity
}

func TestAdjust_RegistraSaldoAntesYDespues(t *testing.T) {
	e := newEnv(t)

	tx, err := e.adjust.Adjust(e.ctx, e.req(8))
	require.NoError(t, err)
	assert.Equal(t, entity.TxTypeAdjustmentPlus, tx.Type)
	assert.True(t, tx.QuantityBefore.IsZero())
	assert.True(t, tx.QuantityAfter.Equal(decimal.NewFromInt(8)))

	tx, err = e.adjust.Adjust(e.ctx, e.req(-3))
	require.NoError(t, err)
	assert.Equal(t, entity.TxTypeAdjustmentMinus, tx.Type)
	assert.True(t, tx.QuantityBefore.Equal(decimal.NewFromInt(8)))
	assert.True(t, tx.QuantityAfter.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "u-1", tx.CreatedBy)

	require.Len(t, e.activity.entries, 2)
	assert.Equal(t, entity.ActionAdjust, e.activity.entries[0].Action)
}

func TestAdjust_NegativoRechazadoSinPermitir(t *testing.T) {
	e := newEnv(t)

	_, err := e.adjust.Adjust(e.ctx, e.req(-1))
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.True(t, e.quantity(t).IsZero())

	in := e.req(-1)
	in.AllowNegative = true
	tx, err := e.adjust.Adjust(e.ctx, in)
	require.NoError(t, err)
	assert.True(t, tx.QuantityAfter.Equal(decimal.NewFromInt(-1)))
}

func TestAdjust_Validaciones(t *testing.T) {
	e := newEnv(t)

	_, err := e.adjust.Adjust(e.ctx, e.req(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := e.req(1)
	in.Reason = "  "
	_, err = e.adjust.Adjust(e.ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = e.req(1)
	in.StoreID = uuid.NewString()
	_, err = e.adjust.Adjust(e.ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_FueraDeAlcanceProhibido(t *testing.T) {
	e := newEnv(t)
	ctx := ports.WithActor(context.Background(), ports.Actor{UserID: "u-2", CategoryIDs: []string{"otra"}})

	_, err := e.adjust.Adjust(ctx, e.req(1))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestBulkAdjust_TodoONada(t *testing.T) {
	e := newEnv(t)

	_, err := e.adjust.BulkAdjust(e.ctx, dto.BulkAdjustRequest{Items: []dto.AdjustInventoryRequest{e.req(4), e.req(-10)}})
	require.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Contains(t, err.Error(), "línea 2")
	assert.True(t, e.quantity(t).IsZero())

	out, err := e.adjust.BulkAdjust(e.ctx, dto.BulkAdjustRequest{Items: []dto.AdjustInventoryRequest{e.req(4), e.req(-1)}})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.True(t, e.quantity(t).Equal(decimal.NewFromInt(3)))
}

func TestInitialStock_SoloUnaVezYActualizaCosto(t *testing.T) {
	e := newEnv(t)
	in := dto.InitialStockRequest{
		ProductID: e.product.ID, StoreID: e.store.ID,
		Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(7),
	}

	tx, err := e.adjust.InitialStock(e.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, entity.TxTypeOpeningBalance, tx.Type)

	p, err := e.db.UnitOfWork().Products.GetByID(e.ctx, e.product.ID)
	require.NoError(t, err)
	assert.True(t, p.Cost.Equal(decimal.NewFromInt(7)))

	_, err = e.adjust.InitialStock(e.ctx, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReconcile_LibroCuadraConExistencia(t *testing.T) {
	e := newEnv(t)
	_, err := e.adjust.Adjust(e.ctx, e.req(6))
	require.NoError(t, err)
	_, err = e.adjust.Adjust(e.ctx, e.req(-2))
	require.NoError(t, err)

	r, err := e.query.Reconcile(e.ctx, e.product.ID, e.store.ID)
	require.NoError(t, err)
	assert.True(t, r.Balanced)
	assert.True(t, r.LedgerTotal.Equal(decimal.NewFromInt(4)))
}

func TestLowStock_UsaNivelDeReorden(t *testing.T) {
	e := newEnv(t)
	_, err := e.adjust.Adjust(e.ctx, e.req(4))
	require.NoError(t, err)

	list, err := e.query.LowStock(e.ctx, dto.LowStockQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "P-1", list.Items[0].ProductCode)

	above := decimal.NewFromInt(2)
	list, err = e.query.LowStock(e.ctx, dto.LowStockQuery{Threshold: &above})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestLowStock_SinNivelDeReordenUsaUmbralPorDefecto(t *testing.T) {
	e := newEnv(t)
	sinNivel := &entity.Product{
		ID: uuid.NewString(), Code: "P-2", Name: "Tornillo", CategoryID: "cat-1",
		Cost: decimal.NewFromInt(1), IsActive: true,
	}
	require.NoError(t, e.db.UnitOfWork().Products.Create(e.ctx, sinNivel))
	_, err := e.adjust.Adjust(e.ctx, dto.AdjustInventoryRequest{
		ProductID: sinNivel.ID, StoreID: e.store.ID, Quantity: decimal.NewFromInt(7), Reason: "Conteo físico",
	})
	require.NoError(t, err)
	_, err = e.adjust.Adjust(e.ctx, e.req(9))
	require.NoError(t, err)

	list, err := e.query.LowStock(e.ctx, dto.LowStockQuery{})
	require.NoError(t, err)
	// P-1 tiene nivel 5 y 9 unidades; P-2 no tiene nivel y 7 <= 10
	require.Len(t, list.Items, 1)
	assert.Equal(t, "P-2", list.Items[0].ProductCode)

	sugerencias, err := NewReplenishmentUseCase(e.db.UnitOfWork().Inventory).GenerateReplenishmentList(e.ctx, e.store.ID)
	require.NoError(t, err)
	assert.Empty(t, sugerencias)
}

func TestTransactions_FiltraPorTipo(t *testing.T) {
	e := newEnv(t)
	_, err := e.adjust.Adjust(e.ctx, e.req(6))
	require.NoError(t, err)
	_, err = e.adjust.Adjust(e.ctx, e.req(-2))
	require.NoError(t, err)

	list, err := e.query.Transactions(e.ctx, dto.TransactionListQuery{Type: entity.TxTypeAdjustmentMinus})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].QuantityChanged.Equal(decimal.NewFromInt(-2)))
}

func TestReplenishment_SugiereHastaNivelIdeal(t *testing.T) {
	e := newEnv(t)
	_, err := e.adjust.Adjust(e.ctx, e.req(2))
	require.NoError(t, err)

	list, err := NewReplenishmentUseCase(e.db.UnitOfWork().Inventory).GenerateReplenishmentList(e.ctx, e.store.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	// ideal 5 * 1.5 = 7.5, actual 2
	assert.True(t, list[0].SuggestedOrderQty.Equal(decimal.NewFromFloat(5.5)))
	assert.Equal(t, 1, list[0].Priority)
}
