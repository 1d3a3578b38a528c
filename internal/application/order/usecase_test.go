package order

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
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/memory"
)

type fixture struct {
	db       *memory.DB
	uc       *UseCase
	ctx      context.Context
	product  *entity.Product
	store    *entity.Store
	supplier *entity.Supplier
	customer *entity.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.NewDB()
	uow := db.UnitOfWork()
	ctx := ports.WithActor(context.Background(), ports.Actor{UserID: "u-1", Username: "ventas"})

	f := &fixture{
		db:       db,
		ctx:      ctx,
		product:  &entity.Product{ID: uuid.NewString(), Code: "P-1", Name: "Cable", Cost: decimal.NewFromInt(10), IsActive: true},
		store:    &entity.Store{ID: uuid.NewString(), Code: "T1", Name: "Principal", IsActive: true},
		supplier: &entity.Supplier{ID: uuid.NewString(), Name: "Proveedor", IsActive: true},
		customer: &entity.Customer{ID: uuid.NewString(), Name: "Cliente", IsActive: true},
	}
	require.NoError(t, uow.Products.Create(ctx, f.product))
	require.NoError(t, uow.Stores.Create(ctx, f.store))
	suppliers := memory.NewSupplierRepository(db)
	customers := memory.NewCustomerRepository(db)
	require.NoError(t, suppliers.Create(ctx, f.supplier))
	require.NoError(t, customers.Create(ctx, f.customer))

	f.uc = NewUseCase(Deps{
		TxRunner:  memory.NewTxRunner(db),
		Orders:    uow.Orders,
		Customers: customers,
		Suppliers: suppliers,
	})
	f.uc.now = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }
	return f
}

func (f *fixture) stock(t *testing.T, qty int64) {
	t.Helper()
	err := memory.NewTxRunner(f.db).Run(f.ctx, func(uow ports.UnitOfWork) error {
		_, err := inventory.Post(f.ctx, uow, inventory.Entry{
			ProductID: f.product.ID, StoreID: f.store.ID, Type: entity.TxTypeOpeningBalance,
			Delta: decimal.NewFromInt(qty),
		})
		return err
	})
	require.NoError(t, err)
}

func (f *fixture) quantity(t *testing.T) decimal.Decimal {
	t.Helper()
	inv, err := f.db.UnitOfWork().Inventory.Get(f.ctx, f.product.ID, f.store.ID)
	require.NoError(t, err)
	return inv.Quantity
}

func (f *fixture) purchase(qty, price int64) dto.OrderRequest {
	return dto.OrderRequest{
		Type:       entity.OrderTypePurchase,
		SupplierID: f.supplier.ID,
		Items: []dto.OrderItemRequest{{
			ProductID: f.product.ID, StoreID: f.store.ID,
			Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(price),
		}},
	}
}

func (f *fixture) sale(qty int64) dto.OrderRequest {
	return dto.OrderRequest{
		Type: entity.OrderTypeSale,
		Items: []dto.OrderItemRequest{{
			ProductID: f.product.ID, StoreID: f.store.ID,
			Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(25),
			Discount: decimal.NewFromInt(5),
		}},
	}
}

func (f *fixture) toPending(t *testing.T, in dto.OrderRequest) *dto.OrderResponse {
	t.Helper()
	o, err := f.uc.Create(f.ctx, in)
	require.NoError(t, err)
	o, err = f.uc.MarkPending(f.ctx, o.ID)
	require.NoError(t, err)
	return o
}

func TestCreate_TotalesDerivadosYNumeracion(t *testing.T) {
	f := newFixture(t)

	o, err := f.uc.Create(f.ctx, f.sale(2))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDraft, o.Status)
	assert.Equal(t, "OV-20261018-0001", o.Number)
	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(50)))
	assert.True(t, o.Discount.Equal(decimal.NewFromInt(5)))
	assert.True(t, o.Total.Equal(decimal.NewFromInt(45)))
	assert.True(t, o.Items[0].LineTotal.Equal(decimal.NewFromInt(45)))

	p, err := f.uc.Create(f.ctx, f.purchase(1, 8))
	require.NoError(t, err)
	assert.Equal(t, "OC-20261018-0001", p.Number)
}

func TestCreate_CompraSinProveedor(t *testing.T) {
	f := newFixture(t)
	in := f.purchase(1, 1)
	in.SupplierID = ""

	_, err := f.uc.Create(f.ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture(t)
	in := f.sale(1)
	in.CustomerID = uuid.NewString()

	_, err := f.uc.Create(f.ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplete_CompraIngresaYRecalculaCosto(t *testing.T) {
	f := newFixture(t)
	f.stock(t, 10) // 10 a costo 10

	o := f.toPending(t, f.purchase(10, 20))
	done, err := f.uc.Complete(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(20)))
	p, err := f.db.UnitOfWork().Products.GetByID(f.ctx, f.product.ID)
	require.NoError(t, err)
	assert.True(t, p.Cost.Equal(decimal.NewFromInt(15)), "costo promedio ponderado, obtuvo %s", p.Cost)

	rows, _, err := f.db.UnitOfWork().Transactions.List(f.ctx, repository.TransactionFilter{OrderID: o.ID}, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.TxTypePurchase, rows[0].Type)
	assert.Equal(t, o.Items[0].ID, rows[0].OrderItemID)
}

func TestComplete_VentaSinExistenciaNoAplicaNada(t *testing.T) {
	f := newFixture(t)
	f.stock(t, 1)

	o := f.toPending(t, f.sale(3))
	_, err := f.uc.Complete(f.ctx, o.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.True(t, ise.Shortages[0].Requested.Equal(decimal.NewFromInt(3)))
	assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(1)))

	got, err := f.uc.Get(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
}

func TestComplete_DesdeBorradorRechazado(t *testing.T) {
	f := newFixture(t)
	o, err := f.uc.Create(f.ctx, f.sale(1))
	require.NoError(t, err)

	_, err = f.uc.Complete(f.ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_PendienteNoTocaInventario(t *testing.T) {
	f := newFixture(t)
	f.stock(t, 5)
	o := f.toPending(t, f.sale(2))

	c, err := f.uc.Cancel(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, c.Status)
	assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(5)))
}

func TestCancel_VentaCompletadaDevuelveExistencia(t *testing.T) {
	f := newFixture(t)
	f.stock(t, 5)
	o := f.toPending(t, f.sale(2))
	_, err := f.uc.Complete(f.ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(3)))

	_, err = f.uc.Cancel(f.ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(5)))

	rows, _, err := f.db.UnitOfWork().Transactions.List(f.ctx, repository.TransactionFilter{OrderID: o.ID}, 0, 0)
	require.NoError(t, err)
	types := make([]string, 0, len(rows))
	for _, r := range rows {
		types = append(types, r.Type)
	}
	assert.ElementsMatch(t, []string{entity.TxTypeSale, entity.TxTypeSaleReturn}, types)
}

func TestCancel_CompraCompletadaSinExistenciaParaDevolver(t *testing.T) {
	f := newFixture(t)
	o := f.toPending(t, f.purchase(4, 10))
	_, err := f.uc.Complete(f.ctx, o.ID)
	require.NoError(t, err)

	sale := f.toPending(t, f.sale(3))
	_, err = f.uc.Complete(f.ctx, sale.ID)
	require.NoError(t, err)

	_, err = f.uc.Cancel(f.ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.quantity(t).Equal(decimal.NewFromInt(1)))
}

func TestCancel_CanceladaEsTerminal(t *testing.T) {
	f := newFixture(t)
	o, err := f.uc.Create(f.ctx, f.sale(1))
	require.NoError(t, err)
	_, err = f.uc.Cancel(f.ctx, o.ID)
	require.NoError(t, err)

	_, err = f.uc.Cancel(f.ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.MarkPending(f.ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdate_PendienteEditableCompletadaNo(t *testing.T) {
	f := newFixture(t)
	f.stock(t, 10)
	o := f.toPending(t, f.sale(1))

	updated, err := f.uc.Update(f.ctx, o.ID, f.sale(4))
	require.NoError(t, err)
	assert.True(t, updated.Subtotal.Equal(decimal.NewFromInt(100)))

	_, err = f.uc.Complete(f.ctx, o.ID)
	require.NoError(t, err)
	_, err = f.uc.Update(f.ctx, o.ID, f.sale(2))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdate_NoCambiaTipo(t *testing.T) {
	f := newFixture(t)
	o, err := f.uc.Create(f.ctx, f.sale(1))
	require.NoError(t, err)

	_, err = f.uc.Update(f.ctx, o.ID, f.purchase(1, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_SoloBorrador(t *testing.T) {
	f := newFixture(t)
	o := f.toPending(t, f.sale(1))
	assert.ErrorIs(t, f.uc.Delete(f.ctx, o.ID), domain.ErrInvalidTransition)

	d, err := f.uc.Create(f.ctx, f.sale(1))
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(f.ctx, d.ID))
}

func TestList_FiltraPorTipo(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.ctx, f.sale(1))
	require.NoError(t, err)
	_, err = f.uc.Create(f.ctx, f.purchase(1, 1))
	require.NoError(t, err)

	list, err := f.uc.List(f.ctx, dto.OrderListQuery{Type: entity.OrderTypePurchase})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.OrderTypePurchase, list.Items[0].Type)
}

func TestComplete_VentaGuardaCostoVigenteYLaAnulacionLoReusa(t *testing.T) {
	f := newFixture(t)
	f.stock(t, 10) // 10 a costo 10

	sale := f.toPending(t, f.sale(2))
	require.True(t, sale.Items[0].UnitCost.Equal(decimal.NewFromInt(10)))

	purchase := f.toPending(t, f.purchase(10, 30))
	_, err := f.uc.Complete(f.ctx, purchase.ID)
	require.NoError(t, err) // promedio: (10*10 + 10*30) / 20 = 20

	done, err := f.uc.Complete(f.ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, done.Items[0].UnitCost.Equal(decimal.NewFromInt(20)), "obtuvo %s", done.Items[0].UnitCost)

	stored, err := f.uc.Get(f.ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, stored.Items[0].UnitCost.Equal(done.Items[0].UnitCost), "guardado %s", stored.Items[0].UnitCost)

	_, err = f.uc.Cancel(f.ctx, sale.ID)
	require.NoError(t, err)

	rows, _, err := f.db.UnitOfWork().Transactions.List(f.ctx, repository.TransactionFilter{OrderID: sale.ID}, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.UnitCost.Equal(decimal.NewFromInt(20)), "%s a costo %s", r.Type, r.UnitCost)
	}
}
