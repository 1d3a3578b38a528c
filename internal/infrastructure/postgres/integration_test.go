package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/inventory"
	"github.com/jhoicas/Warehousing-api/internal/application/transfer"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/domain/repository"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Warehousing-api/pkg/config"
)

type PostgresIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	ctx       context.Context

	transfers *transfer.UseCase
	adjust    *inventory.AdjustmentUseCase
	inventory *postgres.InventoryRepo
	ledger    *postgres.TransactionRepo
	dashboard *postgres.DashboardRepo

	product    *entity.Product
	main, shop *entity.Store
}

func (s *PostgresIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("warehousing_test"),
		tcpostgres.WithUsername("warehousing"),
		tcpostgres.WithPassword("warehousing"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := postgres.NewPool(s.ctx, config.DBConfig{DatabaseURL: connStr, MaxConns: 10}, zerolog.Nop())
	s.Require().NoError(err)
	s.pool = pool

	s.Require().NoError(postgres.NewMigrator(pool).Up(s.ctx))

	s.inventory = postgres.NewInventoryRepository(pool)
	s.ledger = postgres.NewTransactionRepository(pool)
	s.dashboard = postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	s.adjust = inventory.NewAdjustmentUseCase(txRunner, nil, nil)
	s.transfers = transfer.NewUseCase(transfer.Deps{
		TxRunner:     txRunner,
		Transfers:    postgres.NewStoreTransferRepository(pool),
		Transactions: s.ledger,
		Stores:       postgres.NewStoreRepository(pool),
		Products:     postgres.NewProductRepository(pool),
	})
}

func (s *PostgresIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

// SetupTest crea un producto y dos tiendas nuevos; cada prueba trabaja sobre sus propias filas.
func (s *PostgresIntegrationTestSuite) SetupTest() {
	now := time.Now()
	suffix := uuid.NewString()[:8]
	s.product = &entity.Product{
		ID: uuid.NewString(), Code: "P-" + suffix, Name: "Tornillo " + suffix, Unit: "UND",
		Cost: decimal.Zero, Price: decimal.NewFromInt(2), IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	s.Require().NoError(postgres.NewProductRepository(s.pool).Create(s.ctx, s.product))

	stores := postgres.NewStoreRepository(s.pool)
	s.main = &entity.Store{ID: uuid.NewString(), Code: "B-" + suffix, Name: "Bodega " + suffix, IsMainWarehouse: true, IsActive: true, CreatedAt: now, UpdatedAt: now}
	s.shop = &entity.Store{ID: uuid.NewString(), Code: "T-" + suffix, Name: "Tienda " + suffix, IsActive: true, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(stores.Create(s.ctx, s.main))
	s.Require().NoError(stores.Create(s.ctx, s.shop))
}

func (s *PostgresIntegrationTestSuite) stock(qty int64) {
	_, err := s.adjust.InitialStock(s.ctx, dto.InitialStockRequest{
		ProductID: s.product.ID, StoreID: s.main.ID,
		Quantity: decimal.NewFromInt(qty), UnitCost: decimal.NewFromInt(4),
	})
	s.Require().NoError(err)
}

func (s *PostgresIntegrationTestSuite) draft(qty int64) *dto.TransferResponse {
	tr, err := s.transfers.Create(s.ctx, dto.TransferRequest{
		FromStoreID: s.main.ID, ToStoreID: s.shop.ID,
		Items: []dto.TransferItemRequest{{ProductID: s.product.ID, Quantity: decimal.NewFromInt(qty)}},
	})
	s.Require().NoError(err)
	return tr
}

func (s *PostgresIntegrationTestSuite) quantity(storeID string) decimal.Decimal {
	inv, err := s.inventory.Get(s.ctx, s.product.ID, storeID)
	s.Require().NoError(err)
	return inv.Quantity
}

// requireBalanced la suma del libro coincide con la existencia de cada tienda.
func (s *PostgresIntegrationTestSuite) requireBalanced(storeIDs ...string) {
	for _, id := range storeIDs {
		sum, err := s.ledger.SumChanged(s.ctx, s.product.ID, id)
		s.Require().NoError(err)
		s.True(sum.Equal(s.quantity(id)), "libro %s != existencia %s", sum, s.quantity(id))
	}
}

func (s *PostgresIntegrationTestSuite) TestCompleteTransfer_ConservaTotalYCuadraLibro() {
	s.stock(10)
	tr := s.draft(4)

	done, err := s.transfers.Complete(s.ctx, tr.ID)
	s.Require().NoError(err)
	s.Equal(entity.TransferStatusCompleted, done.Status)

	s.True(s.quantity(s.main.ID).Equal(decimal.NewFromInt(6)))
	s.True(s.quantity(s.shop.ID).Equal(decimal.NewFromInt(4)))
	s.True(s.quantity(s.main.ID).Add(s.quantity(s.shop.ID)).Equal(decimal.NewFromInt(10)))
	s.requireBalanced(s.main.ID, s.shop.ID)

	txs, err := s.transfers.Transactions(s.ctx, tr.ID)
	s.Require().NoError(err)
	s.Len(txs, 2)
	moved := decimal.Zero
	for _, t := range txs {
		if t.Type == entity.TxTypeTransferIn {
			moved = moved.Add(t.QuantityChanged)
		}
	}
	s.True(moved.Equal(decimal.NewFromInt(4)))

	_, err = s.transfers.Complete(s.ctx, tr.ID)
	s.ErrorIs(err, domain.ErrInvalidTransition)
}

func (s *PostgresIntegrationTestSuite) TestCompleteTransfer_ConcurrentesSobreMismoOrigen() {
	s.stock(10)
	first := s.draft(7)
	second := s.draft(7)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = s.transfers.Complete(s.ctx, id)
		}(i, id)
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		var insufficient *domain.InsufficientStockError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &insufficient):
			short++
			s.Require().Len(insufficient.Shortages, 1)
			s.True(insufficient.Shortages[0].Available.Equal(decimal.NewFromInt(3)))
		default:
			s.Failf("error inesperado", "%v", err)
		}
	}
	s.Equal(1, ok)
	s.Equal(1, short)

	s.True(s.quantity(s.main.ID).Equal(decimal.NewFromInt(3)))
	s.True(s.quantity(s.shop.ID).Equal(decimal.NewFromInt(7)))
	s.requireBalanced(s.main.ID, s.shop.ID)
}

func (s *PostgresIntegrationTestSuite) TestCreateTransfer_NumerosUnicosEnAltasConcurrentes() {
	const n = 8
	var wg sync.WaitGroup
	numbers := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr, err := s.transfers.Create(s.ctx, dto.TransferRequest{
				FromStoreID: s.main.ID, ToStoreID: s.shop.ID,
				Items: []dto.TransferItemRequest{{ProductID: s.product.ID, Quantity: decimal.NewFromInt(1)}},
			})
			errs[i] = err
			if err == nil {
				numbers[i] = tr.Number
			}
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		s.Require().NoError(errs[i])
		s.False(seen[numbers[i]], "número repetido %s", numbers[i])
		seen[numbers[i]] = true
		s.Regexp(fmt.Sprintf(`^TR-%s-\d{4}$`, time.Now().Format("20060102")), numbers[i])
	}
}

func (s *PostgresIntegrationTestSuite) TestLowStock_SinNivelUsaUmbralPorDefecto() {
	s.stock(7)

	rows, _, err := s.inventory.LowStock(s.ctx, nil, decimal.NewFromInt(10), repository.InventoryFilter{ProductID: s.product.ID}, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(s.main.ID, rows[0].StoreID)

	rows, _, err = s.inventory.LowStock(s.ctx, nil, decimal.Zero, repository.InventoryFilter{ProductID: s.product.ID}, 0, 0)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *PostgresIntegrationTestSuite) TestDashboard_ConsultasSobreDatosReales() {
	s.stock(3)
	_, err := s.transfers.Complete(s.ctx, s.draft(3).ID)
	s.Require().NoError(err)

	counts, err := s.dashboard.Counts(s.ctx, decimal.NewFromInt(10), time.Now().AddDate(0, 0, -7))
	s.Require().NoError(err)
	s.GreaterOrEqual(counts.ActiveStores, 2)
	s.GreaterOrEqual(counts.ZeroStock, 1)
	s.GreaterOrEqual(counts.RecentTransfers, 1)

	perf, err := s.dashboard.StorePerformance(s.ctx, decimal.NewFromInt(10))
	s.Require().NoError(err)
	var mainRow *repository.StoreStockTotal
	for i := range perf {
		if perf[i].StoreID == s.main.ID {
			mainRow = &perf[i]
		}
	}
	s.Require().NotNil(mainRow)
	s.Equal(1, mainRow.Products)
	s.Equal(1, mainRow.ZeroStock)

	out, err := s.dashboard.StockAlerts(s.ctx, decimal.Zero, true, 100)
	s.Require().NoError(err)
	found := false
	for _, v := range out {
		if v.ProductID == s.product.ID && v.StoreID == s.main.ID {
			found = true
		}
	}
	s.True(found)

	recent, err := s.dashboard.RecentTransactions(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(recent, 3)
	s.Equal(s.product.Code, recent[0].ProductCode)

	monthly, err := s.dashboard.MonthlyTransactions(s.ctx, time.Now().AddDate(0, -1, 0))
	s.Require().NoError(err)
	s.Require().NotEmpty(monthly)
	last := monthly[len(monthly)-1]
	s.GreaterOrEqual(last.Transactions, 3)
}

func TestPostgresIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	suite.Run(t, new(PostgresIntegrationTestSuite))
}
