package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Warehousing-api/internal/application/activity"
	"github.com/jhoicas/Warehousing-api/internal/application/analytics"
	"github.com/jhoicas/Warehousing-api/internal/application/auth"
	"github.com/jhoicas/Warehousing-api/internal/application/inventory"
	"github.com/jhoicas/Warehousing-api/internal/application/order"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/application/transfer"
	"github.com/jhoicas/Warehousing-api/internal/application/usecase"
	"github.com/jhoicas/Warehousing-api/internal/application/workinghours"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/cache"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/export"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Warehousing-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Warehousing-api/internal/interfaces/http"
	"github.com/jhoicas/Warehousing-api/pkg/config"
	"github.com/jhoicas/Warehousing-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.NewMigrator(pool).Up(ctx); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	// Caché del horario laboral: Redis si está configurado, si no en memoria del proceso
	var whCache ports.Cache = cache.NewMemory()
	if redisCache := cache.NewRedis(cfg.Redis); redisCache != nil {
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis no disponible; se usa caché en memoria")
		} else {
			whCache = redisCache
			defer redisCache.Close()
		}
	}

	var business ports.BusinessMetrics = ports.NopMetrics{}
	var promMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		promMetrics = metrics.New(cfg.App.Name, cfg.Metrics.Namespace)
		business = promMetrics
	}

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	subCategoryRepo := postgres.NewSubCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	transferRepo := postgres.NewStoreTransferRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	activitySvc := activity.NewService(postgres.NewActivityLogRepository(pool), log.Component("activity"), cfg.ActivityLog.RetentionDays)
	workingHoursSvc := workinghours.NewService(postgres.NewWorkingHoursRepository(pool), workinghours.Options{
		Cache:    whCache,
		CacheTTL: cfg.Redis.CacheTTL,
		Location: cfg.WorkingHours.Location(),
		Activity: activitySvc,
		Logger:   log.Component("working-hours"),
	})

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, activitySvc)

	transferUC := transfer.NewUseCase(transfer.Deps{
		TxRunner:     txRunner,
		Transfers:    transferRepo,
		Transactions: transactionRepo,
		Stores:       storeRepo,
		Products:     productRepo,
		Slips:        infrapdf.NewMarotoRenderer(),
		Activity:     activitySvc,
		Metrics:      business,
	})
	orderUC := order.NewUseCase(order.Deps{
		TxRunner:  txRunner,
		Orders:    orderRepo,
		Customers: customerRepo,
		Suppliers: supplierRepo,
		Activity:  activitySvc,
		Metrics:   business,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler(log.Zerolog()),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestContext(log.Component("http")))
	if promMetrics != nil {
		app.Use(promMetrics.Middleware())
		app.Get("/metrics", promMetrics.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Warehousing API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(userRepo, roleRepo, activitySvc),
		RoleUC:        usecase.NewRoleUseCase(roleRepo, activitySvc),
		ProductUC:     usecase.NewProductUseCase(productRepo, categoryRepo, subCategoryRepo, unitRepo, activitySvc),
		CategoryUC:    usecase.NewCategoryUseCase(categoryRepo, activitySvc),
		SubCategoryUC: usecase.NewSubCategoryUseCase(subCategoryRepo, categoryRepo, activitySvc),
		UnitUC:        usecase.NewUnitUseCase(unitRepo, activitySvc),
		StoreUC:       usecase.NewStoreUseCase(storeRepo, activitySvc),
		CustomerUC:    usecase.NewCustomerUseCase(customerRepo, activitySvc),
		SupplierUC:    usecase.NewSupplierUseCase(supplierRepo, activitySvc),
		InventoryQ:    inventory.NewQueryUseCase(inventoryRepo, transactionRepo, export.NewExcelExporter()),
		Adjustments:   inventory.NewAdjustmentUseCase(txRunner, activitySvc, business),
		Replenishment: inventory.NewReplenishmentUseCase(inventoryRepo),
		TransferUC:    transferUC,
		OrderUC:       orderUC,
		Dashboard:     analytics.NewDashboardUseCase(postgres.NewDashboardRepository(pool)),
		WorkingHours:  workingHoursSvc,
		Activity:      activitySvc,
		Metrics:       business,
		Logger:        log.Component("working-hours-gate"),
		JWTSecret:     cfg.JWT.Secret,
		SkipPaths:     cfg.WorkingHours.SkipPaths,
	})

	jobs := scheduler.New(cfg.WorkingHours.Location(), log.Component("scheduler"))
	if cfg.ActivityLog.CleanupCron != "" {
		if err := jobs.Add(scheduler.ActivityCleanupJob(cfg.ActivityLog.CleanupCron, activitySvc)); err != nil {
			log.Fatal().Err(err).Msg("programar depuración de bitácora")
		}
	}
	jobs.Start()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	jobs.Stop(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}
