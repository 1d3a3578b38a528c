package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Warehousing-api/internal/application/activity"
	"github.com/jhoicas/Warehousing-api/internal/application/analytics"
	"github.com/jhoicas/Warehousing-api/internal/application/auth"
	"github.com/jhoicas/Warehousing-api/internal/application/inventory"
	"github.com/jhoicas/Warehousing-api/internal/application/order"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/application/transfer"
	"github.com/jhoicas/Warehousing-api/internal/application/usecase"
	"github.com/jhoicas/Warehousing-api/internal/application/workinghours"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	RoleUC        *usecase.RoleUseCase
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	SubCategoryUC *usecase.SubCategoryUseCase
	UnitUC        *usecase.UnitUseCase
	StoreUC       *usecase.StoreUseCase
	CustomerUC    *usecase.CustomerUseCase
	SupplierUC    *usecase.SupplierUseCase
	InventoryQ    *inventory.QueryUseCase
	Adjustments   *inventory.AdjustmentUseCase
	Replenishment *inventory.ReplenishmentUseCase
	TransferUC    *transfer.UseCase
	OrderUC       *order.UseCase
	Dashboard     *analytics.DashboardUseCase
	WorkingHours  *workinghours.Service
	Activity      *activity.Service
	Metrics       ports.BusinessMetrics
	Logger        zerolog.Logger
	JWTSecret     string
	SkipPaths     []string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", ClientInfo(), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y horario laboral)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), WorkingHours(WorkingHoursConfig{
		Checker:   deps.WorkingHours,
		SkipPaths: deps.SkipPaths,
		Metrics:   deps.Metrics,
		Logger:    deps.Logger,
	}))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	admin := RequireAdmin()

	users := protected.Group("/users", admin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	roles := protected.Group("/roles", admin)
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Post("/", roleHandler.Create)
	roles.Get("/", roleHandler.List)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)
	protected.Get("/permissions", admin, roleHandler.Permissions)

	// Catálogos: lectura con sesión, escritura con permiso
	catalog := func(path string, h catalogHandler, perm string) {
		g := protected.Group(path)
		write := RequirePermission(perm)
		g.Get("/", h.List)
		g.Get("/:id", h.GetByID)
		g.Post("/", write, h.Create)
		g.Put("/:id", write, h.Update)
		g.Delete("/:id", write, h.Delete)
	}
	catalog("/products", NewProductHandler(deps.ProductUC), entity.PermManageProducts)
	catalog("/categories", NewCategoryHandler(deps.CategoryUC), entity.PermManageProducts)
	subHandler := NewSubCategoryHandler(deps.SubCategoryUC)
	catalog("/sub-categories", subHandler, entity.PermManageProducts)
	protected.Get("/categories/:id/sub-categories", subHandler.ByCategory)
	catalog("/units", NewUnitHandler(deps.UnitUC), entity.PermManageProducts)
	catalog("/stores", NewStoreHandler(deps.StoreUC), entity.PermManageStores)
	catalog("/customers", NewPartnerHandler(deps.CustomerUC), entity.PermManagePartners)
	catalog("/suppliers", NewPartnerHandler(deps.SupplierUC), entity.PermManagePartners)

	// Inventario
	view := RequirePermission(entity.PermViewInventory)
	adjust := RequirePermission(entity.PermAdjustInventory)
	inv := protected.Group("/inventory")
	invHandler := NewInventoryHandler(deps.InventoryQ, deps.Adjustments, deps.Replenishment)
	inv.Get("/", view, invHandler.List)
	inv.Get("/by-store/:id", view, invHandler.ByStore)
	inv.Get("/by-product/:id", view, invHandler.ByProduct)
	inv.Get("/summary", view, invHandler.Summary)
	inv.Get("/low-stock", view, invHandler.LowStock)
	inv.Get("/reconcile", view, invHandler.Reconcile)
	inv.Get("/replenishment", view, invHandler.Replenishment)
	inv.Get("/export", view, invHandler.Export)
	inv.Post("/adjust", adjust, invHandler.Adjust)
	inv.Post("/bulk-adjust", adjust, invHandler.BulkAdjust)
	inv.Post("/initial-stock", adjust, invHandler.InitialStock)

	txs := protected.Group("/inventory-transactions", view)
	txHandler := NewTransactionHandler(deps.InventoryQ)
	txs.Get("/", txHandler.List)
	txs.Get("/export", txHandler.Export)

	dash := protected.Group("/dashboard", view)
	dashHandler := NewDashboardHandler(deps.Dashboard)
	dash.Get("/overview", dashHandler.Overview)
	dash.Get("/recent-transactions", dashHandler.RecentTransactions)
	dash.Get("/top-products", dashHandler.TopProducts)
	dash.Get("/store-performance", dashHandler.StorePerformance)
	dash.Get("/monthly-transactions", dashHandler.MonthlyTransactions)
	dash.Get("/alerts", dashHandler.Alerts)

	// Traslados: quien gestiona crea y edita borradores; quien aprueba completa
	manageTransfers := RequirePermission(entity.PermManageTransfers)
	transfers := protected.Group("/store-transfers")
	trHandler := NewTransferHandler(deps.TransferUC)
	readTransfers := RequirePermission(entity.PermManageTransfers, entity.PermApproveTransfers, entity.PermViewInventory)
	transfers.Get("/", readTransfers, trHandler.List)
	transfers.Get("/:id", readTransfers, trHandler.GetByID)
	transfers.Get("/:id/transactions", readTransfers, trHandler.Transactions)
	transfers.Get("/:id/pdf", readTransfers, trHandler.PDF)
	transfers.Post("/", manageTransfers, trHandler.Create)
	transfers.Put("/:id", manageTransfers, trHandler.Update)
	transfers.Delete("/:id", manageTransfers, trHandler.Delete)
	transfers.Post("/:id/complete", RequirePermission(entity.PermApproveTransfers), trHandler.Complete)
	transfers.Post("/:id/cancel", RequirePermission(entity.PermManageTransfers, entity.PermApproveTransfers), trHandler.Cancel)

	// Órdenes: completar o cancelar mueve existencias y requiere aprobación
	manageOrders := RequirePermission(entity.PermManageOrders)
	approveOrders := RequirePermission(entity.PermApproveOrders)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	readOrders := RequirePermission(entity.PermManageOrders, entity.PermApproveOrders)
	orders.Get("/", readOrders, orderHandler.List)
	orders.Get("/:id", readOrders, orderHandler.GetByID)
	orders.Post("/", manageOrders, orderHandler.Create)
	orders.Put("/:id", manageOrders, orderHandler.Update)
	orders.Delete("/:id", manageOrders, orderHandler.Delete)
	orders.Post("/:id/pending", manageOrders, orderHandler.MarkPending)
	orders.Post("/:id/complete", approveOrders, orderHandler.Complete)
	orders.Post("/:id/cancel", approveOrders, orderHandler.Cancel)

	// Horario laboral
	wh := protected.Group("/working-hours")
	whHandler := NewWorkingHoursHandler(deps.WorkingHours)
	wh.Get("/", whHandler.Get)
	wh.Put("/", admin, whHandler.Update)
	wh.Get("/status", whHandler.Status)
	wh.Get("/exceptions", whHandler.ListExceptions)
	wh.Post("/exceptions", admin, whHandler.AddException)
	wh.Delete("/exceptions/:id", admin, whHandler.DeleteException)

	// Bitácora
	logs := protected.Group("/activity-logs")
	actHandler := NewActivityHandler(deps.Activity)
	viewLogs := RequirePermission(entity.PermViewActivityLogs)
	logs.Get("/", viewLogs, actHandler.List)
	logs.Get("/summary", viewLogs, actHandler.Summary)
	logs.Get("/user/:id", viewLogs, actHandler.ByUser)
	logs.Delete("/old", admin, actHandler.ClearOld)

	protected.Get("/statuses", Statuses)
	protected.Get("/transaction-types", TransactionTypes)
}

// catalogHandler CRUD común de los catálogos.
type catalogHandler interface {
	Create(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	List(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}
