package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/manuflow/manuflow-api/internal/application/auth"
	"github.com/manuflow/manuflow-api/internal/application/manufacturing"
	"github.com/manuflow/manuflow-api/internal/application/reports"
	"github.com/manuflow/manuflow-api/internal/application/stock"
	"github.com/manuflow/manuflow-api/internal/application/usecase"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ProductUC    *usecase.ProductUseCase
	WorkCenterUC *usecase.WorkCenterUseCase
	BOMUC        *manufacturing.BOMUseCase
	OrderUC      *manufacturing.OrderUseCase
	WorkOrderUC  *manufacturing.WorkOrderUseCase
	LedgerUC     *stock.LedgerUseCase
	DashboardUC  *reports.DashboardUseCase
	ProductionUC *reports.ProductionReportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Users (protegido)
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users", userHandler.ListActive)

	// Products (protegido; borrar requiere admin o manager)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	stockHandler := NewStockHandler(deps.LedgerUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Delete)
	products.Get("/:id/movements", stockHandler.ListByProduct)

	// Work centers (protegido)
	workCenters := protected.Group("/work-centers")
	workCenterHandler := NewWorkCenterHandler(deps.WorkCenterUC)
	workCenters.Post("/", workCenterHandler.Create)
	workCenters.Get("/", workCenterHandler.List)
	workCenters.Get("/:id", workCenterHandler.GetByID)

	// BOMs (protegido)
	boms := protected.Group("/boms")
	bomHandler := NewBOMHandler(deps.BOMUC)
	boms.Post("/", bomHandler.Create)
	boms.Get("/", bomHandler.List)
	boms.Get("/:id", bomHandler.GetByID)

	// Manufacturing orders (protegido)
	orders := protected.Group("/manufacturing-orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.WorkOrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/confirm", orderHandler.Confirm)
	orders.Post("/:id/complete", orderHandler.Complete)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Get("/:id/work-orders", orderHandler.ListWorkOrders)

	// Work orders (protegido)
	workOrders := protected.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Post("/:id/start", workOrderHandler.Start)
	workOrders.Post("/:id/complete", workOrderHandler.Complete)

	// Stock ledger (protegido)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/movements", stockHandler.PostMovement)
	stockGroup.Get("/movements", stockHandler.List)
	stockGroup.Get("/movements/aggregate", stockHandler.Aggregate)

	// Dashboard y reportes (protegido)
	reportHandler := NewReportHandler(deps.DashboardUC, deps.ProductionUC)
	protected.Get("/dashboard/stats", reportHandler.Dashboard)
	protected.Get("/reports/production", reportHandler.ProductionReport)
}
