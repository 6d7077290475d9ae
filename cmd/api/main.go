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

	"github.com/manuflow/manuflow-api/internal/application/auth"
	"github.com/manuflow/manuflow-api/internal/application/manufacturing"
	"github.com/manuflow/manuflow-api/internal/application/reports"
	"github.com/manuflow/manuflow-api/internal/application/stock"
	"github.com/manuflow/manuflow-api/internal/application/usecase"
	"github.com/manuflow/manuflow-api/internal/infrastructure/postgres"
	"github.com/manuflow/manuflow-api/internal/interfaces/http"
	"github.com/manuflow/manuflow-api/internal/jobs"
	"github.com/manuflow/manuflow-api/pkg/config"
	"github.com/manuflow/manuflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	workCenterRepo := postgres.NewWorkCenterRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	moRepo := postgres.NewManufacturingOrderRepository(pool)
	woRepo := postgres.NewWorkOrderRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, movRepo)
	workCenterUC := usecase.NewWorkCenterUseCase(workCenterRepo)
	bomUC := manufacturing.NewBOMUseCase(txRunner, bomRepo, productRepo)
	orderUC := manufacturing.NewOrderUseCase(txRunner, moRepo, bomRepo, productRepo, woRepo)
	workOrderUC := manufacturing.NewWorkOrderUseCase(txRunner, woRepo)
	ledgerUC := stock.NewLedgerUseCase(txRunner, movRepo, productRepo)
	dashboardUC := reports.NewDashboardUseCase(analyticsRepo)
	productionUC := reports.NewProductionReportUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ManuFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	http.Router(app, http.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		ProductUC:    productUC,
		WorkCenterUC: workCenterUC,
		BOMUC:        bomUC,
		OrderUC:      orderUC,
		WorkOrderUC:  workOrderUC,
		LedgerUC:     ledgerUC,
		DashboardUC:  dashboardUC,
		ProductionUC: productionUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	var lowStockJob *jobs.LowStockJob
	if cfg.Jobs.LowStockEnabled {
		lowStockJob = jobs.NewLowStockJob(productRepo, cfg.Jobs.LowStockCron, log)
		if err := lowStockJob.Start(); err != nil {
			log.Fatal().Err(err).Msg("arrancar low stock job")
		}
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if lowStockJob != nil {
		lowStockJob.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
