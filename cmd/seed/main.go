package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
	domstock "github.com/manuflow/manuflow-api/internal/domain/stock"
	"github.com/manuflow/manuflow-api/internal/infrastructure/postgres"
	"github.com/manuflow/manuflow-api/pkg/config"
	"github.com/manuflow/manuflow-api/pkg/logger"
)

// Seed de datos de demostración: usuario admin, centro de trabajo por defecto
// y productos de ejemplo con su stock de apertura. Idempotente por email y
// nombre: si el admin ya existe, no hace nada.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	wcRepo := postgres.NewWorkCenterRepository(pool)

	existing, err := userRepo.FindByEmail("admin@manuflow.local")
	if err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	}
	if existing != nil {
		log.Info().Msg("seed ya aplicado, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password")
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@manuflow.local",
		PasswordHash: string(hash),
		Name:         "Administrator",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}

	center := &entity.WorkCenter{
		ID:          uuid.New().String(),
		Name:        "Assembly Line 1",
		Description: "Default work center",
		CostPerHour: decimal.NewFromInt(50),
		Capacity:    1,
		IsActive:    true,
		CreatedAt:   now,
	}
	if err := wcRepo.Create(center); err != nil {
		log.Fatal().Err(err).Msg("crear centro de trabajo")
	}

	products := []struct {
		name     string
		stock    int64
		minStock int64
		cost     float64
		raw      bool
	}{
		{"Wood Plank", 100, 20, 5.50, true},
		{"Metal Leg", 200, 40, 3.25, true},
		{"Screw Pack", 500, 100, 0.80, true},
		{"Wooden Table", 0, 5, 45.00, false},
	}

	txRunner := postgres.NewTxRunner(pool)
	for _, sp := range products {
		product := &entity.Product{
			ID:            uuid.New().String(),
			Name:          sp.name,
			Unit:          "Units",
			CurrentStock:  decimal.Zero,
			MinStock:      decimal.NewFromInt(sp.minStock),
			CostPrice:     decimal.NewFromFloat(sp.cost),
			IsRawMaterial: sp.raw,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		stock := decimal.NewFromInt(sp.stock)
		err := txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			productRepo repository.ProductRepository,
		) error {
			if err := productRepo.Create(product); err != nil {
				return err
			}
			if !stock.GreaterThan(decimal.Zero) {
				return nil
			}
			movement := &entity.StockMovement{
				ID:           uuid.New().String(),
				ProductID:    product.ID,
				Reference:    "SEED",
				MovementType: entity.MovementTypeIn,
				Direction:    domstock.DirectionIn,
				Quantity:     stock,
				UnitCost:     product.CostPrice,
				TotalCost:    stock.Mul(product.CostPrice),
				CreatedAt:    now,
				CreatedBy:    admin.ID,
			}
			if err := movRepo.Create(movement); err != nil {
				return err
			}
			return productRepo.UpdateStock(product.ID, stock)
		})
		if err != nil {
			log.Fatal().Err(err).Str("product", sp.name).Msg("crear producto")
		}
	}

	log.Info().Msg("seed aplicado")
}
