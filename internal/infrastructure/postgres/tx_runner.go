package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manuflow/manuflow-api/internal/application/manufacturing"
	"github.com/manuflow/manuflow-api/internal/application/stock"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and manufacturing.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ manufacturing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(movRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunManufacturing inicia una transacción con los repos que necesitan las
// transiciones de MO/WO (confirmación, completado, cancelación, BOMs).
func (r *TxRunner) RunManufacturing(ctx context.Context, fn func(
	moRepo repository.ManufacturingOrderRepository,
	woRepo repository.WorkOrderRepository,
	bomRepo repository.BOMRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	wcRepo repository.WorkCenterRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	moRepo := NewManufacturingOrderRepository(tx)
	woRepo := NewWorkOrderRepository(tx)
	bomRepo := NewBOMRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	productRepo := NewProductRepository(tx)
	wcRepo := NewWorkCenterRepository(tx)

	if err := fn(moRepo, woRepo, bomRepo, movRepo, productRepo, wcRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
