package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
	"github.com/manuflow/manuflow-api/internal/domain/stock"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Append-only: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, reference, movement_type, direction, quantity, unit_cost, total_cost, manufacturing_order_id, created_at, created_by`

// Create asienta un movimiento en el libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	moID := (*string)(nil)
	if movement.ManufacturingOrderID != "" {
		moID = &movement.ManufacturingOrderID
	}
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Reference,
		movement.MovementType, movement.Direction, movement.Quantity,
		movement.UnitCost, movement.TotalCost, moID,
		movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listQuery(query, productID, limit, offset)
}

// List lista el libro completo, más recientes primero.
func (r *StockMovementRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.listQuery(query, limit, offset)
}

// SumByProduct totaliza entradas y salidas de un producto.
func (r *StockMovementRepo) SumByProduct(productID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE direction = $2), 0),
			COALESCE(SUM(quantity) FILTER (WHERE direction = $3), 0)
		FROM stock_movements WHERE product_id = $1`
	var inbound, outbound decimal.Decimal
	err := r.q.QueryRow(context.Background(), query,
		productID, stock.DirectionIn, stock.DirectionOut,
	).Scan(&inbound, &outbound)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum by product: %w", err)
	}
	return inbound, outbound, nil
}

// Aggregate totaliza el libro en un rango de fechas (parte de fecha, inclusivo).
func (r *StockMovementRepo) Aggregate(from, to *time.Time) (*repository.MovementAggregate, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE direction = $1),
			COUNT(*) FILTER (WHERE direction = $2),
			COALESCE(SUM(quantity * unit_cost), 0)
		FROM stock_movements WHERE 1=1`
	args := []any{stock.DirectionIn, stock.DirectionOut}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND created_at::date >= $%d::date", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at::date <= $%d::date", pos)
		args = append(args, *to)
		pos++
	}
	var agg repository.MovementAggregate
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&agg.TotalCount, &agg.InboundCount, &agg.OutboundCount, &agg.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate movements: %w", err)
	}
	return &agg, nil
}

func (r *StockMovementRepo) listQuery(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var moID, createdBy *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Reference, &m.MovementType, &m.Direction,
		&m.Quantity, &m.UnitCost, &m.TotalCost, &moID, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if moID != nil {
		m.ManufacturingOrderID = *moID
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
