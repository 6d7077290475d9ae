package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/domain/entity"
)

// MovementAggregate totales del libro sobre un conjunto filtrado de movimientos.
type MovementAggregate struct {
	TotalCount    int
	InboundCount  int
	OutboundCount int
	TotalValue    decimal.Decimal // Σ(quantity * unit_cost)
}

// StockMovementRepository define el puerto del libro de movimientos (DIP).
// El libro es append-only: no existen Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	List(limit, offset int) ([]*entity.StockMovement, error)
	// SumByProduct devuelve los totales de entradas y salidas del producto,
	// base del stock derivado (sum inbound - sum outbound).
	SumByProduct(productID string) (inbound, outbound decimal.Decimal, err error)
	// Aggregate totaliza el libro. from/to filtran por la parte de fecha del
	// timestamp (sin hora), con límites inclusivos; nil = sin límite.
	Aggregate(from, to *time.Time) (*MovementAggregate, error)
}
