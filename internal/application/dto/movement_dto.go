package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostMovementRequest body para POST /api/stock/movements.
// Type es la etiqueta de movimiento (in, out, production, consumption);
// Quantity debe ser > 0: la dirección la codifica el tipo, no el signo.
type PostMovementRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"movement_type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost,omitempty"`
	Reference string          `json:"reference,omitempty"`
	// ManufacturingOrderID liga el movimiento a una orden de fabricación.
	ManufacturingOrderID string `json:"manufacturing_order_id,omitempty"`
}

// MovementResponse movimiento del libro con la etiqueta original y la dirección canónica.
type MovementResponse struct {
	ID                   string          `json:"id"`
	ProductID            string          `json:"product_id"`
	Reference            string          `json:"reference,omitempty"`
	MovementType         string          `json:"movement_type"`
	Direction            string          `json:"direction"` // IN | OUT
	Quantity             decimal.Decimal `json:"quantity"`
	UnitCost             decimal.Decimal `json:"unit_cost"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	ManufacturingOrderID string          `json:"manufacturing_order_id,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	CreatedBy            string          `json:"created_by,omitempty"`
}

// PostMovementResponse movimiento creado + stock recalculado del producto.
type PostMovementResponse struct {
	Movement     MovementResponse `json:"movement"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementAggregateResponse totales del libro en un rango de fechas.
type MovementAggregateResponse struct {
	TotalCount    int             `json:"total_count"`
	InboundCount  int             `json:"inbound_count"`
	OutboundCount int             `json:"outbound_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
}
