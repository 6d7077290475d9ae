package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/manufacturing-orders.
// Las órdenes de trabajo no se crean aquí: se generan al confirmar.
type CreateOrderRequest struct {
	ProductID         string          `json:"product_id"`
	BOMID             string          `json:"bom_id"`
	QuantityToProduce decimal.Decimal `json:"quantity_to_produce"`
	ScheduledDate     time.Time       `json:"scheduled_date"`
	AssigneeID        string          `json:"assignee_id,omitempty"`
}

// ConfirmOrderRequest body para POST /api/manufacturing-orders/:id/confirm.
// Version es la versión esperada del registro (concurrencia optimista).
type ConfirmOrderRequest struct {
	Version      int    `json:"version"`
	WorkCenterID string `json:"work_center_id,omitempty"` // default: primer centro activo
}

// CompleteOrderRequest body para POST /api/manufacturing-orders/:id/complete.
// QuantityProduced por defecto es la cantidad planificada; la
// sobreproducción está permitida y se registra tal cual.
type CompleteOrderRequest struct {
	Version          int              `json:"version"`
	QuantityProduced *decimal.Decimal `json:"quantity_produced,omitempty"`
}

// CancelOrderRequest body para POST /api/manufacturing-orders/:id/cancel.
type CancelOrderRequest struct {
	Version int `json:"version"`
}

// OrderResponse orden de fabricación con su progreso derivado.
type OrderResponse struct {
	ID                string          `json:"id"`
	Reference         string          `json:"reference"`
	ProductID         string          `json:"product_id"`
	BOMID             string          `json:"bom_id"`
	QuantityToProduce decimal.Decimal `json:"quantity_to_produce"`
	QuantityProduced  decimal.Decimal `json:"quantity_produced"`
	State             string          `json:"state"`
	// Progress no se limita a 100: la sobreproducción se reporta tal cual.
	Progress      int        `json:"progress"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	AssigneeID    string     `json:"assignee_id,omitempty"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// ConfirmOrderResponse MO actualizada + WOs generadas.
type ConfirmOrderResponse struct {
	Order      OrderResponse       `json:"order"`
	WorkOrders []WorkOrderResponse `json:"work_orders"`
}

// CompleteOrderResponse MO actualizada + movimiento de producción registrado.
type CompleteOrderResponse struct {
	Order    OrderResponse    `json:"order"`
	Movement MovementResponse `json:"movement"`
}

// OrderListResponse listado paginado de órdenes de fabricación.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
