package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartWorkOrderRequest body para POST /api/work-orders/:id/start.
type StartWorkOrderRequest struct {
	Version int `json:"version"`
}

// CompleteWorkOrderRequest body para POST /api/work-orders/:id/complete.
// ActualTime es opcional: si falta, se usa el tiempo transcurrido desde el
// inicio; si tampoco hay inicio registrado, el tiempo estimado.
type CompleteWorkOrderRequest struct {
	Version    int              `json:"version"`
	ActualTime *decimal.Decimal `json:"actual_time,omitempty"` // minutos
	Notes      string           `json:"notes,omitempty"`
}

// WorkOrderResponse orden de trabajo con su eficiencia derivada.
type WorkOrderResponse struct {
	ID                   string           `json:"id"`
	ManufacturingOrderID string           `json:"manufacturing_order_id"`
	WorkCenterID         string           `json:"work_center_id"`
	OperationName        string           `json:"operation_name"`
	EstimatedTime        decimal.Decimal  `json:"estimated_time"`
	ActualTime           *decimal.Decimal `json:"actual_time,omitempty"`
	State                string           `json:"state"`
	// Efficiency es estimado/real*100; null cuando no hay valor (distinto de 0%).
	Efficiency  *decimal.Decimal `json:"efficiency,omitempty"`
	AssigneeID  string           `json:"assignee_id,omitempty"`
	Version     int              `json:"version"`
	StartedAt   *time.Time       `json:"started_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// WorkOrderListResponse listado de órdenes de trabajo.
type WorkOrderListResponse struct {
	Items []WorkOrderResponse `json:"items"`
}
