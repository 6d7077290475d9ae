package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo.
const (
	WOStatePending    = "pending"
	WOStateInProgress = "in_progress"
	WOStateCompleted  = "completed"
	WOStateCancelled  = "cancelled"
)

// WorkOrder (WO) es una operación de una orden de fabricación, programada
// contra un centro de trabajo. Se genera al confirmar la MO, una por
// componente de la BOM. ActualTime se llena solo al completar.
type WorkOrder struct {
	ID                   string
	ManufacturingOrderID string
	WorkCenterID         string
	OperationName        string
	EstimatedTime        decimal.Decimal  // minutos
	ActualTime           *decimal.Decimal // minutos, solo al completar
	State                string
	AssigneeID           string // opcional
	Version              int
	StartedAt            *time.Time
	CompletedAt          *time.Time
	Notes                string
}

// IsTerminal indica si la orden de trabajo está en un estado final.
func (wo *WorkOrder) IsTerminal() bool {
	return wo.State == WOStateCompleted || wo.State == WOStateCancelled
}
