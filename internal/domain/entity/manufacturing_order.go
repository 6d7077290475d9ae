package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de fabricación.
const (
	MOStatePlanned    = "planned"
	MOStateInProgress = "in_progress"
	MOStateDone       = "done"
	MOStateCancelled  = "cancelled"
)

// ManufacturingOrder (MO) es una solicitud de producir una cantidad de un
// producto terminado vía una BOM. Invariante: BOM.ProductID == ProductID.
// Version implementa concurrencia optimista: toda transición exige la
// versión esperada y la incrementa.
type ManufacturingOrder struct {
	ID                string
	Reference         string // única, generada por el sistema (MOyymmddNNNN)
	ProductID         string
	BOMID             string
	QuantityToProduce decimal.Decimal
	QuantityProduced  decimal.Decimal // monótona no decreciente hasta estado terminal
	State             string
	ScheduledDate     time.Time
	AssigneeID        string // opcional
	Version           int
	CreatedAt         time.Time
	StartedAt         *time.Time
	CompletedAt       *time.Time
}

// IsTerminal indica si la orden está en un estado final.
func (mo *ManufacturingOrder) IsTerminal() bool {
	return mo.State == MOStateDone || mo.State == MOStateCancelled
}
