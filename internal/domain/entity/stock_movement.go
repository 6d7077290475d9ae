package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etiquetas de movimiento de stock. El vocabulario es de dos niveles:
// "in"/"out" de cara al usuario, "production"/"consumption" generadas por el
// motor de órdenes. La dirección canónica se guarda aparte (Direction); la
// etiqueta original se conserva para reporte y exportación.
const (
	MovementTypeIn          = "in"
	MovementTypeOut         = "out"
	MovementTypeProduction  = "production"
	MovementTypeConsumption = "consumption"
)

// StockMovement es una entrada inmutable del libro de inventario.
// Nunca se actualiza ni se borra después de creada (append-only).
// Quantity es siempre > 0; la dirección la codifica Direction, no el signo.
type StockMovement struct {
	ID                   string
	ProductID            string
	Reference            string
	MovementType         string // etiqueta original: in, out, production, consumption
	Direction            string // stock.DirectionIn | stock.DirectionOut
	Quantity             decimal.Decimal
	UnitCost             decimal.Decimal
	TotalCost            decimal.Decimal // Quantity * UnitCost
	ManufacturingOrderID string          // opcional
	CreatedAt            time.Time
	CreatedBy            string // opcional
}
