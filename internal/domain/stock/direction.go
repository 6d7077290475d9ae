// Package stock contiene las reglas puras del libro de inventario:
// normalización de tipos de movimiento, saldo derivado y clasificación de
// nivel de stock.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
)

// Direcciones canónicas del libro. La etiqueta original del movimiento
// (in/out/production/consumption) se conserva aparte para display y reporte.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// NormalizeType mapea la etiqueta de movimiento a su dirección canónica:
// in y production son entradas; out y consumption son salidas.
func NormalizeType(movementType string) (string, error) {
	switch movementType {
	case entity.MovementTypeIn, entity.MovementTypeProduction:
		return DirectionIn, nil
	case entity.MovementTypeOut, entity.MovementTypeConsumption:
		return DirectionOut, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Balance deriva el stock actual desde los totales del libro:
// sum(entradas) - sum(salidas).
func Balance(inbound, outbound decimal.Decimal) decimal.Decimal {
	return inbound.Sub(outbound)
}
