package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto: materia prima o producto terminado.
// CurrentStock es un valor materializado: se recalcula desde el libro de
// movimientos dentro de la misma transacción de cada registro (el libro es
// la fuente de verdad).
type Product struct {
	ID            string
	Name          string
	Description   string
	Unit          string // unidad de medida, p.ej. "Units", "Pieces"
	CurrentStock  decimal.Decimal
	MinStock      decimal.Decimal
	CostPrice     decimal.Decimal
	IsRawMaterial bool // materia prima vs producto terminado (roles excluyentes)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
