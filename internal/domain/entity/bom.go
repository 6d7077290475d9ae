package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOM (lista de materiales) pertenece a exactamente un producto terminado y
// declara la cantidad de salida y sus componentes.
type BOM struct {
	ID          string
	ProductID   string // producto terminado que produce
	Name        string
	Description string
	Quantity    decimal.Decimal // cantidad de salida por ejecución
	Components  []BOMComponent
	CreatedAt   time.Time
}

// BOMComponent es una línea de la BOM: (materia prima, cantidad, tiempo de operación).
// Invariante: ProductID debe referenciar un producto con IsRawMaterial = true.
type BOMComponent struct {
	ID            string
	BOMID         string
	ProductID     string
	Quantity      decimal.Decimal
	OperationTime decimal.Decimal // minutos
}
