package stock

import (
	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/domain/entity"
)

// Clasificación de nivel de stock de un producto.
const (
	StatusOutOfStock = "out_of_stock"
	StatusLowStock   = "low_stock"
	StatusInStock    = "in_stock"
)

// Status clasifica el nivel de stock de un producto. El orden de evaluación
// importa:
//  1. stock actual <= 0                      -> out_of_stock
//  2. stock actual < total de salidas        -> out_of_stock (cubre stock
//     negativo implícito por sobre-consumo aunque el campo cacheado no haya
//     bajado de cero)
//  3. stock actual <= stock mínimo           -> low_stock
//  4. en otro caso                           -> in_stock
func Status(p *entity.Product, totalOutbound decimal.Decimal) string {
	if p.CurrentStock.LessThanOrEqual(decimal.Zero) {
		return StatusOutOfStock
	}
	if p.CurrentStock.LessThan(totalOutbound) {
		return StatusOutOfStock
	}
	if p.CurrentStock.LessThanOrEqual(p.MinStock) {
		return StatusLowStock
	}
	return StatusInStock
}
