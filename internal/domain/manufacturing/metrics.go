package manufacturing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Progress calcula el % de avance: round(producido / aProducir * 100).
// No se limita a 100: la sobreproducción es válida y debe reportarse tal cual
// (p.ej. 120). Si aProducir es cero devuelve 0.
func Progress(produced, toProduce decimal.Decimal) int {
	if toProduce.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	pct := produced.Div(toProduce).Mul(hundred).Round(0)
	return int(pct.IntPart())
}

// Efficiency calcula la eficiencia de una orden de trabajo:
// estimado / real * 100. Devuelve nil cuando alguno de los dos valores es
// cero o está ausente: "sin valor de eficiencia" es un caso distinto de
// "eficiencia 0%" y los consumidores deben tratarlo así.
func Efficiency(estimated decimal.Decimal, actual *decimal.Decimal) *decimal.Decimal {
	if actual == nil {
		return nil
	}
	if estimated.LessThanOrEqual(decimal.Zero) || actual.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	eff := estimated.Div(*actual).Mul(hundred).Round(2)
	return &eff
}
