package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ProductionReportUseCase arma el reporte de producción por orden de
// fabricación a partir de las consultas de analytics.
type ProductionReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewProductionReportUseCase construye el caso de uso.
func NewProductionReportUseCase(analyticsRepo repository.AnalyticsRepository) *ProductionReportUseCase {
	return &ProductionReportUseCase{analyticsRepo: analyticsRepo}
}

// Generate devuelve una fila por MO creada en el rango (límites inclusivos,
// nil = sin límite). Efficiency aquí es rendimiento de cantidad:
// producido/planificado*100, 0 cuando lo planificado es 0.
func (uc *ProductionReportUseCase) Generate(ctx context.Context, from, to *time.Time) ([]dto.ProductionReportRow, error) {
	rows, err := uc.analyticsRepo.GetProductionReport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionReportRow, 0, len(rows))
	for _, row := range rows {
		efficiency := decimal.Zero
		if row.QuantityToProduce.GreaterThan(decimal.Zero) {
			efficiency = row.QuantityProduced.Div(row.QuantityToProduce).Mul(hundred).Round(2)
		}
		out = append(out, dto.ProductionReportRow{
			Reference:         row.Reference,
			ProductName:       row.ProductName,
			QuantityToProduce: row.QuantityToProduce,
			QuantityProduced:  row.QuantityProduced,
			State:             row.State,
			TotalTime:         row.TotalTime,
			Efficiency:        efficiency,
			CreatedAt:         row.CreatedAt,
			CompletedAt:       row.CompletedAt,
		})
	}
	return out, nil
}
