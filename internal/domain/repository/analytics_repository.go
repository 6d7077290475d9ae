package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats contadores crudos del dashboard de operaciones.
// Los produce la DB; el use case los convierte en DTO.
type DashboardStats struct {
	TotalOrders       int
	PlannedOrders     int
	InProgressOrders  int
	CompletedOrders   int
	TotalProducts     int
	LowStockProducts  int
	ActiveWorkCenters int
	RecentMovements   int // últimos 10 movimientos registrados
	RecentWorkOrders  int // últimas 10 órdenes de trabajo
}

// ProductionReportRow fila cruda del reporte de producción por MO.
type ProductionReportRow struct {
	Reference         string
	ProductName       string
	QuantityToProduce decimal.Decimal
	QuantityProduced  decimal.Decimal
	State             string
	// TotalTime es Σ por WO de actual_time, o estimated_time si aún no hay real.
	TotalTime   decimal.Decimal
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// AnalyticsRepository define las consultas de lectura para dashboard y reportes.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)

	// GetProductionReport devuelve una fila por MO creada en el rango dado
	// (límites inclusivos; nil = sin límite), ordenadas por creación descendente.
	GetProductionReport(ctx context.Context, from, to *time.Time) ([]ProductionReportRow, error)
}
