package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionReportRow fila del reporte de producción por MO.
type ProductionReportRow struct {
	Reference         string          `json:"reference"`
	ProductName       string          `json:"product_name"`
	QuantityToProduce decimal.Decimal `json:"quantity_to_produce"`
	QuantityProduced  decimal.Decimal `json:"quantity_produced"`
	State             string          `json:"state"`
	TotalTime         decimal.Decimal `json:"total_time"` // minutos
	Efficiency        decimal.Decimal `json:"efficiency"` // producido/planificado*100, 0 si planificado=0
	CreatedAt         time.Time       `json:"created_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}

// DashboardStatsDTO resumen del dashboard de operaciones.
type DashboardStatsDTO struct {
	Orders struct {
		Total      int `json:"total"`
		Planned    int `json:"planned"`
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
	} `json:"orders"`
	Products struct {
		Total    int `json:"total"`
		LowStock int `json:"low_stock"`
	} `json:"products"`
	WorkCenters struct {
		Active int `json:"active"`
	} `json:"work_centers"`
	RecentActivities struct {
		StockMovements int `json:"stock_movements"`
		WorkOrders     int `json:"work_orders"`
	} `json:"recent_activities"`
}
