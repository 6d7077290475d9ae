package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only para dashboard y reportes.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardStats calcula los contadores del dashboard en una sola consulta.
func (r *AnalyticsRepo) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM manufacturing_orders),
			(SELECT COUNT(*) FROM manufacturing_orders WHERE state = 'planned'),
			(SELECT COUNT(*) FROM manufacturing_orders WHERE state = 'in_progress'),
			(SELECT COUNT(*) FROM manufacturing_orders WHERE state = 'done'),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE min_stock > 0 AND current_stock <= min_stock),
			(SELECT COUNT(*) FROM work_centers WHERE is_active),
			(SELECT COUNT(*) FROM (SELECT 1 FROM stock_movements ORDER BY created_at DESC LIMIT 10) recent_m),
			(SELECT COUNT(*) FROM (SELECT 1 FROM work_orders ORDER BY started_at DESC NULLS LAST LIMIT 10) recent_w)`
	var stats repository.DashboardStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.TotalOrders, &stats.PlannedOrders, &stats.InProgressOrders,
		&stats.CompletedOrders, &stats.TotalProducts, &stats.LowStockProducts,
		&stats.ActiveWorkCenters, &stats.RecentMovements, &stats.RecentWorkOrders,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}

// GetProductionReport devuelve una fila por MO creada en el rango. TotalTime
// suma por WO el tiempo real, o el estimado mientras no haya real.
func (r *AnalyticsRepo) GetProductionReport(ctx context.Context, from, to *time.Time) ([]repository.ProductionReportRow, error) {
	query := `
		SELECT
			mo.reference, p.name, mo.quantity_to_produce, mo.quantity_produced,
			mo.state, COALESCE(SUM(COALESCE(wo.actual_time, wo.estimated_time)), 0),
			mo.created_at, mo.completed_at
		FROM manufacturing_orders mo
		JOIN products p ON p.id = mo.product_id
		LEFT JOIN work_orders wo ON wo.manufacturing_order_id = mo.id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND mo.created_at::date >= $%d::date", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND mo.created_at::date <= $%d::date", pos)
		args = append(args, *to)
		pos++
	}
	query += `
		GROUP BY mo.id, p.name
		ORDER BY mo.created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("production report: %w", err)
	}
	defer rows.Close()
	var report []repository.ProductionReportRow
	for rows.Next() {
		var row repository.ProductionReportRow
		if err := rows.Scan(
			&row.Reference, &row.ProductName, &row.QuantityToProduce,
			&row.QuantityProduced, &row.State, &row.TotalTime,
			&row.CreatedAt, &row.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
