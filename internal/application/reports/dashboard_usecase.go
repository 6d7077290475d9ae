package reports

import (
	"context"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen del dashboard de operaciones.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStats devuelve los contadores del dashboard.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	stats, err := uc.analyticsRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardStatsDTO{}
	out.Orders.Total = stats.TotalOrders
	out.Orders.Planned = stats.PlannedOrders
	out.Orders.InProgress = stats.InProgressOrders
	out.Orders.Completed = stats.CompletedOrders
	out.Products.Total = stats.TotalProducts
	out.Products.LowStock = stats.LowStockProducts
	out.WorkCenters.Active = stats.ActiveWorkCenters
	out.RecentActivities.StockMovements = stats.RecentMovements
	out.RecentActivities.WorkOrders = stats.RecentWorkOrders
	return out, nil
}
