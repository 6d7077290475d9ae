package manufacturing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	dommfg "github.com/manuflow/manuflow-api/internal/domain/manufacturing"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

// WorkOrderUseCase maneja las transiciones de órdenes de trabajo. Las WOs no
// tocan el libro de inventario: los consumos y la producción se asientan en
// las transiciones de la MO.
type WorkOrderUseCase struct {
	txRunner TxRunner
	woRepo   repository.WorkOrderRepository
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(txRunner TxRunner, woRepo repository.WorkOrderRepository) *WorkOrderUseCase {
	return &WorkOrderUseCase{txRunner: txRunner, woRepo: woRepo}
}

// GetByID devuelve la WO o nil si no existe.
func (uc *WorkOrderUseCase) GetByID(id string) (*dto.WorkOrderResponse, error) {
	wo, err := uc.woRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, nil
	}
	resp := toWorkOrderResponse(wo)
	return &resp, nil
}

// ListByManufacturingOrder lista las WOs de una orden de fabricación.
func (uc *WorkOrderUseCase) ListByManufacturingOrder(moID string) (*dto.WorkOrderListResponse, error) {
	list, err := uc.woRepo.ListByManufacturingOrder(moID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorkOrderResponse, 0, len(list))
	for _, wo := range list {
		items = append(items, toWorkOrderResponse(wo))
	}
	return &dto.WorkOrderListResponse{Items: items}, nil
}

// Start ejecuta pending -> in_progress y registra el instante de inicio.
func (uc *WorkOrderUseCase) Start(ctx context.Context, id string, in dto.StartWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	var updated *entity.WorkOrder
	err := uc.txRunner.RunManufacturing(ctx, func(
		_ repository.ManufacturingOrderRepository,
		woRepo repository.WorkOrderRepository,
		_ repository.BOMRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.WorkCenterRepository,
	) error {
		wo, err := woRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if wo == nil {
			return domain.ErrNotFound
		}
		if wo.Version != in.Version {
			return domain.ErrConflict
		}
		newState, err := dommfg.StartWorkOrder(wo.State)
		if err != nil {
			return err
		}
		now := time.Now()
		wo.State = newState
		wo.StartedAt = &now
		wo.Version++
		if err := woRepo.Update(wo); err != nil {
			return err
		}
		updated = wo
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toWorkOrderResponse(updated)
	return &resp, nil
}

// Complete ejecuta in_progress -> completed. El tiempo real se resuelve en
// cadena: el explícito del request, si no el transcurrido desde StartedAt en
// minutos, y como último recurso el estimado.
func (uc *WorkOrderUseCase) Complete(ctx context.Context, id string, in dto.CompleteWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	var updated *entity.WorkOrder
	err := uc.txRunner.RunManufacturing(ctx, func(
		_ repository.ManufacturingOrderRepository,
		woRepo repository.WorkOrderRepository,
		_ repository.BOMRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.WorkCenterRepository,
	) error {
		wo, err := woRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if wo == nil {
			return domain.ErrNotFound
		}
		if wo.Version != in.Version {
			return domain.ErrConflict
		}
		newState, err := dommfg.CompleteWorkOrder(wo.State)
		if err != nil {
			return err
		}

		now := time.Now()
		actual := resolveActualTime(wo, in.ActualTime, now)
		if actual.IsNegative() {
			return domain.ErrInvalidInput
		}

		wo.State = newState
		wo.ActualTime = &actual
		wo.CompletedAt = &now
		if in.Notes != "" {
			wo.Notes = in.Notes
		}
		wo.Version++
		if err := woRepo.Update(wo); err != nil {
			return err
		}
		updated = wo
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toWorkOrderResponse(updated)
	return &resp, nil
}

func resolveActualTime(wo *entity.WorkOrder, explicit *decimal.Decimal, now time.Time) decimal.Decimal {
	if explicit != nil {
		return *explicit
	}
	if wo.StartedAt != nil {
		minutes := now.Sub(*wo.StartedAt).Minutes()
		return decimal.NewFromFloat(minutes).Round(2)
	}
	return wo.EstimatedTime
}

func toWorkOrderResponse(wo *entity.WorkOrder) dto.WorkOrderResponse {
	return dto.WorkOrderResponse{
		ID:                   wo.ID,
		ManufacturingOrderID: wo.ManufacturingOrderID,
		WorkCenterID:         wo.WorkCenterID,
		OperationName:        wo.OperationName,
		EstimatedTime:        wo.EstimatedTime,
		ActualTime:           wo.ActualTime,
		State:                wo.State,
		Efficiency:           dommfg.Efficiency(wo.EstimatedTime, wo.ActualTime),
		AssigneeID:           wo.AssigneeID,
		Version:              wo.Version,
		StartedAt:            wo.StartedAt,
		CompletedAt:          wo.CompletedAt,
		Notes:                wo.Notes,
	}
}
