package manufacturing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	stockuc "github.com/manuflow/manuflow-api/internal/application/stock"
	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	dommfg "github.com/manuflow/manuflow-api/internal/domain/manufacturing"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
	domstock "github.com/manuflow/manuflow-api/internal/domain/stock"
)

const maxReferenceRetries = 3

// OrderUseCase implementa el ciclo de vida de órdenes de fabricación:
// creación, confirmación (genera WOs y consume materias primas), completado
// (registra producción) y cancelación (cascada a WOs no terminales).
// Toda transición exige la versión esperada del registro; una versión
// obsoleta devuelve domain.ErrConflict sin tocar nada.
type OrderUseCase struct {
	txRunner    TxRunner
	moRepo      repository.ManufacturingOrderRepository
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
	woRepo      repository.WorkOrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	moRepo repository.ManufacturingOrderRepository,
	bomRepo repository.BOMRepository,
	productRepo repository.ProductRepository,
	woRepo repository.WorkOrderRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		moRepo:      moRepo,
		bomRepo:     bomRepo,
		productRepo: productRepo,
		woRepo:      woRepo,
	}
}

// Create crea una MO en estado planned con referencia generada. Las órdenes
// de trabajo no se crean aquí: se generan al confirmar.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.ProductID == "" || in.BOMID == "" || in.ScheduledDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !in.QuantityToProduce.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	bom, err := uc.bomRepo.GetByID(in.BOMID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	// La BOM debe producir exactamente el producto de la orden.
	if bom.ProductID != in.ProductID {
		return nil, domain.ErrReferentialIntegrity
	}

	now := time.Now()
	mo := &entity.ManufacturingOrder{
		ID:                uuid.New().String(),
		ProductID:         in.ProductID,
		BOMID:             in.BOMID,
		QuantityToProduce: in.QuantityToProduce,
		QuantityProduced:  decimal.Zero,
		State:             entity.MOStatePlanned,
		ScheduledDate:     in.ScheduledDate,
		AssigneeID:        in.AssigneeID,
		Version:           1,
		CreatedAt:         now,
	}
	for i := 0; i < maxReferenceRetries; i++ {
		mo.Reference = newReference("MO")
		err = uc.moRepo.Create(mo)
		if err != domain.ErrDuplicate {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(mo)
	return &resp, nil
}

// GetByID devuelve la MO o nil si no existe.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	mo, err := uc.moRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mo == nil {
		return nil, nil
	}
	resp := toOrderResponse(mo)
	return &resp, nil
}

// List lista MOs, filtrando por estado si state no es vacío.
func (uc *OrderUseCase) List(state string, limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.moRepo.List(state, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, mo := range list {
		items = append(items, toOrderResponse(mo))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Confirm ejecuta planned -> in_progress: valida integridad referencial de la
// BOM, consume materias primas (un movimiento consumption por componente) y
// genera una WO pending por componente. Todo o nada: si un componente no es
// materia prima, no existe, o no hay stock, la orden queda en planned.
func (uc *OrderUseCase) Confirm(ctx context.Context, id, userID string, in dto.ConfirmOrderRequest) (*dto.ConfirmOrderResponse, error) {
	var (
		updated *entity.ManufacturingOrder
		created []*entity.WorkOrder
	)
	err := uc.txRunner.RunManufacturing(ctx, func(
		moRepo repository.ManufacturingOrderRepository,
		woRepo repository.WorkOrderRepository,
		bomRepo repository.BOMRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		wcRepo repository.WorkCenterRepository,
	) error {
		mo, err := moRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if mo == nil {
			return domain.ErrNotFound
		}
		if mo.Version != in.Version {
			return domain.ErrConflict
		}
		newState, err := dommfg.ConfirmOrder(mo.State)
		if err != nil {
			return err
		}

		bom, err := bomRepo.GetByID(mo.BOMID)
		if err != nil {
			return err
		}
		if bom == nil {
			return domain.ErrNotFound
		}
		if bom.ProductID != mo.ProductID {
			return domain.ErrReferentialIntegrity
		}

		center, err := resolveWorkCenter(wcRepo, in.WorkCenterID)
		if err != nil {
			return err
		}

		now := time.Now()
		orders := make([]*entity.WorkOrder, 0, len(bom.Components))
		for _, comp := range bom.Components {
			component, err := productRepo.GetByID(comp.ProductID)
			if err != nil {
				return err
			}
			if component == nil || !component.IsRawMaterial {
				return domain.ErrReferentialIntegrity
			}

			required := comp.Quantity.Mul(mo.QuantityToProduce)
			inbound, outbound, err := movRepo.SumByProduct(comp.ProductID)
			if err != nil {
				return err
			}
			if domstock.Balance(inbound, outbound).LessThan(required) {
				return domain.ErrInsufficientStock
			}

			movement := &entity.StockMovement{
				ID:                   uuid.New().String(),
				ProductID:            comp.ProductID,
				Reference:            mo.Reference,
				MovementType:         entity.MovementTypeConsumption,
				Direction:            domstock.DirectionOut,
				Quantity:             required,
				UnitCost:             component.CostPrice,
				TotalCost:            required.Mul(component.CostPrice),
				ManufacturingOrderID: mo.ID,
				CreatedAt:            now,
				CreatedBy:            userID,
			}
			if err := movRepo.Create(movement); err != nil {
				return err
			}
			if err := stockuc.Rematerialize(movRepo, productRepo, comp.ProductID, nil); err != nil {
				return err
			}

			orders = append(orders, &entity.WorkOrder{
				ID:                   uuid.New().String(),
				ManufacturingOrderID: mo.ID,
				WorkCenterID:         center.ID,
				OperationName:        "Process " + component.Name,
				EstimatedTime:        comp.OperationTime,
				State:                entity.WOStatePending,
				AssigneeID:           mo.AssigneeID,
				Version:              1,
			})
		}

		if err := woRepo.CreateBatch(orders); err != nil {
			return err
		}

		mo.State = newState
		mo.StartedAt = &now
		mo.Version++
		if err := moRepo.Update(mo); err != nil {
			return err
		}
		updated = mo
		created = orders
		return nil
	})
	if err != nil {
		return nil, err
	}

	workOrders := make([]dto.WorkOrderResponse, 0, len(created))
	for _, wo := range created {
		workOrders = append(workOrders, toWorkOrderResponse(wo))
	}
	return &dto.ConfirmOrderResponse{
		Order:      toOrderResponse(updated),
		WorkOrders: workOrders,
	}, nil
}

// Complete ejecuta in_progress -> done: registra la cantidad producida (por
// defecto la planificada; la sobreproducción se permite y se graba tal cual)
// y asienta el movimiento de producción del producto terminado.
func (uc *OrderUseCase) Complete(ctx context.Context, id, userID string, in dto.CompleteOrderRequest) (*dto.CompleteOrderResponse, error) {
	var (
		updated  *entity.ManufacturingOrder
		movement *entity.StockMovement
	)
	err := uc.txRunner.RunManufacturing(ctx, func(
		moRepo repository.ManufacturingOrderRepository,
		_ repository.WorkOrderRepository,
		_ repository.BOMRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.WorkCenterRepository,
	) error {
		mo, err := moRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if mo == nil {
			return domain.ErrNotFound
		}
		if mo.Version != in.Version {
			return domain.ErrConflict
		}
		newState, err := dommfg.CompleteOrder(mo.State)
		if err != nil {
			return err
		}

		produced := mo.QuantityToProduce
		if in.QuantityProduced != nil {
			produced = *in.QuantityProduced
		}
		if produced.IsNegative() {
			return domain.ErrInvalidQuantity
		}

		product, err := productRepo.GetByID(mo.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		mo.State = newState
		mo.QuantityProduced = produced
		mo.CompletedAt = &now
		mo.Version++

		if produced.GreaterThan(decimal.Zero) {
			movement = &entity.StockMovement{
				ID:                   uuid.New().String(),
				ProductID:            mo.ProductID,
				Reference:            mo.Reference,
				MovementType:         entity.MovementTypeProduction,
				Direction:            domstock.DirectionIn,
				Quantity:             produced,
				UnitCost:             product.CostPrice,
				TotalCost:            produced.Mul(product.CostPrice),
				ManufacturingOrderID: mo.ID,
				CreatedAt:            now,
				CreatedBy:            userID,
			}
			if err := movRepo.Create(movement); err != nil {
				return err
			}
			if err := stockuc.Rematerialize(movRepo, productRepo, mo.ProductID, nil); err != nil {
				return err
			}
		}

		if err := moRepo.Update(mo); err != nil {
			return err
		}
		updated = mo
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.CompleteOrderResponse{Order: toOrderResponse(updated)}
	if movement != nil {
		resp.Movement = dto.MovementResponse{
			ID:                   movement.ID,
			ProductID:            movement.ProductID,
			Reference:            movement.Reference,
			MovementType:         movement.MovementType,
			Direction:            movement.Direction,
			Quantity:             movement.Quantity,
			UnitCost:             movement.UnitCost,
			TotalCost:            movement.TotalCost,
			ManufacturingOrderID: movement.ManufacturingOrderID,
			CreatedAt:            movement.CreatedAt,
			CreatedBy:            movement.CreatedBy,
		}
	}
	return resp, nil
}

// Cancel ejecuta planned|in_progress -> cancelled y cancela en cascada las
// WOs no terminales de la orden. Una orden en done ya no se puede cancelar.
func (uc *OrderUseCase) Cancel(ctx context.Context, id string, in dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	var updated *entity.ManufacturingOrder
	err := uc.txRunner.RunManufacturing(ctx, func(
		moRepo repository.ManufacturingOrderRepository,
		woRepo repository.WorkOrderRepository,
		_ repository.BOMRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.WorkCenterRepository,
	) error {
		mo, err := moRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if mo == nil {
			return domain.ErrNotFound
		}
		if mo.Version != in.Version {
			return domain.ErrConflict
		}
		newState, err := dommfg.CancelOrder(mo.State)
		if err != nil {
			return err
		}

		pending, err := woRepo.ListNonTerminalByManufacturingOrder(mo.ID)
		if err != nil {
			return err
		}
		for _, wo := range pending {
			woState, err := dommfg.CancelWorkOrder(wo.State)
			if err != nil {
				return err
			}
			wo.State = woState
			wo.Version++
			if err := woRepo.Update(wo); err != nil {
				return err
			}
		}

		mo.State = newState
		mo.Version++
		if err := moRepo.Update(mo); err != nil {
			return err
		}
		updated = mo
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(updated)
	return &resp, nil
}

// resolveWorkCenter devuelve el centro destino para las WOs generadas: el
// indicado (debe existir y estar activo) o el primer centro activo.
func resolveWorkCenter(wcRepo repository.WorkCenterRepository, id string) (*entity.WorkCenter, error) {
	if id != "" {
		center, err := wcRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if center == nil {
			return nil, domain.ErrNotFound
		}
		if !center.IsActive {
			return nil, domain.ErrWorkCenterInactive
		}
		return center, nil
	}
	center, err := wcRepo.FirstActive()
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, domain.ErrWorkCenterInactive
	}
	return center, nil
}

func toOrderResponse(mo *entity.ManufacturingOrder) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                mo.ID,
		Reference:         mo.Reference,
		ProductID:         mo.ProductID,
		BOMID:             mo.BOMID,
		QuantityToProduce: mo.QuantityToProduce,
		QuantityProduced:  mo.QuantityProduced,
		State:             mo.State,
		Progress:          dommfg.Progress(mo.QuantityProduced, mo.QuantityToProduce),
		ScheduledDate:     mo.ScheduledDate,
		AssigneeID:        mo.AssigneeID,
		Version:           mo.Version,
		CreatedAt:         mo.CreatedAt,
		StartedAt:         mo.StartedAt,
		CompletedAt:       mo.CompletedAt,
	}
}
