package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
	domstock "github.com/manuflow/manuflow-api/internal/domain/stock"
)

// LedgerUseCase registra movimientos en el libro de inventario y expone sus
// agregados. El libro es la fuente de verdad del stock: después de cada
// registro se recalcula Product.CurrentStock desde las sumas del libro,
// dentro de la misma transacción.
type LedgerUseCase struct {
	txRunner    TxRunner
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewLedgerUseCase construye el caso de uso del libro de inventario.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, productRepo: productRepo}
}

// PostMovement valida y registra un movimiento (append-only) y deja el stock
// del producto rematerializado. Todo o nada: si algo falla no queda ni el
// movimiento ni el stock tocado.
func (uc *LedgerUseCase) PostMovement(ctx context.Context, userID string, in dto.PostMovementRequest) (*dto.PostMovementResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	// La dirección la codifica el tipo, no el signo: cantidad siempre > 0.
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	direction, err := domstock.NormalizeType(in.Type)
	if err != nil {
		return nil, err
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	movement := &entity.StockMovement{
		ID:                   uuid.New().String(),
		ProductID:            in.ProductID,
		Reference:            in.Reference,
		MovementType:         in.Type,
		Direction:            direction,
		Quantity:             in.Quantity,
		UnitCost:             in.UnitCost,
		TotalCost:            in.Quantity.Mul(in.UnitCost),
		ManufacturingOrderID: in.ManufacturingOrderID,
		CreatedAt:            now,
		CreatedBy:            userID,
	}

	var newStock decimal.Decimal
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		return Rematerialize(movRepo, productRepo, in.ProductID, &newStock)
	})
	if err != nil {
		return nil, err
	}

	return &dto.PostMovementResponse{
		Movement:     toMovementResponse(movement),
		CurrentStock: newStock,
	}, nil
}

// Rematerialize recalcula el stock de un producto desde las sumas del libro
// (sum entradas - sum salidas) y lo escribe en products.current_stock.
// Debe invocarse con repositorios atados a la transacción del movimiento.
func Rematerialize(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	out *decimal.Decimal,
) error {
	inbound, outbound, err := movRepo.SumByProduct(productID)
	if err != nil {
		return err
	}
	balance := domstock.Balance(inbound, outbound)
	if err := productRepo.UpdateStock(productID, balance); err != nil {
		return err
	}
	if out != nil {
		*out = balance
	}
	return nil
}

// List lista los movimientos del libro, los más recientes primero.
func (uc *LedgerUseCase) List(limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, limit, offset), nil
}

// ListByProduct lista los movimientos de un producto.
func (uc *LedgerUseCase) ListByProduct(productID string, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementList(list, limit, offset), nil
}

// Aggregate totaliza el libro en un rango de fechas (solo parte de fecha,
// límites inclusivos). Lectura pura: repetirla sin escrituras intermedias
// devuelve exactamente lo mismo.
func (uc *LedgerUseCase) Aggregate(from, to *time.Time) (*dto.MovementAggregateResponse, error) {
	agg, err := uc.movRepo.Aggregate(from, to)
	if err != nil {
		return nil, err
	}
	return &dto.MovementAggregateResponse{
		TotalCount:    agg.TotalCount,
		InboundCount:  agg.InboundCount,
		OutboundCount: agg.OutboundCount,
		TotalValue:    agg.TotalValue,
	}, nil
}

func toMovementList(list []*entity.StockMovement, limit, offset int) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                   m.ID,
		ProductID:            m.ProductID,
		Reference:            m.Reference,
		MovementType:         m.MovementType,
		Direction:            m.Direction,
		Quantity:             m.Quantity,
		UnitCost:             m.UnitCost,
		TotalCost:            m.TotalCost,
		ManufacturingOrderID: m.ManufacturingOrderID,
		CreatedAt:            m.CreatedAt,
		CreatedBy:            m.CreatedBy,
	}
}
