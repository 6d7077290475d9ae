package manufacturing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

// BOMUseCase gestiona listas de materiales. La creación valida que el
// producto de salida sea terminado y que cada componente sea materia prima;
// cabecera y líneas se persisten en una misma transacción.
type BOMUseCase struct {
	txRunner    TxRunner
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(txRunner TxRunner, bomRepo repository.BOMRepository, productRepo repository.ProductRepository) *BOMUseCase {
	return &BOMUseCase{txRunner: txRunner, bomRepo: bomRepo, productRepo: productRepo}
}

// Create valida y persiste una BOM con sus componentes.
func (uc *BOMUseCase) Create(ctx context.Context, in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	if in.ProductID == "" || in.Name == "" || len(in.Components) == 0 {
		return nil, domain.ErrInvalidInput
	}
	quantity := decimal.NewFromInt(1)
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}

	bom := &entity.BOM{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Name:        in.Name,
		Description: in.Description,
		Quantity:    quantity,
		CreatedAt:   time.Now(),
	}
	for _, comp := range in.Components {
		if comp.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if !comp.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
		if comp.OperationTime.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		bom.Components = append(bom.Components, entity.BOMComponent{
			ID:            uuid.New().String(),
			BOMID:         bom.ID,
			ProductID:     comp.ProductID,
			Quantity:      comp.Quantity,
			OperationTime: comp.OperationTime,
		})
	}

	err := uc.txRunner.RunManufacturing(ctx, func(
		_ repository.ManufacturingOrderRepository,
		_ repository.WorkOrderRepository,
		bomRepo repository.BOMRepository,
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.WorkCenterRepository,
	) error {
		output, err := productRepo.GetByID(bom.ProductID)
		if err != nil {
			return err
		}
		// La salida de una BOM es un producto terminado, nunca materia prima.
		if output == nil || output.IsRawMaterial {
			return domain.ErrReferentialIntegrity
		}
		for _, comp := range bom.Components {
			component, err := productRepo.GetByID(comp.ProductID)
			if err != nil {
				return err
			}
			if component == nil || !component.IsRawMaterial {
				return domain.ErrReferentialIntegrity
			}
		}
		return bomRepo.Create(bom)
	})
	if err != nil {
		return nil, err
	}
	return uc.toBOMResponse(bom)
}

// GetByID devuelve la BOM con nombres de producto resueltos; nil si no existe.
func (uc *BOMUseCase) GetByID(id string) (*dto.BOMResponse, error) {
	bom, err := uc.bomRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, nil
	}
	return uc.toBOMResponse(bom)
}

// List lista BOMs con sus componentes.
func (uc *BOMUseCase) List(limit, offset int) (*dto.BOMListResponse, error) {
	list, err := uc.bomRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BOMResponse, 0, len(list))
	for _, bom := range list {
		resp, err := uc.toBOMResponse(bom)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.BOMListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *BOMUseCase) toBOMResponse(bom *entity.BOM) (*dto.BOMResponse, error) {
	resp := &dto.BOMResponse{
		ID:          bom.ID,
		ProductID:   bom.ProductID,
		ProductName: uc.productName(bom.ProductID),
		Name:        bom.Name,
		Description: bom.Description,
		Quantity:    bom.Quantity,
		Components:  make([]dto.BOMComponentResponse, 0, len(bom.Components)),
		CreatedAt:   bom.CreatedAt,
	}
	for _, comp := range bom.Components {
		resp.Components = append(resp.Components, dto.BOMComponentResponse{
			ID:            comp.ID,
			ProductID:     comp.ProductID,
			ProductName:   uc.productName(comp.ProductID),
			Quantity:      comp.Quantity,
			OperationTime: comp.OperationTime,
		})
	}
	return resp, nil
}

// productName resuelve el nombre para display; vacío si el producto ya no existe.
func (uc *BOMUseCase) productName(productID string) string {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return ""
	}
	return product.Name
}
