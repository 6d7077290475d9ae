package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	"github.com/manuflow/manuflow-api/internal/application/stock"
	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
	domstock "github.com/manuflow/manuflow-api/internal/domain/stock"
)

// ProductUseCase CRUD de productos. El stock nunca se edita directo: el alta
// con stock inicial asienta un movimiento de apertura en el libro, y desde
// ahí solo los movimientos lo mueven.
type ProductUseCase struct {
	txRunner    stock.TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner stock.TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// Create da de alta un producto. Si trae stock inicial > 0 se asienta como
// movimiento de entrada (apertura) y se materializa desde el libro.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock.IsNegative() || in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	unit := in.Unit
	if unit == "" {
		unit = "Units"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Unit:          unit,
		CurrentStock:  decimal.Zero,
		MinStock:      in.MinStock,
		CostPrice:     in.CostPrice,
		IsRawMaterial: in.IsRawMaterial,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var opening *entity.StockMovement
	if in.CurrentStock != nil && in.CurrentStock.GreaterThan(decimal.Zero) {
		opening = &entity.StockMovement{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			Reference:    "OPENING",
			MovementType: entity.MovementTypeIn,
			Direction:    domstock.DirectionIn,
			Quantity:     *in.CurrentStock,
			UnitCost:     in.CostPrice,
			TotalCost:    in.CurrentStock.Mul(in.CostPrice),
			CreatedAt:    now,
			CreatedBy:    userID,
		}
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if opening == nil {
			return nil
		}
		if err := movRepo.Create(opening); err != nil {
			return err
		}
		return stock.Rematerialize(movRepo, productRepo, product.ID, &product.CurrentStock)
	})
	if err != nil {
		return nil, err
	}
	return uc.toProductResponse(product)
}

// GetByID devuelve el producto o nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toProductResponse(product)
}

// Update aplica los campos presentes del request. El stock no se toca aquí.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.IsRawMaterial != nil {
		product.IsRawMaterial = *in.IsRawMaterial
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return uc.toProductResponse(product)
}

// List lista productos con su clasificación de stock.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, product := range list {
		resp, err := uc.toProductResponse(product)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina el producto.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func (uc *ProductUseCase) toProductResponse(p *entity.Product) (*dto.ProductResponse, error) {
	_, outbound, err := uc.movRepo.SumByProduct(p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Unit:          p.Unit,
		CurrentStock:  p.CurrentStock,
		MinStock:      p.MinStock,
		CostPrice:     p.CostPrice,
		IsRawMaterial: p.IsRawMaterial,
		StockStatus:   domstock.Status(p, outbound),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}
