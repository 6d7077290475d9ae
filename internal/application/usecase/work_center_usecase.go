package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

// WorkCenterUseCase CRUD de centros de trabajo.
type WorkCenterUseCase struct {
	wcRepo repository.WorkCenterRepository
}

// NewWorkCenterUseCase construye el caso de uso.
func NewWorkCenterUseCase(wcRepo repository.WorkCenterRepository) *WorkCenterUseCase {
	return &WorkCenterUseCase{wcRepo: wcRepo}
}

// Create da de alta un centro de trabajo activo.
func (uc *WorkCenterUseCase) Create(in dto.CreateWorkCenterRequest) (*dto.WorkCenterResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPerHour.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	capacity := in.Capacity
	if capacity == 0 {
		capacity = 1
	}
	if capacity < 1 {
		return nil, domain.ErrInvalidInput
	}
	center := &entity.WorkCenter{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CostPerHour: in.CostPerHour,
		Capacity:    capacity,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := uc.wcRepo.Create(center); err != nil {
		return nil, err
	}
	resp := toWorkCenterResponse(center)
	return &resp, nil
}

// GetByID devuelve el centro o nil si no existe.
func (uc *WorkCenterUseCase) GetByID(id string) (*dto.WorkCenterResponse, error) {
	center, err := uc.wcRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, nil
	}
	resp := toWorkCenterResponse(center)
	return &resp, nil
}

// List lista centros de trabajo.
func (uc *WorkCenterUseCase) List(limit, offset int) (*dto.WorkCenterListResponse, error) {
	list, err := uc.wcRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorkCenterResponse, 0, len(list))
	for _, center := range list {
		items = append(items, toWorkCenterResponse(center))
	}
	return &dto.WorkCenterListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toWorkCenterResponse(wc *entity.WorkCenter) dto.WorkCenterResponse {
	return dto.WorkCenterResponse{
		ID:          wc.ID,
		Name:        wc.Name,
		Description: wc.Description,
		CostPerHour: wc.CostPerHour,
		Capacity:    wc.Capacity,
		IsActive:    wc.IsActive,
		CreatedAt:   wc.CreatedAt,
	}
}
