package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkCenterRequest body para POST /api/work-centers.
type CreateWorkCenterRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CostPerHour decimal.Decimal `json:"cost_per_hour"`
	Capacity    int             `json:"capacity"` // default 1
}

// WorkCenterResponse centro de trabajo.
type WorkCenterResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CostPerHour decimal.Decimal `json:"cost_per_hour"`
	Capacity    int             `json:"capacity"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// WorkCenterListResponse listado paginado de centros de trabajo.
type WorkCenterListResponse struct {
	Items []WorkCenterResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
