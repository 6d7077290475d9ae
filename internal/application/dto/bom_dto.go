package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMComponentRequest línea de BOM en la creación.
type BOMComponentRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	OperationTime decimal.Decimal `json:"operation_time,omitempty"` // minutos
}

// CreateBOMRequest body para POST /api/boms.
type CreateBOMRequest struct {
	ProductID   string                `json:"product_id"` // producto terminado
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Quantity    *decimal.Decimal      `json:"quantity,omitempty"` // default 1
	Components  []BOMComponentRequest `json:"components"`
}

// BOMComponentResponse línea de BOM con el nombre del producto resuelto.
type BOMComponentResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	OperationTime decimal.Decimal `json:"operation_time"`
}

// BOMResponse BOM con sus componentes.
type BOMResponse struct {
	ID          string                 `json:"id"`
	ProductID   string                 `json:"product_id"`
	ProductName string                 `json:"product_name"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Quantity    decimal.Decimal        `json:"quantity"`
	Components  []BOMComponentResponse `json:"components"`
	CreatedAt   time.Time              `json:"created_at"`
}

// BOMListResponse listado paginado de BOMs.
type BOMListResponse struct {
	Items []BOMResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
