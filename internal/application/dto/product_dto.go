package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Unit          string           `json:"unit,omitempty"` // default "Units"
	CurrentStock  *decimal.Decimal `json:"current_stock,omitempty"`
	MinStock      decimal.Decimal  `json:"min_stock"`
	CostPrice     decimal.Decimal  `json:"cost_price"`
	IsRawMaterial bool             `json:"is_raw_material"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
// El stock no se actualiza por aquí: solo vía movimientos.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	MinStock      *decimal.Decimal `json:"min_stock,omitempty"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"`
	IsRawMaterial *bool            `json:"is_raw_material,omitempty"`
}

// ProductResponse producto con su clasificación de stock derivada.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	IsRawMaterial bool            `json:"is_raw_material"`
	StockStatus   string          `json:"stock_status"` // out_of_stock, low_stock, in_stock
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
