package repository

import (
	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock escribe el valor materializado de stock; el libro de
// movimientos sigue siendo la fuente de verdad.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	ListBelowMinStock() ([]*entity.Product, error)
	Delete(id string) error
}
