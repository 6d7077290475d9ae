package repository

import "github.com/manuflow/manuflow-api/internal/domain/entity"

// BOMRepository define el puerto de persistencia para BOM y sus componentes (DIP).
type BOMRepository interface {
	// Create persiste la BOM y todas sus líneas. Debe ejecutarse dentro de
	// una transacción (vía TxRunner) para garantizar atomicidad.
	Create(bom *entity.BOM) error
	// GetByID devuelve la BOM con sus componentes cargados; nil si no existe.
	GetByID(id string) (*entity.BOM, error)
	List(limit, offset int) ([]*entity.BOM, error)
}
