package repository

import (
	"time"

	"github.com/manuflow/manuflow-api/internal/domain/entity"
)

// ManufacturingOrderRepository define el puerto de persistencia para MO (DIP).
type ManufacturingOrderRepository interface {
	Create(mo *entity.ManufacturingOrder) error
	GetByID(id string) (*entity.ManufacturingOrder, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para transiciones.
	GetForUpdate(id string) (*entity.ManufacturingOrder, error)
	// Update persiste estado, cantidades, timestamps y versión. La cláusula
	// WHERE incluye la versión previa (mo.Version - 1); si no afecta filas
	// devuelve domain.ErrConflict (escritura obsoleta).
	Update(mo *entity.ManufacturingOrder) error
	// List filtra por estado si state no es vacío, ordenado por creación descendente.
	List(state string, limit, offset int) ([]*entity.ManufacturingOrder, error)
	ListByCreatedRange(from, to *time.Time) ([]*entity.ManufacturingOrder, error)
}
