package repository

import "github.com/manuflow/manuflow-api/internal/domain/entity"

// WorkOrderRepository define el puerto de persistencia para WO (DIP).
type WorkOrderRepository interface {
	// CreateBatch inserta las órdenes de trabajo generadas al confirmar una MO.
	CreateBatch(orders []*entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para transiciones.
	GetForUpdate(id string) (*entity.WorkOrder, error)
	// Update persiste estado, tiempos y versión con chequeo optimista
	// (WHERE version = wo.Version - 1); sin filas afectadas -> domain.ErrConflict.
	Update(wo *entity.WorkOrder) error
	ListByManufacturingOrder(moID string) ([]*entity.WorkOrder, error)
	// ListNonTerminalByManufacturingOrder devuelve las WO en pending o
	// in_progress de una MO (para la cancelación en cascada).
	ListNonTerminalByManufacturingOrder(moID string) ([]*entity.WorkOrder, error)
}
