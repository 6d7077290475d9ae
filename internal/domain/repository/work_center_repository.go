package repository

import "github.com/manuflow/manuflow-api/internal/domain/entity"

// WorkCenterRepository define el puerto de persistencia para WorkCenter (DIP).
type WorkCenterRepository interface {
	Create(center *entity.WorkCenter) error
	GetByID(id string) (*entity.WorkCenter, error)
	// FirstActive devuelve el centro activo más antiguo, usado como destino
	// por defecto al generar órdenes de trabajo. nil si no hay ninguno.
	FirstActive() (*entity.WorkCenter, error)
	List(limit, offset int) ([]*entity.WorkCenter, error)
}
