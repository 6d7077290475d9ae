package manufacturing

import (
	"context"

	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Las transiciones de MO/WO y sus asientos en
// el libro son todo-o-nada: un fallo en cualquier paso deja el estado intacto.
type TxRunner interface {
	RunManufacturing(ctx context.Context, fn func(
		moRepo repository.ManufacturingOrderRepository,
		woRepo repository.WorkOrderRepository,
		bomRepo repository.BOMRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		wcRepo repository.WorkCenterRepository,
	) error) error
}
