package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre PostgreSQL (usable con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const woColumns = `id, manufacturing_order_id, work_center_id, operation_name, estimated_time, actual_time, state, assignee_id, version, started_at, completed_at, notes`

// CreateBatch inserta las WOs generadas al confirmar una MO.
func (r *WorkOrderRepo) CreateBatch(orders []*entity.WorkOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO work_orders (` + woColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, wo := range orders {
		assignee := (*string)(nil)
		if wo.AssigneeID != "" {
			assignee = &wo.AssigneeID
		}
		_, err := r.q.Exec(ctx, query,
			wo.ID, wo.ManufacturingOrderID, wo.WorkCenterID, wo.OperationName,
			wo.EstimatedTime, wo.ActualTime, wo.State, assignee,
			wo.Version, wo.StartedAt, wo.CompletedAt, wo.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert work order: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una WO por ID; nil si no existe.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + woColumns + ` FROM work_orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate bloquea la fila de la WO para una transición (SELECT FOR UPDATE).
func (r *WorkOrderRepo) GetForUpdate(id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + woColumns + ` FROM work_orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// Update persiste estado, tiempos, notas y versión con chequeo optimista.
func (r *WorkOrderRepo) Update(wo *entity.WorkOrder) error {
	query := `
		UPDATE work_orders
		SET actual_time = $2, state = $3, assignee_id = $4, version = $5,
		    started_at = $6, completed_at = $7, notes = $8
		WHERE id = $1 AND version = $9`
	assignee := (*string)(nil)
	if wo.AssigneeID != "" {
		assignee = &wo.AssigneeID
	}
	tag, err := r.q.Exec(context.Background(), query,
		wo.ID, wo.ActualTime, wo.State, assignee, wo.Version,
		wo.StartedAt, wo.CompletedAt, wo.Notes, wo.Version-1,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListByManufacturingOrder lista las WOs de una MO en orden de creación.
func (r *WorkOrderRepo) ListByManufacturingOrder(moID string) ([]*entity.WorkOrder, error) {
	query := `
		SELECT ` + woColumns + `
		FROM work_orders WHERE manufacturing_order_id = $1 ORDER BY id`
	return r.list(query, moID)
}

// ListNonTerminalByManufacturingOrder lista las WOs en pending o in_progress
// de una MO (cancelación en cascada).
func (r *WorkOrderRepo) ListNonTerminalByManufacturingOrder(moID string) ([]*entity.WorkOrder, error) {
	query := `
		SELECT ` + woColumns + `
		FROM work_orders
		WHERE manufacturing_order_id = $1 AND state IN ('pending', 'in_progress')
		ORDER BY id`
	return r.list(query, moID)
}

func (r *WorkOrderRepo) getOne(query string, arg any) (*entity.WorkOrder, error) {
	wo, err := scanWorkOrder(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return wo, nil
}

func (r *WorkOrderRepo) list(query string, args ...any) ([]*entity.WorkOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		list = append(list, wo)
	}
	return list, rows.Err()
}

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	var assignee, notes *string
	err := row.Scan(
		&wo.ID, &wo.ManufacturingOrderID, &wo.WorkCenterID, &wo.OperationName,
		&wo.EstimatedTime, &wo.ActualTime, &wo.State, &assignee,
		&wo.Version, &wo.StartedAt, &wo.CompletedAt, &notes,
	)
	if err != nil {
		return nil, err
	}
	if assignee != nil {
		wo.AssigneeID = *assignee
	}
	if notes != nil {
		wo.Notes = *notes
	}
	return &wo, nil
}
