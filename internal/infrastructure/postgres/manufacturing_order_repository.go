package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
)

var _ repository.ManufacturingOrderRepository = (*ManufacturingOrderRepo)(nil)

// ManufacturingOrderRepo implementación del puerto sobre PostgreSQL (usable con pool o tx).
type ManufacturingOrderRepo struct {
	q Querier
}

// NewManufacturingOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManufacturingOrderRepository(q Querier) *ManufacturingOrderRepo {
	return &ManufacturingOrderRepo{q: q}
}

const moColumns = `id, reference, product_id, bom_id, quantity_to_produce, quantity_produced, state, scheduled_date, assignee_id, version, created_at, started_at, completed_at`

// Create persiste una MO. Referencia duplicada -> domain.ErrDuplicate (el caller regenera).
func (r *ManufacturingOrderRepo) Create(mo *entity.ManufacturingOrder) error {
	query := `
		INSERT INTO manufacturing_orders (` + moColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	assignee := (*string)(nil)
	if mo.AssigneeID != "" {
		assignee = &mo.AssigneeID
	}
	_, err := r.q.Exec(context.Background(), query,
		mo.ID, mo.Reference, mo.ProductID, mo.BOMID,
		mo.QuantityToProduce, mo.QuantityProduced, mo.State,
		mo.ScheduledDate, assignee, mo.Version,
		mo.CreatedAt, mo.StartedAt, mo.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert manufacturing order: %w", err)
	}
	return nil
}

// GetByID obtiene una MO por ID; nil si no existe.
func (r *ManufacturingOrderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	query := `SELECT ` + moColumns + ` FROM manufacturing_orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate bloquea la fila de la MO para una transición (SELECT FOR UPDATE).
func (r *ManufacturingOrderRepo) GetForUpdate(id string) (*entity.ManufacturingOrder, error) {
	query := `SELECT ` + moColumns + ` FROM manufacturing_orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// Update persiste estado, cantidades, timestamps y versión. El WHERE exige la
// versión previa: sin filas afectadas la escritura es obsoleta (ErrConflict).
func (r *ManufacturingOrderRepo) Update(mo *entity.ManufacturingOrder) error {
	query := `
		UPDATE manufacturing_orders
		SET quantity_produced = $2, state = $3, assignee_id = $4,
		    version = $5, started_at = $6, completed_at = $7
		WHERE id = $1 AND version = $8`
	assignee := (*string)(nil)
	if mo.AssigneeID != "" {
		assignee = &mo.AssigneeID
	}
	tag, err := r.q.Exec(context.Background(), query,
		mo.ID, mo.QuantityProduced, mo.State, assignee,
		mo.Version, mo.StartedAt, mo.CompletedAt, mo.Version-1,
	)
	if err != nil {
		return fmt.Errorf("update manufacturing order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List lista MOs, filtrando por estado si state no es vacío.
func (r *ManufacturingOrderRepo) List(state string, limit, offset int) ([]*entity.ManufacturingOrder, error) {
	query := `SELECT ` + moColumns + ` FROM manufacturing_orders`
	args := []any{}
	pos := 1
	if state != "" {
		query += fmt.Sprintf(" WHERE state = $%d", pos)
		args = append(args, state)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list manufacturing orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByCreatedRange lista MOs creadas en el rango dado (parte de fecha, inclusivo).
func (r *ManufacturingOrderRepo) ListByCreatedRange(from, to *time.Time) ([]*entity.ManufacturingOrder, error) {
	query := `SELECT ` + moColumns + ` FROM manufacturing_orders WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at::date >= $%d::date", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at::date <= $%d::date", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by created range: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *ManufacturingOrderRepo) getOne(query string, arg any) (*entity.ManufacturingOrder, error) {
	mo, err := scanOrder(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturing order: %w", err)
	}
	return mo, nil
}

func scanOrder(row pgx.Row) (*entity.ManufacturingOrder, error) {
	var mo entity.ManufacturingOrder
	var assignee *string
	err := row.Scan(
		&mo.ID, &mo.Reference, &mo.ProductID, &mo.BOMID,
		&mo.QuantityToProduce, &mo.QuantityProduced, &mo.State,
		&mo.ScheduledDate, &assignee, &mo.Version,
		&mo.CreatedAt, &mo.StartedAt, &mo.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if assignee != nil {
		mo.AssigneeID = *assignee
	}
	return &mo, nil
}

func collectOrders(rows pgx.Rows) ([]*entity.ManufacturingOrder, error) {
	var list []*entity.ManufacturingOrder
	for rows.Next() {
		mo, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manufacturing order: %w", err)
		}
		list = append(list, mo)
	}
	return list, rows.Err()
}
