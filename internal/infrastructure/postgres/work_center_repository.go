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

var _ repository.WorkCenterRepository = (*WorkCenterRepo)(nil)

// WorkCenterRepo implementación del puerto WorkCenterRepository sobre PostgreSQL (usable con pool o tx).
type WorkCenterRepo struct {
	q Querier
}

// NewWorkCenterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkCenterRepository(q Querier) *WorkCenterRepo {
	return &WorkCenterRepo{q: q}
}

const workCenterColumns = `id, name, description, cost_per_hour, capacity, is_active, created_at`

// Create persiste un centro de trabajo.
func (r *WorkCenterRepo) Create(center *entity.WorkCenter) error {
	query := `
		INSERT INTO work_centers (` + workCenterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		center.ID, center.Name, center.Description, center.CostPerHour,
		center.Capacity, center.IsActive, center.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work center: %w", err)
	}
	return nil
}

// GetByID obtiene un centro por ID; nil si no existe.
func (r *WorkCenterRepo) GetByID(id string) (*entity.WorkCenter, error) {
	query := `SELECT ` + workCenterColumns + ` FROM work_centers WHERE id = $1`
	return r.getOne(query, id)
}

// FirstActive devuelve el centro activo más antiguo; nil si no hay ninguno.
func (r *WorkCenterRepo) FirstActive() (*entity.WorkCenter, error) {
	query := `
		SELECT ` + workCenterColumns + `
		FROM work_centers WHERE is_active
		ORDER BY created_at LIMIT 1`
	var wc entity.WorkCenter
	err := r.q.QueryRow(context.Background(), query).Scan(
		&wc.ID, &wc.Name, &wc.Description, &wc.CostPerHour,
		&wc.Capacity, &wc.IsActive, &wc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first active work center: %w", err)
	}
	return &wc, nil
}

// List lista centros de trabajo por nombre.
func (r *WorkCenterRepo) List(limit, offset int) ([]*entity.WorkCenter, error) {
	query := `SELECT ` + workCenterColumns + ` FROM work_centers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list work centers: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkCenter
	for rows.Next() {
		var wc entity.WorkCenter
		if err := rows.Scan(&wc.ID, &wc.Name, &wc.Description, &wc.CostPerHour,
			&wc.Capacity, &wc.IsActive, &wc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan work center: %w", err)
		}
		list = append(list, &wc)
	}
	return list, rows.Err()
}

func (r *WorkCenterRepo) getOne(query string, arg any) (*entity.WorkCenter, error) {
	var wc entity.WorkCenter
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&wc.ID, &wc.Name, &wc.Description, &wc.CostPerHour,
		&wc.Capacity, &wc.IsActive, &wc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work center: %w", err)
	}
	return &wc, nil
}
