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

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación del puerto BOMRepository sobre PostgreSQL (usable con pool o tx).
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// Create persiste la cabecera y las líneas. Debe correr dentro de una tx
// (vía TxRunner) para que cabecera y líneas sean atómicas.
func (r *BOMRepo) Create(bom *entity.BOM) error {
	ctx := context.Background()
	query := `
		INSERT INTO boms (id, product_id, name, description, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		bom.ID, bom.ProductID, bom.Name, bom.Description, bom.Quantity, bom.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bom: %w", err)
	}
	for _, comp := range bom.Components {
		query := `
			INSERT INTO bom_components (id, bom_id, product_id, quantity, operation_time)
			VALUES ($1, $2, $3, $4, $5)`
		_, err := r.q.Exec(ctx, query,
			comp.ID, comp.BOMID, comp.ProductID, comp.Quantity, comp.OperationTime,
		)
		if err != nil {
			return fmt.Errorf("insert bom component: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la BOM con sus componentes; nil si no existe.
func (r *BOMRepo) GetByID(id string) (*entity.BOM, error) {
	ctx := context.Background()
	query := `
		SELECT id, product_id, name, description, quantity, created_at
		FROM boms WHERE id = $1`
	var bom entity.BOM
	err := r.q.QueryRow(ctx, query, id).Scan(
		&bom.ID, &bom.ProductID, &bom.Name, &bom.Description, &bom.Quantity, &bom.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom: %w", err)
	}
	components, err := r.listComponents(ctx, bom.ID)
	if err != nil {
		return nil, err
	}
	bom.Components = components
	return &bom, nil
}

// List lista BOMs con componentes, las más recientes primero.
func (r *BOMRepo) List(limit, offset int) ([]*entity.BOM, error) {
	ctx := context.Background()
	query := `
		SELECT id, product_id, name, description, quantity, created_at
		FROM boms ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOM
	for rows.Next() {
		var bom entity.BOM
		if err := rows.Scan(&bom.ID, &bom.ProductID, &bom.Name, &bom.Description,
			&bom.Quantity, &bom.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		list = append(list, &bom)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, bom := range list {
		components, err := r.listComponents(ctx, bom.ID)
		if err != nil {
			return nil, err
		}
		bom.Components = components
	}
	return list, nil
}

func (r *BOMRepo) listComponents(ctx context.Context, bomID string) ([]entity.BOMComponent, error) {
	query := `
		SELECT id, bom_id, product_id, quantity, operation_time
		FROM bom_components WHERE bom_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, bomID)
	if err != nil {
		return nil, fmt.Errorf("list bom components: %w", err)
	}
	defer rows.Close()
	var components []entity.BOMComponent
	for rows.Next() {
		var comp entity.BOMComponent
		if err := rows.Scan(&comp.ID, &comp.BOMID, &comp.ProductID,
			&comp.Quantity, &comp.OperationTime); err != nil {
			return nil, fmt.Errorf("scan bom component: %w", err)
		}
		components = append(components, comp)
	}
	return components, rows.Err()
}
