package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	appstock "github.com/manuflow/manuflow-api/internal/application/stock"
	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
	domstock "github.com/manuflow/manuflow-api/internal/domain/stock"
)

// ledgerHarness agrupa los repos en memoria y hace de TxRunner. Igual que en
// una transacción real, un error del callback deja todo como estaba.
type ledgerHarness struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func newLedgerHarness() *ledgerHarness {
	return &ledgerHarness{products: map[string]*entity.Product{}}
}

func (h *ledgerHarness) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapProducts := map[string]*entity.Product{}
	for k, v := range h.products {
		cp := *v
		snapProducts[k] = &cp
	}
	snapMovements := append([]*entity.StockMovement(nil), h.movements...)

	err := fn(&memMovRepo{h}, &memProductRepo{h})
	if err != nil {
		h.products = snapProducts
		h.movements = snapMovements
	}
	return err
}

type memProductRepo struct{ h *ledgerHarness }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.h.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.h.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.h.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.h.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id string, s decimal.Decimal) error {
	p, ok := r.h.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = s
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) ListBelowMinStock() ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) Delete(id string) error {
	delete(r.h.products, id)
	return nil
}

type memMovRepo struct{ h *ledgerHarness }

func (r *memMovRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.h.movements = append(r.h.movements, &cp)
	return nil
}

func (r *memMovRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.h.movements {
		cp := *m
		list = append(list, &cp)
	}
	return list, nil
}

func (r *memMovRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.h.movements {
		if m.ProductID == productID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memMovRepo) SumByProduct(productID string) (decimal.Decimal, decimal.Decimal, error) {
	inbound, outbound := decimal.Zero, decimal.Zero
	for _, m := range r.h.movements {
		if m.ProductID != productID {
			continue
		}
		if m.Direction == domstock.DirectionIn {
			inbound = inbound.Add(m.Quantity)
		} else {
			outbound = outbound.Add(m.Quantity)
		}
	}
	return inbound, outbound, nil
}

func (r *memMovRepo) Aggregate(from, to *time.Time) (*repository.MovementAggregate, error) {
	agg := &repository.MovementAggregate{TotalValue: decimal.Zero}
	for _, m := range r.h.movements {
		day := m.CreatedAt.Truncate(24 * time.Hour)
		if from != nil && day.Before(from.Truncate(24*time.Hour)) {
			continue
		}
		if to != nil && day.After(to.Truncate(24*time.Hour)) {
			continue
		}
		agg.TotalCount++
		if m.Direction == domstock.DirectionIn {
			agg.InboundCount++
		} else {
			agg.OutboundCount++
		}
		agg.TotalValue = agg.TotalValue.Add(m.Quantity.Mul(m.UnitCost))
	}
	return agg, nil
}

func newLedger(t *testing.T) (*appstock.LedgerUseCase, *ledgerHarness) {
	t.Helper()
	h := newLedgerHarness()
	uc := appstock.NewLedgerUseCase(h, &memMovRepo{h}, &memProductRepo{h})
	return uc, h
}

func seedProduct(h *ledgerHarness) *entity.Product {
	p := &entity.Product{
		ID:            uuid.New().String(),
		Name:          "Tornillo M8",
		Unit:          "Units",
		IsRawMaterial: true,
		CurrentStock:  decimal.Zero,
		MinStock:      decimal.NewFromInt(50),
		CostPrice:     decimal.NewFromFloat(0.80),
		CreatedAt:     time.Now(),
	}
	h.products[p.ID] = p
	return p
}

func TestPostMovement_Validaciones(t *testing.T) {
	uc, h := newLedger(t)
	p := seedProduct(h)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.PostMovementRequest
		want error
	}{
		{"producto vacío", dto.PostMovementRequest{Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"cantidad cero", dto.PostMovementRequest{ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: decimal.Zero}, domain.ErrInvalidQuantity},
		{"cantidad negativa", dto.PostMovementRequest{ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(-3)}, domain.ErrInvalidQuantity},
		{"tipo desconocido", dto.PostMovementRequest{ProductID: p.ID, Type: "transfer", Quantity: decimal.NewFromInt(1)}, domain.ErrInvalidInput},
		{"costo negativo", dto.PostMovementRequest{ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.PostMovement(ctx, "user-1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Ningún intento inválido deja rastro en el libro.
	assert.Empty(t, h.movements)
}

func TestPostMovement_ProductoInexistente(t *testing.T) {
	uc, h := newLedger(t)

	_, err := uc.PostMovement(context.Background(), "user-1", dto.PostMovementRequest{
		ProductID: uuid.New().String(),
		Type:      entity.MovementTypeIn,
		Quantity:  decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, h.movements, "la transacción revierte el movimiento")
}

func TestPostMovement_RematerializaElStock(t *testing.T) {
	uc, h := newLedger(t)
	p := seedProduct(h)
	ctx := context.Background()

	in, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: p.ID,
		Type:      entity.MovementTypeIn,
		Quantity:  decimal.NewFromInt(100),
		UnitCost:  decimal.NewFromFloat(0.80),
		Reference: "PO-1001",
	})
	require.NoError(t, err)
	assert.Equal(t, domstock.DirectionIn, in.Movement.Direction)
	assert.True(t, in.CurrentStock.Equal(decimal.NewFromInt(100)))
	assert.True(t, in.Movement.TotalCost.Equal(decimal.NewFromInt(80)))

	out, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: p.ID,
		Type:      entity.MovementTypeConsumption,
		Quantity:  decimal.NewFromInt(35),
	})
	require.NoError(t, err)
	assert.Equal(t, domstock.DirectionOut, out.Movement.Direction)
	assert.True(t, out.CurrentStock.Equal(decimal.NewFromInt(65)))

	// El producto refleja el saldo del libro, no una resta manual.
	assert.True(t, h.products[p.ID].CurrentStock.Equal(decimal.NewFromInt(65)))
	assert.Equal(t, "user-1", out.Movement.CreatedBy)
}

func TestListByProduct(t *testing.T) {
	uc, h := newLedger(t)
	p := seedProduct(h)
	other := seedProduct(h)
	ctx := context.Background()

	_, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: p.ID, Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	_, err = uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: other.ID, Type: entity.MovementTypeIn, Quantity: decimal.NewFromInt(99),
	})
	require.NoError(t, err)

	list, err := uc.ListByProduct(p.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, p.ID, list.Items[0].ProductID)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestAggregate_LecturaPura(t *testing.T) {
	uc, h := newLedger(t)
	p := seedProduct(h)
	ctx := context.Background()

	_, err := uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: p.ID, Type: entity.MovementTypeIn,
		Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	_, err = uc.PostMovement(ctx, "user-1", dto.PostMovementRequest{
		ProductID: p.ID, Type: entity.MovementTypeOut,
		Quantity: decimal.NewFromInt(4), UnitCost: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	first, err := uc.Aggregate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalCount)
	assert.Equal(t, 1, first.InboundCount)
	assert.Equal(t, 1, first.OutboundCount)
	assert.True(t, first.TotalValue.Equal(decimal.NewFromInt(28)), "10*2 + 4*2 = 28, fue %s", first.TotalValue)

	// Misma consulta, mismo resultado: el agregado no escribe nada.
	second, err := uc.Aggregate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Un rango que no cubre hoy deja el agregado en cero.
	past := time.Now().AddDate(0, 0, -10)
	until := time.Now().AddDate(0, 0, -5)
	empty, err := uc.Aggregate(&past, &until)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalCount)
	assert.True(t, empty.TotalValue.IsZero())
}
