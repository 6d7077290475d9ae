package manufacturing_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	"github.com/manuflow/manuflow-api/internal/application/manufacturing"
	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	domstock "github.com/manuflow/manuflow-api/internal/domain/stock"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

// fixture arma un escenario típico: mesa de madera con dos materias primas,
// un centro activo y stock inicial asentado en el libro.
type fixture struct {
	h      *harness
	uc     *manufacturing.OrderUseCase
	woUC   *manufacturing.WorkOrderUseCase
	table  *entity.Product
	plank  *entity.Product
	leg    *entity.Product
	bom    *entity.BOM
	center *entity.WorkCenter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	h := newHarness()
	now := time.Now()

	table := &entity.Product{ID: uuid.New().String(), Name: "Wooden Table", CostPrice: decimal.NewFromInt(45)}
	plank := &entity.Product{ID: uuid.New().String(), Name: "Wood Plank", CostPrice: decimal.NewFromFloat(5.5), IsRawMaterial: true}
	leg := &entity.Product{ID: uuid.New().String(), Name: "Metal Leg", CostPrice: decimal.NewFromFloat(3.25), IsRawMaterial: true}
	for _, p := range []*entity.Product{table, plank, leg} {
		p.CreatedAt, p.UpdatedAt = now, now
		h.products[p.ID] = p
	}

	// Stock de apertura en el libro: 100 planchas, 200 patas.
	seedOpening(h, plank, 100)
	seedOpening(h, leg, 200)

	bom := &entity.BOM{
		ID:        uuid.New().String(),
		ProductID: table.ID,
		Name:      "Wooden Table BOM",
		Quantity:  decimal.NewFromInt(1),
		Components: []entity.BOMComponent{
			{ID: uuid.New().String(), ProductID: plank.ID, Quantity: decimal.NewFromInt(2), OperationTime: decimal.NewFromInt(30)},
			{ID: uuid.New().String(), ProductID: leg.ID, Quantity: decimal.NewFromInt(4), OperationTime: decimal.NewFromInt(15)},
		},
		CreatedAt: now,
	}
	h.boms[bom.ID] = bom

	center := &entity.WorkCenter{ID: uuid.New().String(), Name: "Assembly Line 1", Capacity: 1, IsActive: true, CreatedAt: now}
	h.centers[center.ID] = center

	return &fixture{
		h:      h,
		uc:     manufacturing.NewOrderUseCase(h, &fakeMORepo{h}, &fakeBOMRepo{h}, &fakeProductRepo{h}, &fakeWORepo{h}),
		woUC:   manufacturing.NewWorkOrderUseCase(h, &fakeWORepo{h}),
		table:  table,
		plank:  plank,
		leg:    leg,
		bom:    bom,
		center: center,
	}
}

func seedOpening(h *harness, p *entity.Product, qty int64) {
	quantity := decimal.NewFromInt(qty)
	h.movements = append(h.movements, &entity.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    p.ID,
		Reference:    "OPENING",
		MovementType: entity.MovementTypeIn,
		Direction:    domstock.DirectionIn,
		Quantity:     quantity,
		UnitCost:     p.CostPrice,
		TotalCost:    quantity.Mul(p.CostPrice),
		CreatedAt:    time.Now(),
	})
	p.CurrentStock = quantity
}

func (f *fixture) createOrder(t *testing.T, qty int64) *dto.OrderResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), dto.CreateOrderRequest{
		ProductID:         f.table.ID,
		BOMID:             f.bom.ID,
		QuantityToProduce: decimal.NewFromInt(qty),
		ScheduledDate:     time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return out
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	out := f.createOrder(t, 10)

	assert.Equal(t, entity.MOStatePlanned, out.State)
	assert.Equal(t, 1, out.Version)
	assert.Equal(t, 0, out.Progress)
	assert.True(t, strings.HasPrefix(out.Reference, "MO"), "referencia %q", out.Reference)
	assert.Len(t, out.Reference, 12, "MO + yymmdd + 4 dígitos")
}

func TestCreateOrder_BOMDeOtroProducto(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), dto.CreateOrderRequest{
		ProductID:         f.plank.ID, // la BOM produce la mesa, no la plancha
		BOMID:             f.bom.ID,
		QuantityToProduce: decimal.NewFromInt(1),
		ScheduledDate:     time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
}

func TestCreateOrder_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), dto.CreateOrderRequest{
		ProductID:         f.table.ID,
		BOMID:             f.bom.ID,
		QuantityToProduce: decimal.Zero,
		ScheduledDate:     time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestConfirmOrder(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 10)

	out, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	require.NoError(t, err)

	assert.Equal(t, entity.MOStateInProgress, out.Order.State)
	assert.Equal(t, 2, out.Order.Version)
	assert.NotNil(t, out.Order.StartedAt)

	// Una WO por componente de la BOM, todas pending en el centro activo.
	require.Len(t, out.WorkOrders, 2)
	for _, wo := range out.WorkOrders {
		assert.Equal(t, entity.WOStatePending, wo.State)
		assert.Equal(t, f.center.ID, wo.WorkCenterID)
	}

	// Consumos asentados: 2*10 planchas y 4*10 patas, y stock rematerializado.
	assert.True(t, f.h.products[f.plank.ID].CurrentStock.Equal(decimal.NewFromInt(80)),
		"plancha: 100 - 20, fue %s", f.h.products[f.plank.ID].CurrentStock)
	assert.True(t, f.h.products[f.leg.ID].CurrentStock.Equal(decimal.NewFromInt(160)),
		"pata: 200 - 40, fue %s", f.h.products[f.leg.ID].CurrentStock)

	var consumptions int
	for _, m := range f.h.movements {
		if m.MovementType == entity.MovementTypeConsumption {
			consumptions++
			assert.Equal(t, domstock.DirectionOut, m.Direction)
			assert.Equal(t, order.ID, m.ManufacturingOrderID)
		}
	}
	assert.Equal(t, 2, consumptions)
}

func TestConfirmOrder_VersionObsoleta(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 10)

	_, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 99})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Nada cambió.
	stored := f.h.orders[order.ID]
	assert.Equal(t, entity.MOStatePlanned, stored.State)
	assert.Equal(t, 1, stored.Version)
}

func TestConfirmOrder_SoloDesdePlanned(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 10)

	_, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	require.NoError(t, err)

	_, err = f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestConfirmOrder_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 60) // necesita 120 planchas, hay 100

	movementsBefore := len(f.h.movements)
	_, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Todo o nada: la orden sigue planned, sin WOs ni consumos parciales.
	assert.Equal(t, entity.MOStatePlanned, f.h.orders[order.ID].State)
	assert.Empty(t, f.h.workOrds)
	assert.Len(t, f.h.movements, movementsBefore)
}

func TestConfirmOrder_ComponenteNoEsMateriaPrima(t *testing.T) {
	f := newFixture(t)
	f.h.products[f.plank.ID].IsRawMaterial = false
	order := f.createOrder(t, 1)

	_, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
	assert.Equal(t, entity.MOStatePlanned, f.h.orders[order.ID].State)
}

func TestConfirmOrder_CentroInactivo(t *testing.T) {
	f := newFixture(t)
	f.h.centers[f.center.ID].IsActive = false
	order := f.createOrder(t, 1)

	_, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	assert.ErrorIs(t, err, domain.ErrWorkCenterInactive)
}

func TestCompleteOrder_CantidadPorDefecto(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 10)
	_, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	require.NoError(t, err)

	out, err := f.uc.Complete(context.Background(), order.ID, testUserID, dto.CompleteOrderRequest{Version: 2})
	require.NoError(t, err)

	assert.Equal(t, entity.MOStateDone, out.Order.State)
	assert.True(t, out.Order.QuantityProduced.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 100, out.Order.Progress)
	assert.NotNil(t, out.Order.CompletedAt)

	// Movimiento de producción del terminado y stock materializado.
	assert.Equal(t, entity.MovementTypeProduction, out.Movement.MovementType)
	assert.Equal(t, domstock.DirectionIn, out.Movement.Direction)
	assert.True(t, f.h.products[f.table.ID].CurrentStock.Equal(decimal.NewFromInt(10)))
}

func TestCompleteOrder_SobreproduccionPermitida(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 10)
	_, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	require.NoError(t, err)

	produced := decimal.NewFromInt(12)
	out, err := f.uc.Complete(context.Background(), order.ID, testUserID, dto.CompleteOrderRequest{Version: 2, QuantityProduced: &produced})
	require.NoError(t, err)

	assert.Equal(t, 120, out.Order.Progress, "el progreso no se recorta a 100")
	assert.True(t, f.h.products[f.table.ID].CurrentStock.Equal(produced))
}

func TestCompleteOrder_CantidadNegativa(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 10)
	_, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	require.NoError(t, err)

	produced := decimal.NewFromInt(-1)
	_, err = f.uc.Complete(context.Background(), order.ID, testUserID, dto.CompleteOrderRequest{Version: 2, QuantityProduced: &produced})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCancelOrder_CascadaAWOsNoTerminales(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 10)
	confirmed, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	require.NoError(t, err)

	// Completar una WO: queda terminal y no debe tocarla la cascada.
	first := confirmed.WorkOrders[0]
	_, err = f.woUC.Start(context.Background(), first.ID, dto.StartWorkOrderRequest{Version: 1})
	require.NoError(t, err)
	_, err = f.woUC.Complete(context.Background(), first.ID, dto.CompleteWorkOrderRequest{Version: 2})
	require.NoError(t, err)

	out, err := f.uc.Cancel(context.Background(), order.ID, dto.CancelOrderRequest{Version: 2})
	require.NoError(t, err)
	assert.Equal(t, entity.MOStateCancelled, out.State)

	assert.Equal(t, entity.WOStateCompleted, f.h.workOrds[first.ID].State,
		"una WO completada no se cancela en cascada")
	assert.Equal(t, entity.WOStateCancelled, f.h.workOrds[confirmed.WorkOrders[1].ID].State)
}

func TestCancelOrder_DoneNoSeCancela(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 10)
	_, err := f.uc.Confirm(context.Background(), order.ID, testUserID, dto.ConfirmOrderRequest{Version: 1})
	require.NoError(t, err)
	_, err = f.uc.Complete(context.Background(), order.ID, testUserID, dto.CompleteOrderRequest{Version: 2})
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), order.ID, dto.CancelOrderRequest{Version: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}
