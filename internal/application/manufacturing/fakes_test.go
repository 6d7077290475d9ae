package manufacturing_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/repository"
	"github.com/manuflow/manuflow-api/internal/domain/stock"
)

// harness agrupa repos en memoria y actúa de TxRunner. Para emular el
// todo-o-nada de una transacción real, toma un snapshot antes del callback y
// lo restaura si fn devuelve error.
type harness struct {
	products  map[string]*entity.Product
	boms      map[string]*entity.BOM
	orders    map[string]*entity.ManufacturingOrder
	workOrds  map[string]*entity.WorkOrder
	centers   map[string]*entity.WorkCenter
	movements []*entity.StockMovement
}

func newHarness() *harness {
	return &harness{
		products: map[string]*entity.Product{},
		boms:     map[string]*entity.BOM{},
		orders:   map[string]*entity.ManufacturingOrder{},
		workOrds: map[string]*entity.WorkOrder{},
		centers:  map[string]*entity.WorkCenter{},
	}
}

func (h *harness) snapshot() *harness {
	c := newHarness()
	for k, v := range h.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range h.boms {
		b := *v
		b.Components = append([]entity.BOMComponent(nil), v.Components...)
		c.boms[k] = &b
	}
	for k, v := range h.orders {
		mo := *v
		c.orders[k] = &mo
	}
	for k, v := range h.workOrds {
		wo := *v
		c.workOrds[k] = &wo
	}
	for k, v := range h.centers {
		wc := *v
		c.centers[k] = &wc
	}
	for _, m := range h.movements {
		mv := *m
		c.movements = append(c.movements, &mv)
	}
	return c
}

func (h *harness) restore(s *harness) {
	h.products = s.products
	h.boms = s.boms
	h.orders = s.orders
	h.workOrds = s.workOrds
	h.centers = s.centers
	h.movements = s.movements
}

func (h *harness) RunManufacturing(_ context.Context, fn func(
	moRepo repository.ManufacturingOrderRepository,
	woRepo repository.WorkOrderRepository,
	bomRepo repository.BOMRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	wcRepo repository.WorkCenterRepository,
) error) error {
	snap := h.snapshot()
	err := fn(
		&fakeMORepo{h}, &fakeWORepo{h}, &fakeBOMRepo{h},
		&fakeMovRepo{h}, &fakeProductRepo{h}, &fakeWCRepo{h},
	)
	if err != nil {
		h.restore(snap)
	}
	return err
}

// ── products ────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ h *harness }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.h.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.h.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.h.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.h.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(id string, s decimal.Decimal) error {
	p, ok := r.h.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = s
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.h.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *fakeProductRepo) ListBelowMinStock() ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.h.products {
		if p.MinStock.GreaterThan(decimal.Zero) && p.CurrentStock.LessThanOrEqual(p.MinStock) {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	if _, ok := r.h.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.h.products, id)
	return nil
}

// ── movimientos ─────────────────────────────────────────────────────────────

type fakeMovRepo struct{ h *harness }

func (r *fakeMovRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.h.movements = append(r.h.movements, &cp)
	return nil
}

func (r *fakeMovRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.h.movements {
		if m.ProductID == productID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeMovRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.h.movements {
		cp := *m
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeMovRepo) SumByProduct(productID string) (decimal.Decimal, decimal.Decimal, error) {
	inbound, outbound := decimal.Zero, decimal.Zero
	for _, m := range r.h.movements {
		if m.ProductID != productID {
			continue
		}
		if m.Direction == stock.DirectionIn {
			inbound = inbound.Add(m.Quantity)
		} else {
			outbound = outbound.Add(m.Quantity)
		}
	}
	return inbound, outbound, nil
}

func (r *fakeMovRepo) Aggregate(from, to *time.Time) (*repository.MovementAggregate, error) {
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
		if m.Direction == stock.DirectionIn {
			agg.InboundCount++
		} else {
			agg.OutboundCount++
		}
		agg.TotalValue = agg.TotalValue.Add(m.Quantity.Mul(m.UnitCost))
	}
	return agg, nil
}

// ── BOMs ────────────────────────────────────────────────────────────────────

type fakeBOMRepo struct{ h *harness }

func (r *fakeBOMRepo) Create(b *entity.BOM) error {
	cp := *b
	cp.Components = append([]entity.BOMComponent(nil), b.Components...)
	r.h.boms[b.ID] = &cp
	return nil
}

func (r *fakeBOMRepo) GetByID(id string) (*entity.BOM, error) {
	b, ok := r.h.boms[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	cp.Components = append([]entity.BOMComponent(nil), b.Components...)
	return &cp, nil
}

func (r *fakeBOMRepo) List(limit, offset int) ([]*entity.BOM, error) {
	var list []*entity.BOM
	for _, b := range r.h.boms {
		cp := *b
		list = append(list, &cp)
	}
	return list, nil
}

// ── órdenes de fabricación ──────────────────────────────────────────────────

type fakeMORepo struct{ h *harness }

func (r *fakeMORepo) Create(mo *entity.ManufacturingOrder) error {
	for _, existing := range r.h.orders {
		if existing.Reference == mo.Reference {
			return domain.ErrDuplicate
		}
	}
	cp := *mo
	r.h.orders[mo.ID] = &cp
	return nil
}

func (r *fakeMORepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	mo, ok := r.h.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *mo
	return &cp, nil
}

func (r *fakeMORepo) GetForUpdate(id string) (*entity.ManufacturingOrder, error) {
	return r.GetByID(id)
}

func (r *fakeMORepo) Update(mo *entity.ManufacturingOrder) error {
	stored, ok := r.h.orders[mo.ID]
	if !ok || stored.Version != mo.Version-1 {
		return domain.ErrConflict
	}
	cp := *mo
	r.h.orders[mo.ID] = &cp
	return nil
}

func (r *fakeMORepo) List(state string, limit, offset int) ([]*entity.ManufacturingOrder, error) {
	var list []*entity.ManufacturingOrder
	for _, mo := range r.h.orders {
		if state != "" && mo.State != state {
			continue
		}
		cp := *mo
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *fakeMORepo) ListByCreatedRange(from, to *time.Time) ([]*entity.ManufacturingOrder, error) {
	return r.List("", 0, 0)
}

// ── órdenes de trabajo ──────────────────────────────────────────────────────

type fakeWORepo struct{ h *harness }

func (r *fakeWORepo) CreateBatch(orders []*entity.WorkOrder) error {
	for _, wo := range orders {
		cp := *wo
		r.h.workOrds[wo.ID] = &cp
	}
	return nil
}

func (r *fakeWORepo) GetByID(id string) (*entity.WorkOrder, error) {
	wo, ok := r.h.workOrds[id]
	if !ok {
		return nil, nil
	}
	cp := *wo
	return &cp, nil
}

func (r *fakeWORepo) GetForUpdate(id string) (*entity.WorkOrder, error) {
	return r.GetByID(id)
}

func (r *fakeWORepo) Update(wo *entity.WorkOrder) error {
	stored, ok := r.h.workOrds[wo.ID]
	if !ok || stored.Version != wo.Version-1 {
		return domain.ErrConflict
	}
	cp := *wo
	r.h.workOrds[wo.ID] = &cp
	return nil
}

func (r *fakeWORepo) ListByManufacturingOrder(moID string) ([]*entity.WorkOrder, error) {
	return r.listWhere(moID, false)
}

func (r *fakeWORepo) ListNonTerminalByManufacturingOrder(moID string) ([]*entity.WorkOrder, error) {
	return r.listWhere(moID, true)
}

func (r *fakeWORepo) listWhere(moID string, onlyNonTerminal bool) ([]*entity.WorkOrder, error) {
	var list []*entity.WorkOrder
	for _, wo := range r.h.workOrds {
		if wo.ManufacturingOrderID != moID {
			continue
		}
		if onlyNonTerminal && wo.IsTerminal() {
			continue
		}
		cp := *wo
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return strings.Compare(list[i].ID, list[j].ID) < 0 })
	return list, nil
}

// ── centros de trabajo ──────────────────────────────────────────────────────

type fakeWCRepo struct{ h *harness }

func (r *fakeWCRepo) Create(wc *entity.WorkCenter) error {
	cp := *wc
	r.h.centers[wc.ID] = &cp
	return nil
}

func (r *fakeWCRepo) GetByID(id string) (*entity.WorkCenter, error) {
	wc, ok := r.h.centers[id]
	if !ok {
		return nil, nil
	}
	cp := *wc
	return &cp, nil
}

func (r *fakeWCRepo) FirstActive() (*entity.WorkCenter, error) {
	var first *entity.WorkCenter
	for _, wc := range r.h.centers {
		if !wc.IsActive {
			continue
		}
		if first == nil || wc.CreatedAt.Before(first.CreatedAt) {
			first = wc
		}
	}
	if first == nil {
		return nil, nil
	}
	cp := *first
	return &cp, nil
}

func (r *fakeWCRepo) List(limit, offset int) ([]*entity.WorkCenter, error) {
	var list []*entity.WorkCenter
	for _, wc := range r.h.centers {
		cp := *wc
		list = append(list, &cp)
	}
	return list, nil
}
