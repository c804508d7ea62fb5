package rmas

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/orders"
)

// In-memory fakes. The fake runner passes the same repos straight through;
// validation in the engine happens before any mutation, which is exactly what
// the all-or-nothing tests rely on.

type memRMAStore struct {
	seq    int64
	nextID int64
	items  map[int64]*RMA
}

func newMemRMAStore() *memRMAStore {
	return &memRMAStore{items: map[int64]*RMA{}}
}

func (s *memRMAStore) Create(ctx context.Context, rma *RMA) error {
	s.nextID++
	rma.ID = s.nextID
	c := *rma
	s.items[rma.ID] = &c
	return nil
}

func (s *memRMAStore) GetByID(ctx context.Context, id int64) (*RMA, error) {
	rma, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *rma
	return &c, nil
}

func (s *memRMAStore) List(ctx context.Context, status Status, limit, offset int) ([]*RMA, int, error) {
	var out []*RMA
	for _, rma := range s.items {
		if status == "" || rma.Status == status {
			c := *rma
			out = append(out, &c)
		}
	}
	return out, len(out), nil
}

func (s *memRMAStore) ListByOrder(ctx context.Context, orderID int64) ([]*RMA, error) {
	var out []*RMA
	for _, rma := range s.items {
		if rma.OrderID == orderID {
			c := *rma
			out = append(out, &c)
		}
	}
	return out, nil
}

func (s *memRMAStore) Update(ctx context.Context, rma *RMA) error {
	if _, ok := s.items[rma.ID]; !ok {
		return ErrNotFound
	}
	c := *rma
	s.items[rma.ID] = &c
	return nil
}

func (s *memRMAStore) NextNumber(ctx context.Context) (int64, error) {
	s.seq++
	return s.seq, nil
}

type memInventoryStore struct {
	products map[int64]*inventory.Product
}

func (s *memInventoryStore) GetByID(ctx context.Context, id int64) (*inventory.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, inventory.ErrNotFound
	}
	return p, nil
}

func (s *memInventoryStore) List(ctx context.Context, limit, offset int) ([]*inventory.Product, int, error) {
	var out []*inventory.Product
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (s *memInventoryStore) AdjustStock(ctx context.Context, productID int64, delta int, variantID *int64) error {
	p, ok := s.products[productID]
	if !ok {
		return inventory.ErrNotFound
	}
	if variantID != nil {
		for _, v := range p.Variants {
			if v.ID == *variantID {
				if v.StockQty+delta < 0 {
					return inventory.ErrStockBelowZero
				}
				v.StockQty += delta
				return nil
			}
		}
		return inventory.ErrVariantNotFound
	}
	if p.StockQty+delta < 0 {
		return inventory.ErrStockBelowZero
	}
	p.StockQty += delta
	return nil
}

func (s *memInventoryStore) AttachImage(ctx context.Context, productID int64, url string) error {
	p, ok := s.products[productID]
	if !ok {
		return inventory.ErrNotFound
	}
	p.ImageURL = &url
	return nil
}

type memOrderStore struct {
	details map[int64]*orders.OrderDetail
}

func (s *memOrderStore) GetByID(ctx context.Context, id int64) (*orders.Order, error) {
	d, ok := s.details[id]
	if !ok {
		return nil, orders.ErrNotFound
	}
	o := d.Order
	return &o, nil
}

func (s *memOrderStore) GetDetail(ctx context.Context, orderID int64) (*orders.OrderDetail, error) {
	d, ok := s.details[orderID]
	if !ok {
		return nil, orders.ErrNotFound
	}
	return d, nil
}

func (s *memOrderStore) ListAll(ctx context.Context, status string, limit, offset int) ([]orders.Order, int, error) {
	var out []orders.Order
	for _, d := range s.details {
		out = append(out, d.Order)
	}
	return out, len(out), nil
}

type memAuditStore struct {
	events []*audit.Event
}

func (s *memAuditStore) Append(ctx context.Context, event *audit.Event) error {
	s.events = append(s.events, event)
	return nil
}

func (s *memAuditStore) List(ctx context.Context, limit, offset int) ([]*audit.Event, int, error) {
	return s.events, len(s.events), nil
}

func (s *memAuditStore) actions() []string {
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Action
	}
	return out
}

type passthroughRunner struct {
	repos Repos
}

func (r *passthroughRunner) WithRMATx(ctx context.Context, fn func(Repos) error) error {
	return fn(r.repos)
}

type fixture struct {
	svc       *Service
	rmas      *memRMAStore
	inventory *memInventoryStore
	orders    *memOrderStore
	audit     *memAuditStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	variantID := int64(301)
	f := &fixture{
		rmas: newMemRMAStore(),
		inventory: &memInventoryStore{products: map[int64]*inventory.Product{
			100: {ID: 100, Name: "Basic Tee", SKU: "TSHIRT", StockQty: 10, HasVariants: true, IsActive: true,
				Variants: []*inventory.Variant{
					{ID: 301, ProductID: 100, SKU: "TSHIRT-M", StockQty: 4},
					{ID: 302, ProductID: 100, SKU: "TSHIRT-L", StockQty: 2},
				}},
			200: {ID: 200, Name: "Blue Mug", SKU: "MUG-BLUE", StockQty: 6, IsActive: true},
		}},
		orders: &memOrderStore{details: map[int64]*orders.OrderDetail{
			10: {
				Order: orders.Order{ID: 10, OrderNumber: "ORD-000010", Status: "paid"},
				Items: []orders.OrderItem{
					{ID: 1, OrderID: 10, ProductID: ptr(int64(100)), VariantID: &variantID, SKU: "TSHIRT-M", ProductName: "Basic Tee", Quantity: 3, UnitPriceCents: 5000},
					{ID: 2, OrderID: 10, ProductID: ptr(int64(200)), SKU: "MUG-BLUE", ProductName: "Blue Mug", Quantity: 2, UnitPriceCents: 1299},
				},
			},
		}},
		audit: &memAuditStore{},
	}

	repos := Repos{RMAs: f.rmas, Inventory: f.inventory, Orders: f.orders, Audit: f.audit}
	codes, err := NewRefCoder("test-salt")
	if err != nil {
		t.Fatalf("new ref coder: %v", err)
	}
	f.svc = NewService(repos, &passthroughRunner{repos: repos}, codes)
	return f
}

var testActor = Actor{ID: 1, Name: "Test Admin", Role: "Super Admin"}

func (f *fixture) variantStock(t *testing.T, productID, variantID int64) int {
	t.Helper()
	p := f.inventory.products[productID]
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v.StockQty
		}
	}
	t.Fatalf("variant %d not found on product %d", variantID, productID)
	return 0
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := CreateInput{
		Type:    TypeReturn,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 1, UnitPriceAtSaleCents: 1299},
		},
	}

	first, err := f.svc.Create(ctx, testActor, in)
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := f.svc.Create(ctx, testActor, in)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if first.Number != "RMA-000001" {
		t.Errorf("first number = %q, want RMA-000001", first.Number)
	}
	if second.Number != "RMA-000002" {
		t.Errorf("second number = %q, want RMA-000002", second.Number)
	}
	if first.RefCode == "" || first.RefCode == second.RefCode {
		t.Errorf("ref codes must be non-empty and distinct, got %q and %q", first.RefCode, second.RefCode)
	}
	if first.Status != StatusDraft {
		t.Errorf("default status = %q, want draft", first.Status)
	}
	if first.Money.Settlement != SettlementRefundCustomer {
		t.Errorf("settlement = %q, want refund_customer", first.Money.Settlement)
	}
}

func TestCreateRejectsOverReturn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The order only has 2 mugs.
	_, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 3, UnitPriceAtSaleCents: 1299},
		},
	})

	var qtyErr *ReturnQtyError
	if !errors.As(err, &qtyErr) {
		t.Fatalf("expected ReturnQtyError, got %v", err)
	}
	if qtyErr.SKU != "MUG-BLUE" || qtyErr.Requested != 3 || qtyErr.Returnable != 2 {
		t.Errorf("unexpected error detail: %+v", qtyErr)
	}
}

func TestCreateCountsApprovedReservations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		Status:  StatusApproved,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 2, UnitPriceAtSaleCents: 1299},
		},
	})
	if err != nil {
		t.Fatalf("create approved: %v", err)
	}
	if first.Status != StatusApproved {
		t.Fatalf("status = %q, want approved", first.Status)
	}

	_, err = f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 1, UnitPriceAtSaleCents: 1299},
		},
	})
	var qtyErr *ReturnQtyError
	if !errors.As(err, &qtyErr) {
		t.Fatalf("expected ReturnQtyError once the order is fully reserved, got %v", err)
	}
}

func TestCompleteAppliesInventoryBothWays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	variantM, variantL := int64(301), int64(302)

	rma, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeExchange,
		Status:  StatusApproved,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(100)), VariantID: &variantM, SKU: "TSHIRT-M", Name: "Basic Tee M", Qty: 1, UnitPriceAtSaleCents: 5000},
		},
		ReplacementItems: []ReplacementItem{
			{ProductID: 100, VariantID: &variantL, SKU: "TSHIRT-L", Name: "Basic Tee L", Qty: 1, UnitPriceCents: 5000},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed, err := f.svc.Complete(ctx, testActor, rma.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if completed.Status != StatusCompleted {
		t.Errorf("status = %q, want completed", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Error("CompletedAt not stamped")
	}
	if got := f.variantStock(t, 100, variantM); got != 5 {
		t.Errorf("returned variant stock = %d, want 5", got)
	}
	if got := f.variantStock(t, 100, variantL); got != 1 {
		t.Errorf("replacement variant stock = %d, want 1", got)
	}

	wantActions := map[string]bool{
		audit.ActionInventoryRestockedFromReturn:    false,
		audit.ActionInventoryDecrementedForExchange: false,
		audit.ActionRMACompleted:                    false,
	}
	for _, a := range f.audit.actions() {
		if _, ok := wantActions[a]; ok {
			wantActions[a] = true
		}
	}
	for action, seen := range wantActions {
		if !seen {
			t.Errorf("missing audit action %s", action)
		}
	}
}

func TestCompleteIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	variantM, variantL := int64(301), int64(302)

	rma, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeExchange,
		Status:  StatusApproved,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(100)), VariantID: &variantM, SKU: "TSHIRT-M", Name: "Basic Tee M", Qty: 2, UnitPriceAtSaleCents: 5000},
		},
		ReplacementItems: []ReplacementItem{
			// Only 2 in stock for variant L.
			{ProductID: 100, VariantID: &variantL, SKU: "TSHIRT-L", Name: "Basic Tee L", Qty: 3, UnitPriceCents: 5000},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.svc.Complete(ctx, testActor, rma.ID)

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Name != "Basic Tee L" || stockErr.Available != 2 || stockErr.Required != 3 {
		t.Errorf("unexpected error detail: %+v", stockErr)
	}

	// No inventory mutated, not even the valid return line.
	if got := f.variantStock(t, 100, variantM); got != 4 {
		t.Errorf("return line restocked despite failure: stock = %d, want 4", got)
	}
	if got := f.variantStock(t, 100, variantL); got != 2 {
		t.Errorf("replacement consumed despite failure: stock = %d, want 2", got)
	}

	got, err := f.svc.GetByID(ctx, rma.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusApproved {
		t.Errorf("status = %q, want approved (unchanged)", got.Status)
	}
}

func TestCompleteGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rma, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		Status:  StatusApproved,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 1, UnitPriceAtSaleCents: 1299},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.Complete(ctx, testActor, rma.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := f.svc.Complete(ctx, testActor, rma.ID); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("second complete: got %v, want ErrAlreadyCompleted", err)
	}

	if _, err := f.svc.Cancel(ctx, testActor, rma.ID, false); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.svc.Complete(ctx, testActor, rma.ID); !errors.Is(err, ErrCompleteCancelled) {
		t.Errorf("complete after cancel: got %v, want ErrCompleteCancelled", err)
	}
	if _, err := f.svc.Cancel(ctx, testActor, rma.ID, false); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("second cancel: got %v, want ErrAlreadyCancelled", err)
	}
}

func TestCancelWithRevertRoundTripsInventory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	variantM, variantL := int64(301), int64(302)

	before := map[string]int{
		"M": f.variantStock(t, 100, variantM),
		"L": f.variantStock(t, 100, variantL),
	}

	rma, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeExchange,
		Status:  StatusApproved,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(100)), VariantID: &variantM, SKU: "TSHIRT-M", Name: "Basic Tee M", Qty: 1, UnitPriceAtSaleCents: 5000},
		},
		ReplacementItems: []ReplacementItem{
			{ProductID: 100, VariantID: &variantL, SKU: "TSHIRT-L", Name: "Basic Tee L", Qty: 1, UnitPriceCents: 5000},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Complete(ctx, testActor, rma.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	cancelled, err := f.svc.Cancel(ctx, testActor, rma.ID, true)
	if err != nil {
		t.Fatalf("cancel with revert: %v", err)
	}

	if got := f.variantStock(t, 100, variantM); got != before["M"] {
		t.Errorf("variant M stock = %d, want %d after round trip", got, before["M"])
	}
	if got := f.variantStock(t, 100, variantL); got != before["L"] {
		t.Errorf("variant L stock = %d, want %d after round trip", got, before["L"])
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Error("CancelledAt not stamped")
	}
	if cancelled.CompletedAt != nil {
		t.Error("CompletedAt must be cleared on cancellation")
	}

	sawReverted := false
	for _, a := range f.audit.actions() {
		if a == audit.ActionRMAReverted {
			sawReverted = true
		}
	}
	if !sawReverted {
		t.Error("reverting inventory must emit an RMA_REVERTED event")
	}
}

func TestCancelWithoutRevertLeavesInventory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rma, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		Status:  StatusApproved,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 1, UnitPriceAtSaleCents: 1299},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Complete(ctx, testActor, rma.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := f.inventory.products[200].StockQty; got != 7 {
		t.Fatalf("stock after complete = %d, want 7", got)
	}

	if _, err := f.svc.Cancel(ctx, testActor, rma.ID, false); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := f.inventory.products[200].StockQty; got != 7 {
		t.Errorf("stock after cancel without revert = %d, want 7", got)
	}

	for _, a := range f.audit.actions() {
		if a == audit.ActionRMAReverted {
			t.Error("cancel without revert must not emit an RMA_REVERTED event")
		}
	}
}

func TestUpdateRecomputesMoney(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	method := "card"
	rma, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 1, UnitPriceAtSaleCents: 1299},
		},
		PaymentMethod: &method,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newItems := []ReturnItem{
		{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 2, UnitPriceAtSaleCents: 1299},
	}
	updated, err := f.svc.Update(ctx, testActor, rma.ID, UpdateInput{ReturnItems: &newItems})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Money.SubtotalReturnCents != 2598 {
		t.Errorf("SubtotalReturnCents = %d, want 2598", updated.Money.SubtotalReturnCents)
	}
	if updated.Money.DifferenceCents != -2598 {
		t.Errorf("DifferenceCents = %d, want -2598", updated.Money.DifferenceCents)
	}
	if updated.Money.PaymentMethod == nil || *updated.Money.PaymentMethod != "card" {
		t.Error("payment method must survive money recomputation")
	}
}

func TestUpdateRejectsTerminalStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rma, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		Status:  StatusApproved,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 1, UnitPriceAtSaleCents: 1299},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Complete(ctx, testActor, rma.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := f.inventory.products[200].StockQty; got != 7 {
		t.Fatalf("stock after complete = %d, want 7", got)
	}

	// Patching the completed RMA's quantities must be rejected, otherwise a
	// later revert would undo amounts that were never applied.
	patched := []ReturnItem{
		{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 2, UnitPriceAtSaleCents: 1299},
	}
	if _, err := f.svc.Update(ctx, testActor, rma.ID, UpdateInput{ReturnItems: &patched}); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("update on completed rma: got %v, want ErrAlreadyCompleted", err)
	}

	if _, err := f.svc.Cancel(ctx, testActor, rma.ID, true); err != nil {
		t.Fatalf("cancel with revert: %v", err)
	}
	if got := f.inventory.products[200].StockQty; got != 6 {
		t.Errorf("stock after revert = %d, want 6 (revert must use applied quantities)", got)
	}

	note := "too late"
	if _, err := f.svc.Update(ctx, testActor, rma.ID, UpdateInput{Note: &note}); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("update on cancelled rma: got %v, want ErrAlreadyCancelled", err)
	}
}

func TestUpdateValidatesAgainstOtherRMAsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rma, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		Status:  StatusApproved,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 2, UnitPriceAtSaleCents: 1299},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same quantity as already reserved by this very RMA. Without excluding
	// itself the patch would read as 2 requested against 0 returnable.
	sameItems := []ReturnItem{
		{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 2, UnitPriceAtSaleCents: 1299},
	}
	if _, err := f.svc.Update(ctx, testActor, rma.ID, UpdateInput{ReturnItems: &sameItems}); err != nil {
		t.Fatalf("editing an rma must not collide with its own reservation: %v", err)
	}

	tooMany := []ReturnItem{
		{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 3, UnitPriceAtSaleCents: 1299},
	}
	var qtyErr *ReturnQtyError
	if _, err := f.svc.Update(ctx, testActor, rma.ID, UpdateInput{ReturnItems: &tooMany}); !errors.As(err, &qtyErr) {
		t.Fatalf("expected ReturnQtyError, got %v", err)
	}
}

func TestChangeStatusEnforcesTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rma, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(200)), SKU: "MUG-BLUE", Name: "Blue Mug", Qty: 1, UnitPriceAtSaleCents: 1299},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	approved, err := f.svc.ChangeStatus(ctx, testActor, rma.ID, StatusApproved)
	if err != nil {
		t.Fatalf("draft -> approved: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("status = %q, want approved", approved.Status)
	}

	if _, err := f.svc.ChangeStatus(ctx, testActor, rma.ID, StatusDraft); err == nil {
		t.Fatal("approved -> draft must be rejected")
	}
}

func TestReturnableQuantities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, testActor, CreateInput{
		Type:    TypeReturn,
		Status:  StatusApproved,
		OrderID: 10,
		ReturnItems: []ReturnItem{
			{ProductID: ptr(int64(100)), VariantID: ptr(int64(301)), SKU: "TSHIRT-M", Name: "Basic Tee M", Qty: 2, UnitPriceAtSaleCents: 5000},
		},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.svc.ReturnableQuantities(ctx, 10, nil)
	if err != nil {
		t.Fatalf("returnable quantities: %v", err)
	}

	want := map[string]int{"TSHIRT-M": 1, "MUG-BLUE": 2}
	for sku, qty := range want {
		if got[sku] != qty {
			t.Errorf("returnable[%s] = %d, want %d", sku, got[sku], qty)
		}
	}

	if _, err := f.svc.ReturnableQuantities(ctx, 404, nil); !errors.Is(err, orders.ErrNotFound) {
		t.Errorf("unknown order: got %v, want orders.ErrNotFound", err)
	}
}

func TestCreateRejectsInvalidInitialStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, status := range []Status{StatusCompleted, StatusCancelled, Status("bogus")} {
		_, err := f.svc.Create(ctx, testActor, CreateInput{
			Type:    TypeReturn,
			Status:  status,
			OrderID: 10,
			ReturnItems: []ReturnItem{
				{SKU: "MUG-BLUE", Qty: 1, UnitPriceAtSaleCents: 1299},
			},
		})
		if err == nil {
			t.Errorf("status %q must be rejected at creation", status)
		}
	}
}

func TestRefCodeDeterministic(t *testing.T) {
	a, err := NewRefCoder("salt-a")
	if err != nil {
		t.Fatalf("new ref coder: %v", err)
	}

	first, err := a.Encode(1)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, err := a.Encode(1)
	if err != nil {
		t.Fatalf("encode again: %v", err)
	}
	if first != again {
		t.Errorf("same sequence must encode identically: %q vs %q", first, again)
	}
	if len(first) < 8 {
		t.Errorf("ref code %q shorter than minimum length", first)
	}

	other, err := a.Encode(2)
	if err != nil {
		t.Fatalf("encode other: %v", err)
	}
	if other == first {
		t.Error("distinct sequences must encode distinctly")
	}

	for _, r := range first {
		if r == '0' || r == 'O' || r == '1' || r == 'I' {
			t.Errorf("ref code %q contains ambiguous character %q", first, r)
		}
	}
}
