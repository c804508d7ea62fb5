package rmas

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/orders"
)

const entityRMA = "rma"

// Actor identifies who performed an operation, for the audit trail.
type Actor struct {
	ID   int64
	Name string
	Role string
}

// Repos bundles the collaborators the engine works against. Inside a
// transaction the same struct is rebuilt on tx-scoped repositories.
type Repos struct {
	RMAs      Store
	Inventory inventory.Store
	Orders    orders.Store
	Audit     audit.Store
}

// Runner executes a unit of work atomically: every repository call made
// through the Repos it passes to fn commits or rolls back together.
type Runner interface {
	WithRMATx(ctx context.Context, fn func(r Repos) error) error
}

// Service is the RMA engine: lifecycle transitions, settlement computation
// and inventory reconciliation. All state-changing operations run inside a
// single transaction and emit audit events through it.
type Service struct {
	repos Repos
	run   Runner
	codes *RefCoder
}

func NewService(repos Repos, run Runner, codes *RefCoder) *Service {
	if codes == nil {
		panic("rmas: RefCoder is nil")
	}
	return &Service{repos: repos, run: run, codes: codes}
}

type CreateInput struct {
	Type             Type
	Status           Status // draft or approved; defaults to draft
	OrderID          int64
	Note             *string
	ReturnItems      []ReturnItem
	ReplacementItems []ReplacementItem
	PaymentMethod    *string
	PaymentRef       *string
}

// Create allocates the next sequential RMA number, validates every return
// line against the quantity still returnable on the order, derives the
// settlement and persists the record.
func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (*RMA, error) {
	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	if status != StatusDraft && status != StatusApproved {
		return nil, fmt.Errorf("rma cannot be created in status %q", status)
	}

	var out *RMA
	err := s.run.WithRMATx(ctx, func(r Repos) error {
		detail, err := r.Orders.GetDetail(ctx, in.OrderID)
		if err != nil {
			return err
		}

		existing, err := r.RMAs.ListByOrder(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if err := validateReturnQuantities(in.ReturnItems, detail.Items, existing, in.OrderID, nil); err != nil {
			return err
		}

		seq, err := r.RMAs.NextNumber(ctx)
		if err != nil {
			return err
		}
		refCode, err := s.codes.Encode(seq)
		if err != nil {
			return fmt.Errorf("rma ref code: %w", err)
		}

		money := ComputeMoney(in.ReturnItems, in.ReplacementItems)
		money.PaymentMethod = in.PaymentMethod
		money.PaymentRef = in.PaymentRef

		rma := &RMA{
			Number:           fmt.Sprintf("RMA-%06d", seq),
			RefCode:          refCode,
			Type:             in.Type,
			Status:           status,
			OrderID:          in.OrderID,
			OrderNumber:      detail.Order.OrderNumber,
			Note:             in.Note,
			ReturnItems:      in.ReturnItems,
			ReplacementItems: in.ReplacementItems,
			Money:            money,
		}
		if err := r.RMAs.Create(ctx, rma); err != nil {
			return err
		}

		if err := appendEvent(ctx, r.Audit, actor, audit.ActionRMACreated, rma.ID, map[string]any{
			"type":         rma.Type,
			"order_id":     rma.OrderID,
			"order_number": rma.OrderNumber,
		}, nil); err != nil {
			return err
		}

		out = rma
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type UpdateInput struct {
	Type             *Type
	Note             *string
	ReturnItems      *[]ReturnItem
	ReplacementItems *[]ReplacementItem
	PaymentMethod    *string
	PaymentRef       *string
}

// Update merges the patch into the RMA and recomputes money whenever either
// item set changed. Only non-terminal RMAs can be patched: a completed RMA's
// items must stay the exact quantities its inventory effects were applied
// with, or a later revert would undo amounts that never moved. Status is not
// touched here; callers use ChangeStatus, Complete or Cancel for transitions.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, in UpdateInput) (*RMA, error) {
	var out *RMA
	err := s.run.WithRMATx(ctx, func(r Repos) error {
		rma, err := r.RMAs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		switch rma.Status {
		case StatusCompleted:
			return ErrAlreadyCompleted
		case StatusCancelled:
			return ErrAlreadyCancelled
		}

		if in.Type != nil {
			rma.Type = *in.Type
		}
		if in.Note != nil {
			rma.Note = in.Note
		}

		itemsChanged := false
		if in.ReturnItems != nil {
			if err := s.validateReturnPatch(ctx, r, rma, *in.ReturnItems); err != nil {
				return err
			}
			rma.ReturnItems = *in.ReturnItems
			itemsChanged = true
		}
		if in.ReplacementItems != nil {
			rma.ReplacementItems = *in.ReplacementItems
			itemsChanged = true
		}
		if itemsChanged {
			method, ref := rma.Money.PaymentMethod, rma.Money.PaymentRef
			rma.Money = ComputeMoney(rma.ReturnItems, rma.ReplacementItems)
			rma.Money.PaymentMethod = method
			rma.Money.PaymentRef = ref
		}
		if in.PaymentMethod != nil {
			rma.Money.PaymentMethod = in.PaymentMethod
		}
		if in.PaymentRef != nil {
			rma.Money.PaymentRef = in.PaymentRef
		}

		rma.UpdatedAt = time.Now().UTC()
		if err := r.RMAs.Update(ctx, rma); err != nil {
			return err
		}

		if err := appendEvent(ctx, r.Audit, actor, audit.ActionRMAUpdated, rma.ID, nil, nil); err != nil {
			return err
		}

		out = rma
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) validateReturnPatch(ctx context.Context, r Repos, rma *RMA, items []ReturnItem) error {
	detail, err := r.Orders.GetDetail(ctx, rma.OrderID)
	if err != nil {
		return err
	}
	existing, err := r.RMAs.ListByOrder(ctx, rma.OrderID)
	if err != nil {
		return err
	}
	return validateReturnQuantities(items, detail.Items, existing, rma.OrderID, &rma.ID)
}

func validateReturnQuantities(items []ReturnItem, orderItems []orders.OrderItem, existing []*RMA, orderID int64, excludeID *int64) error {
	for _, ri := range items {
		var match *orders.OrderItem
		for i := range orderItems {
			if orderItems[i].SKU == ri.SKU {
				match = &orderItems[i]
				break
			}
		}
		if match == nil {
			return fmt.Errorf("order has no item with sku %q", ri.SKU)
		}
		if returnable := MaxReturnableQty(*match, existing, orderID, excludeID); ri.Qty > returnable {
			return &ReturnQtyError{SKU: ri.SKU, Requested: ri.Qty, Returnable: returnable}
		}
	}
	return nil
}

// ChangeStatus is the low-level transition primitive. It enforces the
// transition table but applies no inventory effects; Complete and Cancel
// layer those on top.
func (s *Service) ChangeStatus(ctx context.Context, actor Actor, id int64, to Status) (*RMA, error) {
	var out *RMA
	err := s.run.WithRMATx(ctx, func(r Repos) error {
		rma, err := r.RMAs.GetByID(ctx, id)
		if err != nil {
			return err
		}

		from := rma.Status
		if err := ValidateTransition(from, to); err != nil {
			return err
		}

		rma.Status = to
		rma.UpdatedAt = time.Now().UTC()
		if err := r.RMAs.Update(ctx, rma); err != nil {
			return err
		}

		if err := appendEvent(ctx, r.Audit, actor, audit.ActionRMAStatusChanged, rma.ID, map[string]any{
			"from": from,
			"to":   to,
		}, nil); err != nil {
			return err
		}

		out = rma
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Complete validates replacement stock for every line, then atomically
// restocks returned items, consumes replacement stock and marks the RMA
// completed. Validation is all-or-nothing: if any line lacks stock, no
// inventory is touched.
func (s *Service) Complete(ctx context.Context, actor Actor, id int64) (*RMA, error) {
	var out *RMA
	err := s.run.WithRMATx(ctx, func(r Repos) error {
		rma, err := r.RMAs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		switch rma.Status {
		case StatusCompleted:
			return ErrAlreadyCompleted
		case StatusCancelled:
			return ErrCompleteCancelled
		}

		for _, it := range rma.ReplacementItems {
			product, err := r.Inventory.GetByID(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("replacement %q: %w", it.Name, err)
			}
			available, err := product.AvailableStock(it.VariantID)
			if err != nil {
				return err
			}
			if available < it.Qty {
				return &InsufficientStockError{Name: it.Name, Available: available, Required: it.Qty}
			}
		}

		if err := s.applyInventory(ctx, r, actor, rma); err != nil {
			return err
		}

		now := time.Now().UTC()
		rma.Status = StatusCompleted
		rma.CompletedAt = &now
		rma.UpdatedAt = now
		if err := r.RMAs.Update(ctx, rma); err != nil {
			return err
		}

		if err := appendEvent(ctx, r.Audit, actor, audit.ActionRMACompleted, rma.ID, map[string]any{
			"number":     rma.Number,
			"settlement": rma.Money.Settlement,
		}, nil); err != nil {
			return err
		}

		out = rma
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel marks the RMA cancelled. When the RMA was already completed and the
// caller asks for it, the inventory effects of completion are reversed in
// the same transaction.
func (s *Service) Cancel(ctx context.Context, actor Actor, id int64, revertInventory bool) (*RMA, error) {
	var out *RMA
	err := s.run.WithRMATx(ctx, func(r Repos) error {
		rma, err := r.RMAs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rma.Status == StatusCancelled {
			return ErrAlreadyCancelled
		}

		reverted := false
		if rma.Status == StatusCompleted && revertInventory {
			if err := s.revertInventory(ctx, r, rma); err != nil {
				return err
			}
			if err := appendEvent(ctx, r.Audit, actor, audit.ActionRMAReverted, rma.ID, map[string]any{
				"number": rma.Number,
			}, nil); err != nil {
				return err
			}
			reverted = true
		}

		now := time.Now().UTC()
		rma.Status = StatusCancelled
		rma.CancelledAt = &now
		rma.CompletedAt = nil // at most one terminal timestamp
		rma.UpdatedAt = now
		if err := r.RMAs.Update(ctx, rma); err != nil {
			return err
		}

		if err := appendEvent(ctx, r.Audit, actor, audit.ActionRMACancelled, rma.ID, nil, map[string]any{
			"reverted_inventory": reverted,
		}); err != nil {
			return err
		}

		out = rma
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyInventory performs the APPLY reconciliation: restock what the
// customer sent back, consume what ships out in exchange. One audit event
// per touched line.
func (s *Service) applyInventory(ctx context.Context, r Repos, actor Actor, rma *RMA) error {
	for _, it := range rma.ReturnItems {
		if it.ProductID == nil {
			continue // unlinked snapshot, nothing to restock
		}
		if err := r.Inventory.AdjustStock(ctx, *it.ProductID, it.Qty, it.VariantID); err != nil {
			return fmt.Errorf("restock %q: %w", it.Name, err)
		}
		if err := appendEvent(ctx, r.Audit, actor, audit.ActionInventoryRestockedFromReturn, rma.ID, map[string]any{
			"product_id": *it.ProductID,
			"variant_id": it.VariantID,
			"qty":        it.Qty,
		}, nil); err != nil {
			return err
		}
	}
	for _, it := range rma.ReplacementItems {
		if err := r.Inventory.AdjustStock(ctx, it.ProductID, -it.Qty, it.VariantID); err != nil {
			return fmt.Errorf("consume %q: %w", it.Name, err)
		}
		if err := appendEvent(ctx, r.Audit, actor, audit.ActionInventoryDecrementedForExchange, rma.ID, map[string]any{
			"product_id": it.ProductID,
			"variant_id": it.VariantID,
			"qty":        it.Qty,
		}, nil); err != nil {
			return err
		}
	}
	return nil
}

// revertInventory performs the REVERT reconciliation, the exact inverse of
// applyInventory. APPLY followed by REVERT is a net no-op on stock levels.
// No per-line audit events here; the caller emits a single reversal event.
func (s *Service) revertInventory(ctx context.Context, r Repos, rma *RMA) error {
	for _, it := range rma.ReturnItems {
		if it.ProductID == nil {
			continue
		}
		if err := r.Inventory.AdjustStock(ctx, *it.ProductID, -it.Qty, it.VariantID); err != nil {
			return fmt.Errorf("undo restock %q: %w", it.Name, err)
		}
	}
	for _, it := range rma.ReplacementItems {
		if err := r.Inventory.AdjustStock(ctx, it.ProductID, it.Qty, it.VariantID); err != nil {
			return fmt.Errorf("undo consume %q: %w", it.Name, err)
		}
	}
	return nil
}

// GetByID, List and ListByOrder read through the non-transactional repos.
func (s *Service) GetByID(ctx context.Context, id int64) (*RMA, error) {
	return s.repos.RMAs.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status Status, limit, offset int) ([]*RMA, int, error) {
	return s.repos.RMAs.List(ctx, status, limit, offset)
}

// ReturnableQuantities reports, per order item SKU, how much can still be
// claimed by a new RMA against the order.
func (s *Service) ReturnableQuantities(ctx context.Context, orderID int64, excludeID *int64) (map[string]int, error) {
	detail, err := s.repos.Orders.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repos.RMAs.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(detail.Items))
	for _, item := range detail.Items {
		out[item.SKU] = MaxReturnableQty(item, existing, orderID, excludeID)
	}
	return out, nil
}

func appendEvent(ctx context.Context, store audit.Store, actor Actor, action string, rmaID int64, changes, metadata map[string]any) error {
	entity := entityRMA
	return store.Append(ctx, &audit.Event{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		ActorRole: actor.Role,
		Action:    action,
		Entity:    &entity,
		EntityID:  &rmaID,
		Changes:   changes,
		Metadata:  metadata,
	})
}
