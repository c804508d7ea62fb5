package rmas

import "backoffice/internal/domain/orders"

// MaxReturnableQty computes how much of an order item can still be claimed by
// a new return, given every RMA already raised against the order. Only
// approved and completed RMAs reserve quantity; drafts and cancelled RMAs do
// not. excludeID skips the RMA currently being edited so its own lines don't
// count against it. The result is clamped at zero.
func MaxReturnableQty(item orders.OrderItem, all []*RMA, orderID int64, excludeID *int64) int {
	returned := 0
	for _, rma := range all {
		if rma.OrderID != orderID {
			continue
		}
		if excludeID != nil && rma.ID == *excludeID {
			continue
		}
		if rma.Status != StatusApproved && rma.Status != StatusCompleted {
			continue
		}
		for _, ri := range rma.ReturnItems {
			if ri.SKU == item.SKU {
				returned += ri.Qty
			}
		}
	}

	remaining := item.Quantity - returned
	if remaining < 0 {
		return 0
	}
	return remaining
}
