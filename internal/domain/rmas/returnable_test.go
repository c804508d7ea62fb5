package rmas

import (
	"testing"

	"backoffice/internal/domain/orders"
)

func TestMaxReturnableQty(t *testing.T) {
	item := orders.OrderItem{OrderID: 10, SKU: "TSHIRT-M", Quantity: 5}

	rmaWith := func(id int64, status Status, qty int) *RMA {
		return &RMA{
			ID:      id,
			OrderID: 10,
			Status:  status,
			ReturnItems: []ReturnItem{
				{SKU: "TSHIRT-M", Qty: qty},
			},
		}
	}

	tests := []struct {
		name      string
		existing  []*RMA
		excludeID *int64
		want      int
	}{
		{
			name: "no prior rmas",
			want: 5,
		},
		{
			name:     "approved rma reserves quantity",
			existing: []*RMA{rmaWith(1, StatusApproved, 2)},
			want:     3,
		},
		{
			name:     "completed rma reserves quantity",
			existing: []*RMA{rmaWith(1, StatusCompleted, 4)},
			want:     1,
		},
		{
			name:     "draft does not reserve",
			existing: []*RMA{rmaWith(1, StatusDraft, 5)},
			want:     5,
		},
		{
			name:     "cancelled does not reserve",
			existing: []*RMA{rmaWith(1, StatusCancelled, 5)},
			want:     5,
		},
		{
			name: "reservations accumulate across rmas",
			existing: []*RMA{
				rmaWith(1, StatusApproved, 2),
				rmaWith(2, StatusCompleted, 2),
			},
			want: 1,
		},
		{
			name:      "edited rma is excluded from its own reservation",
			existing:  []*RMA{rmaWith(7, StatusApproved, 3)},
			excludeID: ptr(int64(7)),
			want:      5,
		},
		{
			name: "other orders never count",
			existing: []*RMA{
				{ID: 1, OrderID: 99, Status: StatusApproved, ReturnItems: []ReturnItem{{SKU: "TSHIRT-M", Qty: 5}}},
			},
			want: 5,
		},
		{
			name: "other skus never count",
			existing: []*RMA{
				{ID: 1, OrderID: 10, Status: StatusApproved, ReturnItems: []ReturnItem{{SKU: "TSHIRT-L", Qty: 5}}},
			},
			want: 5,
		},
		{
			name: "over-reservation clamps at zero",
			existing: []*RMA{
				rmaWith(1, StatusApproved, 4),
				rmaWith(2, StatusCompleted, 4),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxReturnableQty(item, tt.existing, 10, tt.excludeID)
			if got != tt.want {
				t.Errorf("MaxReturnableQty = %d, want %d", got, tt.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
