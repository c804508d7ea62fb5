package rmas

import "testing"

func TestComputeMoney(t *testing.T) {
	tests := []struct {
		name             string
		returnItems      []ReturnItem
		replacementItems []ReplacementItem
		wantReturn       int64
		wantReplacement  int64
		wantDifference   int64
		wantSettlement   Settlement
	}{
		{
			name: "exchange where customer owes the difference",
			returnItems: []ReturnItem{
				{SKU: "TSHIRT-M", Qty: 2, UnitPriceAtSaleCents: 5000},
			},
			replacementItems: []ReplacementItem{
				{SKU: "TSHIRT-L", Qty: 3, UnitPriceCents: 5000},
			},
			wantReturn:      10000,
			wantReplacement: 15000,
			wantDifference:  5000,
			wantSettlement:  SettlementChargeCustomer,
		},
		{
			name: "plain return refunds the customer",
			returnItems: []ReturnItem{
				{SKU: "MUG-BLUE", Qty: 1, UnitPriceAtSaleCents: 1299},
			},
			wantReturn:     1299,
			wantDifference: -1299,
			wantSettlement: SettlementRefundCustomer,
		},
		{
			name: "even swap settles at zero",
			returnItems: []ReturnItem{
				{SKU: "SHOE-42", Qty: 1, UnitPriceAtSaleCents: 8900},
			},
			replacementItems: []ReplacementItem{
				{SKU: "SHOE-43", Qty: 1, UnitPriceCents: 8900},
			},
			wantReturn:      8900,
			wantReplacement: 8900,
			wantSettlement:  SettlementEven,
		},
		{
			name:           "empty item sets are even",
			wantSettlement: SettlementEven,
		},
		{
			name: "price at sale wins over catalog price",
			returnItems: []ReturnItem{
				{SKU: "SALE-ITEM", Qty: 2, UnitPriceAtSaleCents: 700},
			},
			replacementItems: []ReplacementItem{
				{SKU: "SALE-ITEM", Qty: 2, UnitPriceCents: 1000},
			},
			wantReturn:      1400,
			wantReplacement: 2000,
			wantDifference:  600,
			wantSettlement:  SettlementChargeCustomer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMoney(tt.returnItems, tt.replacementItems)

			if m.SubtotalReturnCents != tt.wantReturn {
				t.Errorf("SubtotalReturnCents = %d, want %d", m.SubtotalReturnCents, tt.wantReturn)
			}
			if m.SubtotalReplacementCents != tt.wantReplacement {
				t.Errorf("SubtotalReplacementCents = %d, want %d", m.SubtotalReplacementCents, tt.wantReplacement)
			}
			if m.DifferenceCents != tt.wantDifference {
				t.Errorf("DifferenceCents = %d, want %d", m.DifferenceCents, tt.wantDifference)
			}
			if m.Settlement != tt.wantSettlement {
				t.Errorf("Settlement = %q, want %q", m.Settlement, tt.wantSettlement)
			}
		})
	}
}

func TestComputeMoneyBalance(t *testing.T) {
	returnItems := []ReturnItem{
		{SKU: "A", Qty: 3, UnitPriceAtSaleCents: 1250},
		{SKU: "B", Qty: 1, UnitPriceAtSaleCents: 9999},
	}
	replacementItems := []ReplacementItem{
		{SKU: "C", Qty: 2, UnitPriceCents: 4500},
	}

	m := ComputeMoney(returnItems, replacementItems)

	if got := m.SubtotalReplacementCents - m.SubtotalReturnCents; got != m.DifferenceCents {
		t.Fatalf("difference %d does not equal replacement - return = %d", m.DifferenceCents, got)
	}
}
