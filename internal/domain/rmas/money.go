package rmas

// ComputeMoney derives the settlement from the two item sets. It is pure and
// must be re-invoked whenever either set changes; Money is never edited
// independently of its inputs.
//
// difference = subtotalReplacement - subtotalReturn; a positive difference
// means the customer owes the shop, a negative one means the shop refunds.
func ComputeMoney(returnItems []ReturnItem, replacementItems []ReplacementItem) Money {
	var m Money
	for _, it := range returnItems {
		m.SubtotalReturnCents += int64(it.Qty) * it.UnitPriceAtSaleCents
	}
	for _, it := range replacementItems {
		m.SubtotalReplacementCents += int64(it.Qty) * it.UnitPriceCents
	}
	m.DifferenceCents = m.SubtotalReplacementCents - m.SubtotalReturnCents

	switch {
	case m.DifferenceCents > 0:
		m.Settlement = SettlementChargeCustomer
	case m.DifferenceCents < 0:
		m.Settlement = SettlementRefundCustomer
	default:
		m.Settlement = SettlementEven
	}
	return m
}
