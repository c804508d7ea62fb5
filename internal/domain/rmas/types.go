package rmas

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound          = errors.New("rma not found")
	ErrAlreadyCompleted  = errors.New("rma is already completed")
	ErrAlreadyCancelled  = errors.New("rma is already cancelled")
	ErrCompleteCancelled = errors.New("cannot complete a cancelled rma")
)

// InsufficientStockError names the replacement line that blocked completion.
type InsufficientStockError struct {
	Name      string
	Available int
	Required  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, required %d",
		e.Name, e.Available, e.Required)
}

// ReturnQtyError reports a return line claiming more than is still returnable
// for the referenced order item.
type ReturnQtyError struct {
	SKU        string
	Requested  int
	Returnable int
}

func (e *ReturnQtyError) Error() string {
	return fmt.Sprintf("return quantity for %q exceeds returnable: requested %d, returnable %d",
		e.SKU, e.Requested, e.Returnable)
}

type Type string

const (
	TypeReturn   Type = "return"
	TypeExchange Type = "exchange"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ReturnItem is an immutable snapshot of an order line being returned.
// UnitPriceAtSaleCents is the price at the time of the original sale, never
// the current catalog price.
type ReturnItem struct {
	ProductID            *int64         `json:"product_id,omitempty"`
	VariantID            *int64         `json:"variant_id,omitempty"`
	SKU                  string         `json:"sku"`
	Name                 string         `json:"name"`
	Options              map[string]any `json:"options,omitempty"`
	Qty                  int            `json:"qty"`
	UnitPriceAtSaleCents int64          `json:"unit_price_at_sale_cents"`
}

// ReplacementItem is an outbound line in an exchange. Its unit price is
// editable until completion.
type ReplacementItem struct {
	ProductID      int64  `json:"product_id"`
	VariantID      *int64 `json:"variant_id,omitempty"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type Settlement string

const (
	SettlementChargeCustomer Settlement = "charge_customer"
	SettlementRefundCustomer Settlement = "refund_customer"
	SettlementEven           Settlement = "even"
)

// Money is derived from the item sets and recomputed whenever they change.
type Money struct {
	SubtotalReturnCents      int64      `json:"subtotal_return_cents"`
	SubtotalReplacementCents int64      `json:"subtotal_replacement_cents"`
	DifferenceCents          int64      `json:"difference_cents"`
	Settlement               Settlement `json:"settlement"`
	PaymentMethod            *string    `json:"payment_method,omitempty"`
	PaymentRef               *string    `json:"payment_ref,omitempty"`
}

// RMA is the return/exchange aggregate. It back-references its order by id
// and number only; it does not own the order.
type RMA struct {
	ID               int64             `json:"id"`
	Number           string            `json:"number"`
	RefCode          string            `json:"ref_code"`
	Type             Type              `json:"type"`
	Status           Status            `json:"status"`
	OrderID          int64             `json:"order_id"`
	OrderNumber      string            `json:"order_number"`
	Note             *string           `json:"note,omitempty"`
	ReturnItems      []ReturnItem      `json:"return_items"`
	ReplacementItems []ReplacementItem `json:"replacement_items"`
	Money            Money             `json:"money"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty"`
}
