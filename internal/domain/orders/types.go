package orders

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("order not found")

type Order struct {
	ID            int64      `json:"id"`
	OrderNumber   string     `json:"order_number"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	Status        string     `json:"status"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TotalCents    int64      `json:"total_cents"`
	PlacedAt      time.Time  `json:"placed_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// OrderItem is a pricing snapshot taken at the time of sale. UnitPriceCents
// is the price actually charged, which is what return settlements use.
type OrderItem struct {
	ID             int64          `json:"id"`
	OrderID        int64          `json:"order_id"`
	ProductID      *int64         `json:"product_id,omitempty"`
	VariantID      *int64         `json:"variant_id,omitempty"`
	SKU            string         `json:"sku"`
	ProductName    string         `json:"product_name"`
	VariantAttrs   map[string]any `json:"variant_attributes,omitempty"`
	Quantity       int            `json:"quantity"`
	UnitPriceCents int64          `json:"unit_price_cents"`
}

type OrderDetail struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
