package inventory

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
	ErrStockBelowZero  = errors.New("stock adjustment would go below zero")
)

type Variant struct {
	ID         int64          `json:"id"`
	ProductID  int64          `json:"product_id"`
	SKU        string         `json:"sku"`
	Attributes map[string]any `json:"attributes,omitempty"`
	PriceCents int64          `json:"price_cents"`
	StockQty   int            `json:"stock_qty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	SKU         string     `json:"sku"`
	Description *string    `json:"description,omitempty"`
	StockQty    int        `json:"stock_qty"`
	HasVariants bool       `json:"has_variants"`
	IsActive    bool       `json:"is_active"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Variants    []*Variant `json:"variants,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AvailableStock resolves the sellable stock for a product or, when variantID
// is set, for that variant of it.
func (p *Product) AvailableStock(variantID *int64) (int, error) {
	if variantID == nil {
		return p.StockQty, nil
	}
	for _, v := range p.Variants {
		if v.ID == *variantID {
			return v.StockQty, nil
		}
	}
	return 0, fmt.Errorf("%w: product %d variant %d", ErrVariantNotFound, p.ID, *variantID)
}
