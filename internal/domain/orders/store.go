package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backoffice/internal/db"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetDetail(ctx context.Context, orderID int64) (*OrderDetail, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]Order, int, error)
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Store {
	return &Repository{q: q}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := r.q.QueryRow(ctx, `
SELECT id, order_number, customer_name, customer_email, status,
       subtotal_cents, total_cents, placed_at, paid_at
FROM orders WHERE id=$1`, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.Status,
		&o.SubtotalCents, &o.TotalCents, &o.PlacedAt, &o.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

func (r *Repository) GetDetail(ctx context.Context, orderID int64) (*OrderDetail, error) {
	order, err := r.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, `
SELECT id, order_id, product_id, variant_id, sku, product_name,
       variant_attributes, quantity, unit_price_cents
FROM order_items
WHERE order_id=$1
ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		var attrs []byte
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.SKU,
			&it.ProductName, &attrs, &it.Quantity, &it.UnitPriceCents,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		_ = json.Unmarshal(attrs, &it.VariantAttrs)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &OrderDetail{Order: *order, Items: items}, nil
}

func (r *Repository) ListAll(ctx context.Context, status string, limit, offset int) ([]Order, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.q.Query(ctx, `
SELECT id, order_number, customer_name, customer_email, status,
       subtotal_cents, total_cents, placed_at, paid_at,
       COUNT(*) OVER() AS total_count
FROM orders
WHERE ($1 = '' OR status = $1)
ORDER BY placed_at DESC
LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		out   []Order
		total int
	)
	for rows.Next() {
		var o Order
		var t int
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.Status,
			&o.SubtotalCents, &o.TotalCents, &o.PlacedAt, &o.PaidAt, &t,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		if total == 0 {
			total = t
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}
