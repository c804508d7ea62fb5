package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backoffice/internal/db"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, limit, offset int) ([]*Product, int, error)

	// AdjustStock applies delta (positive = restock, negative = consume) to
	// the product's stock, or to the named variant's stock when variantID is
	// set. The adjustment never takes stock below zero.
	AdjustStock(ctx context.Context, productID int64, delta int, variantID *int64) error

	AttachImage(ctx context.Context, productID int64, url string) error
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Store {
	return &Repository{q: q}
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.q.QueryRow(ctx, `
SELECT id, name, sku, description, stock_qty, has_variants, is_active, image_url, created_at, updated_at
FROM products WHERE id=$1`, id).Scan(
		&p.ID, &p.Name, &p.SKU, &p.Description, &p.StockQty, &p.HasVariants,
		&p.IsActive, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if p.HasVariants {
		variants, err := r.loadVariants(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Variants = variants
	}
	return &p, nil
}

func (r *Repository) loadVariants(ctx context.Context, productID int64) ([]*Variant, error) {
	rows, err := r.q.Query(ctx, `
SELECT id, product_id, sku, attributes, price_cents, stock_qty, created_at, updated_at
FROM product_variants
WHERE product_id=$1
ORDER BY id ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("product variants: %w", err)
	}
	defer rows.Close()

	var out []*Variant
	for rows.Next() {
		var v Variant
		var attrs []byte
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.SKU, &attrs, &v.PriceCents, &v.StockQty,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		_ = json.Unmarshal(attrs, &v.Attributes)
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Product, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.q.Query(ctx, `
SELECT id, name, sku, description, stock_qty, has_variants, is_active, image_url, created_at, updated_at,
       COUNT(*) OVER() AS total_count
FROM products
ORDER BY name ASC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		out   []*Product
		total int
	)
	for rows.Next() {
		var p Product
		var t int
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SKU, &p.Description, &p.StockQty, &p.HasVariants,
			&p.IsActive, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt, &t,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		if total == 0 {
			total = t
		}
		out = append(out, &p)
	}
	return out, total, rows.Err()
}

func (r *Repository) AdjustStock(ctx context.Context, productID int64, delta int, variantID *int64) error {
	if variantID != nil {
		cmd, err := r.q.Exec(ctx, `
UPDATE product_variants
SET stock_qty = stock_qty + $3, updated_at = now()
WHERE id=$2 AND product_id=$1 AND stock_qty + $3 >= 0`,
			productID, *variantID, delta,
		)
		if err != nil {
			return fmt.Errorf("adjust variant stock: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return r.adjustFailureReason(ctx, productID, variantID)
		}
		return nil
	}

	cmd, err := r.q.Exec(ctx, `
UPDATE products
SET stock_qty = stock_qty + $2, updated_at = now()
WHERE id=$1 AND stock_qty + $2 >= 0`,
		productID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.adjustFailureReason(ctx, productID, nil)
	}
	return nil
}

// adjustFailureReason distinguishes a missing row from the below-zero guard.
func (r *Repository) adjustFailureReason(ctx context.Context, productID int64, variantID *int64) error {
	var exists bool
	if variantID != nil {
		if err := r.q.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM product_variants WHERE id=$2 AND product_id=$1)`,
			productID, *variantID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrVariantNotFound
		}
		return ErrStockBelowZero
	}
	if err := r.q.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStockBelowZero
}

func (r *Repository) AttachImage(ctx context.Context, productID int64, url string) error {
	cmd, err := r.q.Exec(ctx, `
UPDATE products SET image_url=$2, updated_at=now() WHERE id=$1`, productID, url)
	if err != nil {
		return fmt.Errorf("attach product image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
