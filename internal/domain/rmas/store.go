package rmas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backoffice/internal/db"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, rma *RMA) error
	GetByID(ctx context.Context, id int64) (*RMA, error)
	List(ctx context.Context, status Status, limit, offset int) ([]*RMA, int, error)
	ListByOrder(ctx context.Context, orderID int64) ([]*RMA, error)
	Update(ctx context.Context, rma *RMA) error

	// NextNumber increments and returns the process-wide RMA sequence. The
	// counter lives in its own row, independent of the rmas table, so numbers
	// are never reissued even if RMAs are removed.
	NextNumber(ctx context.Context) (int64, error)
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Store {
	return &Repository{q: q}
}

func (r *Repository) NextNumber(ctx context.Context) (int64, error) {
	var seq int64
	err := r.q.QueryRow(ctx, `
UPDATE rma_counters SET value = value + 1 WHERE id = 1 RETURNING value`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next rma number: %w", err)
	}
	return seq, nil
}

func (r *Repository) Create(ctx context.Context, rma *RMA) error {
	returnItems, err := json.Marshal(rma.ReturnItems)
	if err != nil {
		return fmt.Errorf("marshal return items: %w", err)
	}
	replacementItems, err := json.Marshal(rma.ReplacementItems)
	if err != nil {
		return fmt.Errorf("marshal replacement items: %w", err)
	}
	money, err := json.Marshal(rma.Money)
	if err != nil {
		return fmt.Errorf("marshal money: %w", err)
	}

	err = r.q.QueryRow(ctx, `
INSERT INTO rmas (number, ref_code, type, status, order_id, order_number, note,
                  return_items, replacement_items, money)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, created_at, updated_at`,
		rma.Number, rma.RefCode, rma.Type, rma.Status, rma.OrderID,
		rma.OrderNumber, rma.Note, returnItems, replacementItems, money,
	).Scan(&rma.ID, &rma.CreatedAt, &rma.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create rma: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*RMA, error) {
	rma, err := scanRMA(r.q.QueryRow(ctx, `
SELECT id, number, ref_code, type, status, order_id, order_number, note,
       return_items, replacement_items, money,
       created_at, updated_at, completed_at, cancelled_at
FROM rmas WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rma: %w", err)
	}
	return rma, nil
}

func (r *Repository) List(ctx context.Context, status Status, limit, offset int) ([]*RMA, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.q.Query(ctx, `
SELECT id, number, ref_code, type, status, order_id, order_number, note,
       return_items, replacement_items, money,
       created_at, updated_at, completed_at, cancelled_at,
       COUNT(*) OVER() AS total_count
FROM rmas
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`, string(status), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list rmas: %w", err)
	}
	defer rows.Close()

	var (
		out   []*RMA
		total int
	)
	for rows.Next() {
		rma, t, err := scanRMAWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan rma: %w", err)
		}
		if total == 0 {
			total = t
		}
		out = append(out, rma)
	}
	return out, total, rows.Err()
}

func (r *Repository) ListByOrder(ctx context.Context, orderID int64) ([]*RMA, error) {
	rows, err := r.q.Query(ctx, `
SELECT id, number, ref_code, type, status, order_id, order_number, note,
       return_items, replacement_items, money,
       created_at, updated_at, completed_at, cancelled_at
FROM rmas
WHERE order_id=$1
ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list rmas by order: %w", err)
	}
	defer rows.Close()

	var out []*RMA
	for rows.Next() {
		rma, err := scanRMA(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rma: %w", err)
		}
		out = append(out, rma)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, rma *RMA) error {
	returnItems, err := json.Marshal(rma.ReturnItems)
	if err != nil {
		return fmt.Errorf("marshal return items: %w", err)
	}
	replacementItems, err := json.Marshal(rma.ReplacementItems)
	if err != nil {
		return fmt.Errorf("marshal replacement items: %w", err)
	}
	money, err := json.Marshal(rma.Money)
	if err != nil {
		return fmt.Errorf("marshal money: %w", err)
	}

	cmd, err := r.q.Exec(ctx, `
UPDATE rmas
SET type=$2, status=$3, note=$4, return_items=$5, replacement_items=$6,
    money=$7, updated_at=$8, completed_at=$9, cancelled_at=$10
WHERE id=$1`,
		rma.ID, rma.Type, rma.Status, rma.Note, returnItems, replacementItems,
		money, rma.UpdatedAt, rma.CompletedAt, rma.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("update rma: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRMA(row rowScanner) (*RMA, error) {
	var rma RMA
	var returnItems, replacementItems, money []byte
	if err := row.Scan(
		&rma.ID, &rma.Number, &rma.RefCode, &rma.Type, &rma.Status,
		&rma.OrderID, &rma.OrderNumber, &rma.Note,
		&returnItems, &replacementItems, &money,
		&rma.CreatedAt, &rma.UpdatedAt, &rma.CompletedAt, &rma.CancelledAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalRMA(&rma, returnItems, replacementItems, money); err != nil {
		return nil, err
	}
	return &rma, nil
}

func scanRMAWithTotal(row rowScanner) (*RMA, int, error) {
	var rma RMA
	var returnItems, replacementItems, money []byte
	var total int
	if err := row.Scan(
		&rma.ID, &rma.Number, &rma.RefCode, &rma.Type, &rma.Status,
		&rma.OrderID, &rma.OrderNumber, &rma.Note,
		&returnItems, &replacementItems, &money,
		&rma.CreatedAt, &rma.UpdatedAt, &rma.CompletedAt, &rma.CancelledAt,
		&total,
	); err != nil {
		return nil, 0, err
	}
	if err := unmarshalRMA(&rma, returnItems, replacementItems, money); err != nil {
		return nil, 0, err
	}
	return &rma, total, nil
}

func unmarshalRMA(rma *RMA, returnItems, replacementItems, money []byte) error {
	if err := json.Unmarshal(returnItems, &rma.ReturnItems); err != nil {
		return fmt.Errorf("unmarshal return items: %w", err)
	}
	if err := json.Unmarshal(replacementItems, &rma.ReplacementItems); err != nil {
		return fmt.Errorf("unmarshal replacement items: %w", err)
	}
	if err := json.Unmarshal(money, &rma.Money); err != nil {
		return fmt.Errorf("unmarshal money: %w", err)
	}
	return nil
}
