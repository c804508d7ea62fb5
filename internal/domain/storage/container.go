package storage

import (
	"context"
	"fmt"

	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/orders"
	"backoffice/internal/domain/rmas"
	"backoffice/internal/domain/roles"
	"backoffice/internal/domain/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool      *pgxpool.Pool // needed so WithRMATx can open transactions
	Users     users.Store
	Roles     roles.Store
	Inventory inventory.Store
	Orders    orders.Store
	RMAs      rmas.Store
	Audit     audit.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:      db,
		Users:     users.NewRepository(db),
		Roles:     roles.NewRepository(db),
		Inventory: inventory.NewRepository(db),
		Orders:    orders.NewRepository(db),
		RMAs:      rmas.NewRepository(db),
		Audit:     audit.NewRepository(db),
	}
}

// Repos returns the pool-backed repository set for non-transactional reads.
func (c *Container) Repos() rmas.Repos {
	return rmas.Repos{
		RMAs:      c.RMAs,
		Inventory: c.Inventory,
		Orders:    c.Orders,
		Audit:     c.Audit,
	}
}

// WithRMATx runs an RMA unit of work atomically: the status transition, the
// inventory adjustments and the audit events commit or roll back together.
func (c *Container) WithRMATx(ctx context.Context, fn func(r rmas.Repos) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx) // safe even if already committed
	}()

	r := rmas.Repos{
		RMAs:      rmas.NewRepository(tx),
		Inventory: inventory.NewRepository(tx),
		Orders:    orders.NewRepository(tx),
		Audit:     audit.NewRepository(tx),
	}

	if err := fn(r); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
