package roles

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Store interface {
	Create(ctx context.Context, role *Role) (*Role, error)
	GetByID(ctx context.Context, id int64) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id int64) error
	IsNameAvailable(ctx context.Context, name string, excludeID int64) (bool, error)
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Store {
	return &Repository{q: q}
}

func (r *Repository) Create(ctx context.Context, role *Role) (*Role, error) {
	perms := make([]string, len(role.Permissions))
	for i, p := range role.Permissions {
		perms[i] = string(p)
	}

	err := r.q.QueryRow(ctx, `
INSERT INTO roles (name, description, permissions, is_system)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`,
		role.Name, role.Description, perms, role.IsSystem,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Role, error) {
	role, err := scanRole(r.q.QueryRow(ctx, `
SELECT id, name, description, permissions, is_system, created_at, updated_at
FROM roles WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

func (r *Repository) List(ctx context.Context) ([]*Role, error) {
	rows, err := r.q.Query(ctx, `
SELECT id, name, description, permissions, is_system, created_at, updated_at
FROM roles
ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var out []*Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, role *Role) error {
	perms := make([]string, len(role.Permissions))
	for i, p := range role.Permissions {
		perms[i] = string(p)
	}

	// System roles are immutable; the WHERE clause is the hard guard.
	cmd, err := r.q.Exec(ctx, `
UPDATE roles
SET name=$2, description=$3, permissions=$4, updated_at=now()
WHERE id=$1 AND is_system=false`,
		role.ID, role.Name, role.Description, perms,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateName
		}
		return fmt.Errorf("update role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, role.ID); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrSystemRole
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id=$1 AND is_system=false`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrRoleInUse
		}
		return fmt.Errorf("delete role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrSystemRole
	}
	return nil
}

func (r *Repository) IsNameAvailable(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM roles WHERE LOWER(name)=LOWER($1) AND id<>$2
)`, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("role name availability: %w", err)
	}
	return !exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (*Role, error) {
	var role Role
	var perms []string
	if err := row.Scan(
		&role.ID, &role.Name, &role.Description, &perms, &role.IsSystem,
		&role.CreatedAt, &role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	role.Permissions = make([]Permission, len(perms))
	for i, p := range perms {
		role.Permissions[i] = Permission(p)
	}
	return &role, nil
}
