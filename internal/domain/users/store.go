package users

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Store interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	Update(ctx context.Context, user *User) error
	SetStatus(ctx context.Context, id int64, status Status) error
	IsEmailAvailable(ctx context.Context, email string, excludeID int64) (bool, error)
	SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error
	GetRefreshToken(ctx context.Context, userID int64) (string, error)
	DeleteRefreshToken(ctx context.Context, userID int64) error
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Store {
	return &Repository{q: q}
}

func (r *Repository) Create(ctx context.Context, user *User) (*User, error) {
	err := r.q.QueryRow(ctx, `
INSERT INTO users (name, email, password_hash, role_id, status)
VALUES ($1, LOWER($2), $3, $4, $5)
RETURNING id, created_at, updated_at`,
		user.Name, user.Email, user.Password.hash, user.RoleID, user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `
SELECT id, name, email, password_hash, role_id, status, refresh_token, created_at, updated_at
FROM users WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetByEmail matches case-insensitively; email is stored lowercased.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `
SELECT id, name, email, password_hash, role_id, status, refresh_token, created_at, updated_at
FROM users WHERE LOWER(email)=LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.q.Query(ctx, `
SELECT id, name, email, password_hash, role_id, status, refresh_token, created_at, updated_at,
       COUNT(*) OVER() AS total_count
FROM users
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var (
		out   []*User
		total int
	)
	for rows.Next() {
		var u User
		var refresh *string
		var t int
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Password.hash, &u.RoleID, &u.Status,
			&refresh, &u.CreatedAt, &u.UpdatedAt, &t,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		if refresh != nil {
			u.RefreshToken = *refresh
		}
		if total == 0 {
			total = t
		}
		out = append(out, &u)
	}
	return out, total, rows.Err()
}

func (r *Repository) Update(ctx context.Context, user *User) error {
	cmd, err := r.q.Exec(ctx, `
UPDATE users
SET name=$2, email=LOWER($3), role_id=$4, updated_at=now()
WHERE id=$1`,
		user.ID, user.Name, user.Email, user.RoleID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetStatus(ctx context.Context, id int64, status Status) error {
	cmd, err := r.q.Exec(ctx, `
UPDATE users SET status=$2, updated_at=now() WHERE id=$1`, id, status)
	if err != nil {
		return fmt.Errorf("set user status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) IsEmailAvailable(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM users WHERE LOWER(email)=LOWER($1) AND id<>$2
)`, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("email availability: %w", err)
	}
	return !exists, nil
}

func (r *Repository) SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	_, err := r.q.Exec(ctx, `
UPDATE users SET refresh_token=$2 WHERE id=$1`, userID, refreshToken)
	return err
}

func (r *Repository) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	var token string
	err := r.q.QueryRow(ctx, `
SELECT COALESCE(refresh_token, '') FROM users WHERE id=$1`, userID).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return token, nil
}

func (r *Repository) DeleteRefreshToken(ctx context.Context, userID int64) error {
	_, err := r.q.Exec(ctx, `
UPDATE users SET refresh_token=NULL WHERE id=$1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	var refresh *string
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password.hash, &u.RoleID, &u.Status,
		&refresh, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if refresh != nil {
		u.RefreshToken = *refresh
	}
	return &u, nil
}
