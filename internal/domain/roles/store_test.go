package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// errQuerier returns the configured error from every Exec call.
type errQuerier struct {
	execErr error
}

func (q *errQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.execErr
}

func (q *errQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (q *errQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("unexpected query row")
}

func TestDeleteRoleStillAssigned(t *testing.T) {
	repo := NewRepository(&errQuerier{execErr: &pgconn.PgError{Code: "23503"}})

	err := repo.Delete(context.Background(), 42)
	if !errors.Is(err, ErrRoleInUse) {
		t.Fatalf("got %v, want ErrRoleInUse", err)
	}
}

func TestDeleteRoleOtherErrorsPassThrough(t *testing.T) {
	boom := errors.New("connection reset")
	repo := NewRepository(&errQuerier{execErr: boom})

	err := repo.Delete(context.Background(), 42)
	if errors.Is(err, ErrRoleInUse) {
		t.Fatal("unrelated errors must not map to ErrRoleInUse")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped %v", err, boom)
	}
}
