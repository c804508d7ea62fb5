package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backoffice/internal/db"

	"github.com/google/uuid"
)

type Store interface {
	Append(ctx context.Context, event *Event) error
	List(ctx context.Context, limit, offset int) ([]*Event, int, error)
}

type Repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Store {
	return &Repository{q: q}
}

func (r *Repository) Append(ctx context.Context, event *Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Ts.IsZero() {
		event.Ts = time.Now().UTC()
	}

	changes, err := json.Marshal(event.Changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	_, err = r.q.Exec(ctx, `
INSERT INTO audit_events (id, ts, actor_id, actor_name, actor_role, action, entity, entity_id, changes, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		event.ID, event.Ts, event.ActorID, event.ActorName, event.ActorRole,
		event.Action, event.Entity, event.EntityID, changes, metadata,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Event, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.q.Query(ctx, `
SELECT id, ts, actor_id, actor_name, actor_role, action, entity, entity_id, changes, metadata,
       COUNT(*) OVER() AS total_count
FROM audit_events
ORDER BY ts DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var (
		out   []*Event
		total int
	)
	for rows.Next() {
		var e Event
		var changes, metadata []byte
		var t int
		if err := rows.Scan(
			&e.ID, &e.Ts, &e.ActorID, &e.ActorName, &e.ActorRole, &e.Action,
			&e.Entity, &e.EntityID, &changes, &metadata, &t,
		); err != nil {
			return nil, 0, fmt.Errorf("scan audit event: %w", err)
		}
		_ = json.Unmarshal(changes, &e.Changes)
		_ = json.Unmarshal(metadata, &e.Metadata)
		if total == 0 {
			total = t
		}
		out = append(out, &e)
	}
	return out, total, rows.Err()
}
