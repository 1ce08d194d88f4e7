package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-portal/internal/domain"
	"github.com/spec-kit/admin-portal/internal/events"
)

// AuditRepository stores audit events.
type AuditRepository interface {
	Create(ctx context.Context, event events.Event) error
	ListRecent(ctx context.Context, limit int) ([]events.Event, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository builds repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("encode audit payload: %w", err)
	}
	const query = `
        INSERT INTO audit_events (id, event_type, actor_id, actor_email, actor_role, payload, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err = r.pool.Exec(ctx, query,
		event.ID,
		string(event.Type),
		event.Actor.UserID,
		event.Actor.Email,
		string(event.Actor.Role),
		payload,
		event.Timestamp,
	)
	return err
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]events.Event, error) {
	const query = `
        SELECT id, event_type, actor_id, actor_email, actor_role, payload, created_at
        FROM audit_events ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []events.Event{}
	for rows.Next() {
		var (
			event     events.Event
			eventType string
			role      string
			payload   []byte
		)
		if err := rows.Scan(
			&event.ID,
			&eventType,
			&event.Actor.UserID,
			&event.Actor.Email,
			&role,
			&payload,
			&event.Timestamp,
		); err != nil {
			return nil, err
		}
		event.Type = events.EventType(eventType)
		event.Actor.Role = domain.Role(role)
		event.Payload = json.RawMessage(payload)
		result = append(result, event)
	}
	return result, rows.Err()
}
