package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/admin-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "auth.login.succeeded"
	EventLoginFailed    EventType = "auth.login.failed"
	EventLoginThrottled EventType = "auth.login.throttled"
	EventTicketUpdated  EventType = "ticket.updated"
)

// AuditTypes lists every event the audit log records.
func AuditTypes() []EventType {
	return []EventType{EventLoginSucceeded, EventLoginFailed, EventLoginThrottled, EventTicketUpdated}
}

// Actor identifies the operator behind an event. Empty for anonymous attempts.
type Actor struct {
	UserID string      `json:"user_id,omitempty"`
	Email  string      `json:"email,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// ActorFromPrincipal copies the audit-relevant identity fields.
func ActorFromPrincipal(p domain.Principal) Actor {
	return Actor{UserID: p.UserID, Email: p.Email, Role: p.Role}
}

// Event is an audit record emitted by services and handlers.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with an id and the current time.
func NewEvent(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginAttemptPayload describes a login attempt.
type LoginAttemptPayload struct {
	Email  string `json:"email"`
	Reason string `json:"reason,omitempty"`
}

// TicketUpdatedPayload lists what an operator changed on a ticket.
type TicketUpdatedPayload struct {
	TicketID string   `json:"ticket_id"`
	Fields   []string `json:"fields"`
}
