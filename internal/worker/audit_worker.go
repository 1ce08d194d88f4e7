package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal/internal/events"
)

// StartAuditWorker subscribes a structured audit log to every audit event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	for _, eventType := range events.AuditTypes() {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			audit.Info(string(e.Type),
				zap.String("event_id", e.ID),
				zap.String("actor_id", e.Actor.UserID),
				zap.String("actor_email", e.Actor.Email),
				zap.String("actor_role", string(e.Actor.Role)),
				zap.Time("at", e.Timestamp),
				zap.Any("payload", e.Payload))
			return nil
		})
	}
}

// AuditSink persists audit events.
type AuditSink interface {
	Create(ctx context.Context, event events.Event) error
}

// StartAuditStore subscribes a persistent sink to every audit event.
// Write failures surface through Publish and never block the request.
func StartAuditStore(dispatcher events.Dispatcher, sink AuditSink) {
	if dispatcher == nil || sink == nil {
		return
	}
	for _, eventType := range events.AuditTypes() {
		dispatcher.Subscribe(eventType, func(ctx context.Context, e events.Event) error {
			if err := sink.Create(ctx, e); err != nil {
				return fmt.Errorf("store audit event %s: %w", e.ID, err)
			}
			return nil
		})
	}
}
