package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal/internal/events"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditLister reads stored audit events, newest first.
type AuditLister interface {
	ListRecent(ctx context.Context, limit int) ([]events.Event, error)
}

// AuditHandler exposes the persisted audit trail.
type AuditHandler struct {
	store AuditLister
}

// NewAuditHandler constructs handler. A nil store serves an empty trail.
func NewAuditHandler(store AuditLister) *AuditHandler {
	return &AuditHandler{store: store}
}

// List handles GET /audit.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	q := newQueryParser(c)
	limit := q.positiveInt("limit")
	if err := q.err(); err != nil {
		return err
	}
	if limit == 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	if h.store == nil {
		return c.JSON(fiber.Map{"events": []events.Event{}})
	}
	list, err := h.store.ListRecent(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": list})
}
