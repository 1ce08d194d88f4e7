package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal/internal/domain"
)

// DeviceGateway is the upstream device surface.
type DeviceGateway interface {
	ListDevices(ctx context.Context, f domain.DeviceFilter) (json.RawMessage, error)
	GetDevice(ctx context.Context, id string) (json.RawMessage, error)
}

// DevicesHandler proxies device lookups.
type DevicesHandler struct {
	gateway DeviceGateway
}

// NewDevicesHandler constructs handler.
func NewDevicesHandler(gateway DeviceGateway) *DevicesHandler {
	return &DevicesHandler{gateway: gateway}
}

// List handles GET /devices.
func (h *DevicesHandler) List(c *fiber.Ctx) error {
	q := newQueryParser(c)
	filter := domain.DeviceFilter{
		CustomerID: q.text("customerId"),
		Status:     queryEnum(q, "status", domain.DeviceStatus.Valid),
		Page:       q.positiveInt("page"),
		Limit:      q.positiveInt("limit"),
	}
	if err := q.err(); err != nil {
		return err
	}

	body, err := h.gateway.ListDevices(upstreamContext(c), filter)
	if err != nil {
		return upstreamFailure(err)
	}
	return sendRaw(c, body)
}

// Get handles GET /devices/:id.
func (h *DevicesHandler) Get(c *fiber.Ctx) error {
	body, err := h.gateway.GetDevice(upstreamContext(c), c.Params("id"))
	if err != nil {
		return upstreamFailure(err)
	}
	return sendRaw(c, body)
}
