package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal/internal/domain"
)

// CustomerGateway is the upstream customer surface.
type CustomerGateway interface {
	ListCustomers(ctx context.Context, f domain.CustomerFilter) (json.RawMessage, error)
	GetCustomer(ctx context.Context, id string) (json.RawMessage, error)
}

// CustomersHandler proxies customer lookups.
type CustomersHandler struct {
	gateway CustomerGateway
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(gateway CustomerGateway) *CustomersHandler {
	return &CustomersHandler{gateway: gateway}
}

// List handles GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	q := newQueryParser(c)
	filter := domain.CustomerFilter{
		Page:   q.positiveInt("page"),
		Limit:  q.positiveInt("limit"),
		Search: q.text("search"),
		Status: queryEnum(q, "status", domain.CustomerStatus.Valid),
	}
	if err := q.err(); err != nil {
		return err
	}

	body, err := h.gateway.ListCustomers(upstreamContext(c), filter)
	if err != nil {
		return upstreamFailure(err)
	}
	return sendRaw(c, body)
}

// Get handles GET /customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	body, err := h.gateway.GetCustomer(upstreamContext(c), c.Params("id"))
	if err != nil {
		return upstreamFailure(err)
	}
	return sendRaw(c, body)
}
