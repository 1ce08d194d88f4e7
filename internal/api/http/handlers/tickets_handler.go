package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal/internal/api/dto"
	"github.com/spec-kit/admin-portal/internal/auth"
	"github.com/spec-kit/admin-portal/internal/domain"
	"github.com/spec-kit/admin-portal/internal/service"
	apperrors "github.com/spec-kit/admin-portal/pkg/util"
)

// TicketsHandler manages support ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List handles GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	q := newQueryParser(c)
	filter := domain.TicketFilter{
		Page:       q.positiveInt("page"),
		Limit:      q.positiveInt("limit"),
		Status:     queryEnum(q, "status", domain.TicketStatus.Valid),
		Priority:   queryEnum(q, "priority", domain.TicketPriority.Valid),
		Category:   queryEnum(q, "category", domain.TicketCategory.Valid),
		AssignedTo: q.text("assignedTo"),
	}
	if err := q.err(); err != nil {
		return err
	}

	body, err := h.service.ListTickets(upstreamContext(c), filter)
	if err != nil {
		return upstreamFailure(err)
	}
	return sendRaw(c, body)
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	body, err := h.service.GetTicket(upstreamContext(c), c.Params("id"))
	if err != nil {
		return upstreamFailure(err)
	}
	return sendRaw(c, body)
}

// Update handles PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid or missing authentication")
	}

	var req dto.TicketUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	update, err := req.ToDomain()
	if err != nil {
		return err
	}

	body, err := h.service.UpdateTicket(upstreamContext(c), *principal, c.Params("id"), update)
	if err != nil {
		return upstreamFailure(err)
	}
	return sendRaw(c, body)
}
