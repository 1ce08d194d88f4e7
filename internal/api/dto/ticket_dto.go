package dto

import (
	"github.com/spec-kit/admin-portal/internal/domain"
	apperrors "github.com/spec-kit/admin-portal/pkg/util"
)

// TicketUpdateRequest is the PATCH /tickets/:id payload. Any id in the
// body is ignored; the path parameter identifies the ticket.
type TicketUpdateRequest struct {
	Status     *domain.TicketStatus   `json:"status"`
	Priority   *domain.TicketPriority `json:"priority"`
	AssignedTo *string                `json:"assignedTo"`
}

// ToDomain validates the payload and returns the update to forward.
func (r TicketUpdateRequest) ToDomain() (domain.TicketUpdate, error) {
	invalid := map[string]any{}
	if r.Status != nil && !r.Status.Valid() {
		invalid["status"] = string(*r.Status)
	}
	if r.Priority != nil && !r.Priority.Valid() {
		invalid["priority"] = string(*r.Priority)
	}
	if len(invalid) > 0 {
		return domain.TicketUpdate{}, apperrors.NewValidationError("invalid ticket fields", invalid)
	}

	update := domain.TicketUpdate{Status: r.Status, Priority: r.Priority, AssignedTo: r.AssignedTo}
	if update.Empty() {
		return domain.TicketUpdate{}, apperrors.NewValidationError("at least one of status, priority, assignedTo required", nil)
	}
	return update, nil
}
