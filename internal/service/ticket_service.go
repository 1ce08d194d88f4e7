package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal/internal/domain"
	"github.com/spec-kit/admin-portal/internal/events"
)

// TicketGateway is the upstream surface the ticket workflows need.
type TicketGateway interface {
	ListTickets(ctx context.Context, f domain.TicketFilter) (json.RawMessage, error)
	GetTicket(ctx context.Context, id string) (json.RawMessage, error)
	UpdateTicket(ctx context.Context, id string, update domain.TicketUpdate) (json.RawMessage, error)
}

// TicketService forwards ticket operations upstream and audits changes.
type TicketService struct {
	gateway    TicketGateway
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(gateway TicketGateway, dispatcher events.Dispatcher, logger *zap.Logger) *TicketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{gateway: gateway, dispatcher: dispatcher, logger: logger}
}

// ListTickets returns the upstream ticket page.
func (s *TicketService) ListTickets(ctx context.Context, f domain.TicketFilter) (json.RawMessage, error) {
	return s.gateway.ListTickets(ctx, f)
}

// GetTicket returns one ticket.
func (s *TicketService) GetTicket(ctx context.Context, id string) (json.RawMessage, error) {
	return s.gateway.GetTicket(ctx, id)
}

// UpdateTicket applies the change upstream and records who made it.
// Nothing is published when the upstream call fails.
func (s *TicketService) UpdateTicket(ctx context.Context, actor domain.Principal, id string, update domain.TicketUpdate) (json.RawMessage, error) {
	body, err := s.gateway.UpdateTicket(ctx, id, update)
	if err != nil {
		return nil, err
	}

	evt := events.NewEvent(events.EventTicketUpdated, events.ActorFromPrincipal(actor),
		events.TicketUpdatedPayload{TicketID: id, Fields: update.ChangedFields()})
	if s.dispatcher != nil {
		if err := s.dispatcher.Publish(ctx, evt); err != nil {
			s.logger.Warn("publish event", zap.String("type", string(evt.Type)), zap.Error(err))
		}
	}
	return body, nil
}
