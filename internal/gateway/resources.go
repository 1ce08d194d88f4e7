package gateway

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/admin-portal/internal/domain"
)

// ListCustomers returns the upstream {customers, total, page, limit} body verbatim.
func (c *Client) ListCustomers(ctx context.Context, f domain.CustomerFilter) (json.RawMessage, error) {
	return c.list(ctx, ResourceCustomers, customerQuery(f))
}

// GetCustomer returns one customer.
func (c *Client) GetCustomer(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, ResourceCustomers, id)
}

// ListDevices returns the upstream {devices, total, page, limit} body verbatim.
func (c *Client) ListDevices(ctx context.Context, f domain.DeviceFilter) (json.RawMessage, error) {
	return c.list(ctx, ResourceDevices, deviceQuery(f))
}

// GetDevice returns one device.
func (c *Client) GetDevice(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, ResourceDevices, id)
}

// ListTickets returns the upstream {tickets, total, page, limit} body verbatim.
func (c *Client) ListTickets(ctx context.Context, f domain.TicketFilter) (json.RawMessage, error) {
	return c.list(ctx, ResourceTickets, ticketQuery(f))
}

// GetTicket returns one ticket.
func (c *Client) GetTicket(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, ResourceTickets, id)
}

// UpdateTicket patches only the supplied fields and returns the updated ticket.
func (c *Client) UpdateTicket(ctx context.Context, id string, update domain.TicketUpdate) (json.RawMessage, error) {
	return c.update(ctx, ResourceTickets, id, update)
}
