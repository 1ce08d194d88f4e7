package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal/internal/gateway"
	"github.com/spec-kit/admin-portal/internal/observability"
	apperrors "github.com/spec-kit/admin-portal/pkg/util"
)

// upstreamContext carries the request deadline and id into outbound calls.
func upstreamContext(c *fiber.Ctx) context.Context {
	return gateway.WithRequestID(c.UserContext(), observability.RequestID(c))
}

// upstreamFailure maps gateway errors to 502 responses.
func upstreamFailure(err error) error {
	if errors.Is(err, gateway.ErrEmptyID) {
		return apperrors.NewValidationError("id required", nil)
	}
	var upErr *gateway.UpstreamError
	if errors.As(err, &upErr) {
		var details map[string]any
		if upErr.StatusCode != 0 {
			details = map[string]any{"upstreamStatus": upErr.StatusCode}
		}
		return apperrors.NewBadGateway("upstream request failed: "+upErr.StatusText, details, err)
	}
	return err
}

// sendRaw writes an upstream JSON body through untouched.
func sendRaw(c *fiber.Ctx, body json.RawMessage) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
