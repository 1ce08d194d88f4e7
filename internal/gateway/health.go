package gateway

import (
	"context"
	"io"
	"net/http"

	"github.com/spec-kit/admin-portal/internal/domain"
	"github.com/spec-kit/admin-portal/internal/observability"
)

// Health probes the upstream API. It never fails: any network error,
// timeout or non-2xx reply is reported as offline.
func (c *Client) Health(ctx context.Context) domain.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	status := domain.UpstreamOffline
	outcome := observability.OutcomeUnreachable

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+ResourceHealth, nil)
	if err == nil {
		c.authorize(req)
		resp, doErr := c.httpClient.Do(req)
		if doErr == nil {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
				status = domain.UpstreamOnline
				outcome = observability.OutcomeOK
			} else {
				outcome = observability.OutcomeHTTPError
			}
		}
	}
	c.metrics.RecordUpstream(ResourceHealth, "probe", outcome)

	return domain.HealthStatus{Status: status, Timestamp: c.now().UTC()}
}
