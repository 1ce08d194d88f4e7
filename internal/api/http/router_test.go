package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/admin-portal/internal/api/http/handlers"
	"github.com/spec-kit/admin-portal/internal/auth"
	"github.com/spec-kit/admin-portal/internal/config"
	"github.com/spec-kit/admin-portal/internal/events"
	"github.com/spec-kit/admin-portal/internal/gateway"
	"github.com/spec-kit/admin-portal/internal/observability"
	"github.com/spec-kit/admin-portal/internal/repository"
	"github.com/spec-kit/admin-portal/internal/service"
)

const upstreamKey = "svc-key-123"

type upstreamCall struct {
	method string
	path   string
	query  string
	header stdhttp.Header
	body   string
}

type upstreamRecorder struct {
	mu    sync.Mutex
	calls []upstreamCall
}

func (u *upstreamRecorder) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	body, _ := io.ReadAll(r.Body)
	u.mu.Lock()
	u.calls = append(u.calls, upstreamCall{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		header: r.Header.Clone(),
		body:   string(body),
	})
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/health":
		_, _ = io.WriteString(w, `{"ok":true}`)
	case strings.HasSuffix(r.URL.Path, "/missing"):
		w.WriteHeader(stdhttp.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
	case r.URL.Path == "/customers":
		_, _ = io.WriteString(w, `{"customers":[{"id":"c-1"}],"total":1,"page":1,"limit":10}`)
	case r.Method == stdhttp.MethodPatch:
		_, _ = io.WriteString(w, `{"id":"t-1","status":"resolved"}`)
	default:
		_, _ = io.WriteString(w, `{"id":"x"}`)
	}
}

func (u *upstreamRecorder) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}

func (u *upstreamRecorder) last(t *testing.T) upstreamCall {
	t.Helper()
	u.mu.Lock()
	defer u.mu.Unlock()
	require.NotEmpty(t, u.calls)
	return u.calls[len(u.calls)-1]
}

type testPortal struct {
	app      *fiber.App
	upstream *upstreamRecorder
	server   *httptest.Server
	audit    *[]events.Event
}

func newTestPortal(t *testing.T) *testPortal {
	t.Helper()
	rec := &upstreamRecorder{}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store, err := repository.NewStaticPrincipalStore(repository.DemoUsers(), bcrypt.MinCost)
	require.NoError(t, err)

	dispatcher := events.NewInMemoryDispatcher()
	var audit []events.Event
	var auditMu sync.Mutex
	dispatcher.Subscribe(events.EventTicketUpdated, func(_ context.Context, e events.Event) error {
		auditMu.Lock()
		defer auditMu.Unlock()
		audit = append(audit, e)
		return nil
	})

	tokens := auth.NewTokenManager("test-secret")
	authService, err := service.NewAuthService(service.AuthDependencies{
		Lookup:     store,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		BcryptCost: bcrypt.MinCost,
		Metrics:    metrics,
		Logger:     logger,
	})
	require.NoError(t, err)
	client := gateway.NewClient(config.UpstreamConfig{BaseURL: srv.URL, APIKey: upstreamKey, HealthTimeoutSeconds: 1},
		gateway.WithMetrics(metrics))

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{Logger: logger, Metrics: metrics})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("admin-portal", "test", client, nil, nil),
		Auth:           handlers.NewAuthHandler(authService, true),
		Customers:      handlers.NewCustomersHandler(client),
		Devices:        handlers.NewDevicesHandler(client),
		Tickets:        handlers.NewTicketsHandler(service.NewTicketService(client, dispatcher, logger)),
		Audit:          handlers.NewAuditHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
		Metrics:        metrics,
	})
	return &testPortal{app: app, upstream: rec, server: srv, audit: &audit}
}

func (p *testPortal) do(t *testing.T, req *stdhttp.Request) (*stdhttp.Response, []byte) {
	t.Helper()
	resp, err := p.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func (p *testPortal) login(t *testing.T, email, password string) (*stdhttp.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/login", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp, body := p.do(t, req)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(body, &out))
	return resp, out
}

func (p *testPortal) adminToken(t *testing.T) string {
	t.Helper()
	resp, body := p.login(t, "admin@angelsense.com", "admin123")
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	return body["token"].(string)
}

func authedRequest(method, target, token string, body io.Reader) *stdhttp.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeError(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotNil(t, out.Error, "body: %s", body)
	return out.Error
}

func TestLoginIssuesTokenAndCookie(t *testing.T) {
	p := newTestPortal(t)

	resp, body := p.login(t, "admin@angelsense.com", "admin123")
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)

	token, _ := body["token"].(string)
	assert.Len(t, strings.Split(token, "."), 3)
	assert.NotEmpty(t, body["expiresAt"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin", user["role"])
	assert.Equal(t, "Admin User", user["name"])
	assert.Equal(t, "1", user["id"])

	var session *stdhttp.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.Equal(t, token, session.Value)
	assert.True(t, session.HttpOnly)
	assert.True(t, session.Secure)
	assert.Equal(t, stdhttp.SameSiteLaxMode, session.SameSite)
}

func TestLoginFailures(t *testing.T) {
	p := newTestPortal(t)

	resp, body := p.login(t, "admin@angelsense.com", "wrong")
	assert.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", body["error"].(map[string]any)["message"])
	assert.Empty(t, resp.Cookies())

	resp, body = p.login(t, "", "admin123")
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	p := newTestPortal(t)

	for _, target := range []string{"/customers", "/customers/c-1", "/devices", "/tickets", "/tickets/t-1", "/auth/me"} {
		resp, body := p.do(t, httptest.NewRequest(stdhttp.MethodGet, target, nil))
		assert.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode, target)
		assert.Equal(t, "invalid or missing authentication", decodeError(t, body)["message"])
	}
	assert.Zero(t, p.upstream.count(), "rejected requests must not reach upstream")
}

func TestListCustomersProxiesWithServiceCredential(t *testing.T) {
	p := newTestPortal(t)
	token := p.adminToken(t)

	resp, body := p.do(t, authedRequest(stdhttp.MethodGet, "/customers?page=1&limit=10", token, nil))
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"customers":[{"id":"c-1"}],"total":1,"page":1,"limit":10}`, string(body))

	call := p.upstream.last(t)
	assert.Equal(t, "/customers", call.path)
	assert.Equal(t, "limit=10&page=1", call.query)
	assert.Equal(t, "Bearer "+upstreamKey, call.header.Get("Authorization"))
	assert.NotContains(t, call.header.Get("Authorization"), token)
	assert.NotEmpty(t, call.header.Get("X-Request-ID"))
}

func TestListCustomersForwardsStatusAndSearch(t *testing.T) {
	p := newTestPortal(t)
	token := p.adminToken(t)

	resp, _ := p.do(t, authedRequest(stdhttp.MethodGet, "/customers?status=active", token, nil))
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "status=active", p.upstream.last(t).query)

	resp, _ = p.do(t, authedRequest(stdhttp.MethodGet, "/customers?status=active&search=x", token, nil))
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	call := p.upstream.last(t)
	assert.Equal(t, "/customers", call.path)
	assert.Equal(t, "search=x&status=active", call.query)
}

func TestRequestIDIsForwarded(t *testing.T) {
	p := newTestPortal(t)
	token := p.adminToken(t)

	req := authedRequest(stdhttp.MethodGet, "/devices/d-1", token, nil)
	req.Header.Set("X-Request-ID", "trace-77")
	resp, _ := p.do(t, req)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "trace-77", resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "trace-77", p.upstream.last(t).header.Get("X-Request-ID"))
}

func TestSessionCookieAuthenticates(t *testing.T) {
	p := newTestPortal(t)
	token := p.adminToken(t)

	req := httptest.NewRequest(stdhttp.MethodGet, "/auth/me", nil)
	req.AddCookie(&stdhttp.Cookie{Name: auth.SessionCookieName, Value: token})
	resp, body := p.do(t, req)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"1","email":"admin@angelsense.com","name":"Admin User","role":"admin"}`, string(body))
}

func TestLogoutClearsCookie(t *testing.T) {
	p := newTestPortal(t)

	resp, _ := p.do(t, httptest.NewRequest(stdhttp.MethodPost, "/auth/logout", nil))
	assert.Equal(t, stdhttp.StatusNoContent, resp.StatusCode)
	require.NotEmpty(t, resp.Cookies())
	cleared := resp.Cookies()[0]
	assert.Equal(t, auth.SessionCookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()), "cookie must already be expired")
}

func TestInvalidFiltersRejected(t *testing.T) {
	p := newTestPortal(t)
	token := p.adminToken(t)

	cases := map[string]string{
		"/tickets?status=done":       "status",
		"/tickets?category=hardware": "category",
		"/tickets?priority=p1":       "priority",
		"/customers?status=gone":     "status",
		"/devices?status=broken":     "status",
		"/customers?page=abc":        "page",
		"/devices?limit=-1":          "limit",
	}
	before := p.upstream.count()
	for target, field := range cases {
		resp, body := p.do(t, authedRequest(stdhttp.MethodGet, target, token, nil))
		assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode, target)
		errBody := decodeError(t, body)
		assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
		assert.Contains(t, errBody["details"], field, target)
	}
	assert.Equal(t, before, p.upstream.count())
}

func TestUpdateTicketForwardsOnlyFields(t *testing.T) {
	p := newTestPortal(t)
	token := p.adminToken(t)

	req := authedRequest(stdhttp.MethodPatch, "/tickets/t-1", token, strings.NewReader(`{"id":"t-1","status":"resolved"}`))
	resp, body := p.do(t, req)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"t-1","status":"resolved"}`, string(body))

	call := p.upstream.last(t)
	assert.Equal(t, stdhttp.MethodPatch, call.method)
	assert.Equal(t, "/tickets/t-1", call.path)
	assert.JSONEq(t, `{"status":"resolved"}`, call.body)

	require.Len(t, *p.audit, 1)
	assert.Equal(t, "1", (*p.audit)[0].Actor.UserID)
}

func TestUpdateTicketRejectsEmptyPatch(t *testing.T) {
	p := newTestPortal(t)
	token := p.adminToken(t)

	resp, _ := p.do(t, authedRequest(stdhttp.MethodPatch, "/tickets/t-1", token, strings.NewReader(`{}`)))
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, p.upstream.count())
}

func TestUpstreamFailureMapsTo502(t *testing.T) {
	p := newTestPortal(t)
	token := p.adminToken(t)

	resp, body := p.do(t, authedRequest(stdhttp.MethodGet, "/tickets/missing", token, nil))
	assert.Equal(t, stdhttp.StatusBadGateway, resp.StatusCode)
	errBody := decodeError(t, body)
	assert.Equal(t, "UPSTREAM_ERROR", errBody["code"])
	assert.Contains(t, errBody["message"], "Not Found")
	assert.EqualValues(t, 404, errBody["details"].(map[string]any)["upstreamStatus"])
}

func TestUpstreamUnreachableMapsTo502(t *testing.T) {
	p := newTestPortal(t)
	token := p.adminToken(t)
	p.server.Close()

	resp, body := p.do(t, authedRequest(stdhttp.MethodGet, "/customers", token, nil))
	assert.Equal(t, stdhttp.StatusBadGateway, resp.StatusCode)
	errBody := decodeError(t, body)
	assert.Equal(t, "UPSTREAM_ERROR", errBody["code"])
	assert.Nil(t, errBody["details"])
}

func TestHealthRoute(t *testing.T) {
	p := newTestPortal(t)

	resp, body := p.do(t, httptest.NewRequest(stdhttp.MethodGet, "/health", nil))
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	var status map[string]any
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "online", status["status"])
	assert.NotEmpty(t, status["timestamp"])

	p.server.Close()
	resp, body = p.do(t, httptest.NewRequest(stdhttp.MethodGet, "/health", nil))
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "offline", status["status"])
}

func TestReadyWithoutBackends(t *testing.T) {
	p := newTestPortal(t)

	resp, body := p.do(t, httptest.NewRequest(stdhttp.MethodGet, "/health/ready", nil))
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ready","dependencies":{}}`, string(body))
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	p := newTestPortal(t)

	resp, body := p.do(t, httptest.NewRequest(stdhttp.MethodGet, "/nope", nil))
	assert.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body)["code"])
}

func TestMetricsEndpoint(t *testing.T) {
	p := newTestPortal(t)
	p.adminToken(t)

	resp, body := p.do(t, httptest.NewRequest(stdhttp.MethodGet, "/metrics", nil))
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "portal_login_attempts_total")
	assert.Contains(t, string(body), "portal_http_requests_total")
}

func TestAuditRouteRequiresAdminOrManager(t *testing.T) {
	p := newTestPortal(t)

	resp, body := p.login(t, "support@angelsense.com", "support123")
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	supportToken := body["token"].(string)

	resp, _ = p.do(t, authedRequest(stdhttp.MethodGet, "/audit", supportToken, nil))
	assert.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)

	resp, raw := p.do(t, authedRequest(stdhttp.MethodGet, "/audit?limit=10", p.adminToken(t), nil))
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"events":[]}`, string(raw))
}
