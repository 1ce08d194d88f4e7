package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal/internal/auth"
	"github.com/spec-kit/admin-portal/internal/domain"
	"github.com/spec-kit/admin-portal/internal/events"
	"github.com/spec-kit/admin-portal/internal/observability"
	"github.com/spec-kit/admin-portal/internal/repository"
)

// ErrLoginThrottled is returned once an email exhausts its failed attempts.
var ErrLoginThrottled = errors.New("too many failed login attempts")

// Login outcomes as recorded in metrics.
const (
	loginOutcomeSuccess   = "success"
	loginOutcomeFailure   = "failure"
	loginOutcomeThrottled = "throttled"
)

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal domain.Principal
}

// AuthService authenticates operators and issues session tokens.
type AuthService struct {
	lookup     repository.PrincipalLookup
	tokens     *auth.TokenManager
	limiter    auth.LoginLimiter
	decoy      *auth.DecoyHash
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	Lookup     repository.PrincipalLookup
	Tokens     *auth.TokenManager
	Limiter    auth.LoginLimiter
	Dispatcher events.Dispatcher
	// BcryptCost must match the cost of the stored password hashes.
	BcryptCost int
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAuthService builds the service. Limiter, dispatcher and logger are optional.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	decoy, err := auth.NewDecoyHash(deps.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("build decoy hash: %w", err)
	}
	s := &AuthService{
		decoy:      decoy,
		lookup:     deps.Lookup,
		tokens:     deps.Tokens,
		limiter:    deps.Limiter,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
	if s.limiter == nil {
		s.limiter = auth.NoopLoginLimiter{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// TokenManager exposes the token manager for the auth middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login checks the credentials and issues a 24h token. Unknown email,
// wrong password and inactive account all yield auth.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)

	allowed, err := s.limiter.Reserve(ctx, email)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
		allowed = true
	}
	if !allowed {
		s.metrics.RecordLogin(loginOutcomeThrottled)
		s.publishEvent(ctx, events.NewEvent(events.EventLoginThrottled, events.Actor{},
			events.LoginAttemptPayload{Email: email}))
		return nil, ErrLoginThrottled
	}

	user, err := s.lookup.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			s.decoy.Burn(password)
			return nil, s.rejectLogin(ctx, email, "unknown email")
		}
		return nil, fmt.Errorf("lookup admin user: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, s.rejectLogin(ctx, email, "wrong password")
	}
	if !user.Active {
		return nil, s.rejectLogin(ctx, email, "inactive account")
	}

	principal := user.Principal()
	token, exp, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.logger.Warn("reset login throttle", zap.Error(err))
	}
	s.metrics.RecordLogin(loginOutcomeSuccess)
	s.publishEvent(ctx, events.NewEvent(events.EventLoginSucceeded, events.ActorFromPrincipal(principal),
		events.LoginAttemptPayload{Email: email}))

	return &LoginResult{Token: token, ExpiresAt: exp, Principal: principal}, nil
}

func (s *AuthService) rejectLogin(ctx context.Context, email, reason string) error {
	s.metrics.RecordLogin(loginOutcomeFailure)
	s.publishEvent(ctx, events.NewEvent(events.EventLoginFailed, events.Actor{},
		events.LoginAttemptPayload{Email: email, Reason: reason}))
	return auth.ErrInvalidCredentials
}

func (s *AuthService) publishEvent(ctx context.Context, evt events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish event", zap.String("type", string(evt.Type)), zap.Error(err))
	}
}
