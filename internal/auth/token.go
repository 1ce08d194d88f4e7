package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/admin-portal/internal/domain"
)

// TokenTTL is the lifetime of every session token.
const TokenTTL = 24 * time.Hour

// TokenManager issues and verifies session tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, opts ...TokenOption) *TokenManager {
	tm := &TokenManager{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// Claims describes the session token payload.
type Claims struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token for the principal, valid for TokenTTL from now.
func (tm *TokenManager) Issue(p domain.Principal) (string, time.Time, error) {
	issuedAt := tm.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(TokenTTL)
	claims := &Claims{
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Verify validates a token and returns the principal it carries.
func (tm *TokenManager) Verify(tokenStr string) (*domain.Principal, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}
	if strings.Count(tokenStr, ".") != 2 {
		return nil, ErrMalformedToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	role := claims.Role
	if role == "" {
		role = domain.DefaultRole
	}
	if !role.Valid() || claims.Subject == "" {
		return nil, ErrMalformedToken
	}

	return &domain.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   role,
	}, nil
}
