package dto

import (
	"time"

	"github.com/spec-kit/admin-portal/internal/domain"
)

// LoginRequest payload for operator login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned alongside the session cookie.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      domain.Principal `json:"user"`
}
