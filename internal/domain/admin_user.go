package domain

import "time"

// AdminUser is a portal operator able to log in.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal projects the user into the identity carried by a session token.
func (u *AdminUser) Principal() Principal {
	return Principal{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
