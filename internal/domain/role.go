package domain

// Role enumerates admin portal roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSupport Role = "support"
	RoleManager Role = "manager"
)

// DefaultRole is granted when a token carries no role.
const DefaultRole = RoleSupport

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupport, RoleManager:
		return true
	}
	return false
}
