package domain

// Principal is the authenticated identity derived from a verified session token.
// It lives for the duration of one request.
type Principal struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}
