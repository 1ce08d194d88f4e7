package domain

// CustomerStatus mirrors the upstream subscription states.
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusInactive  CustomerStatus = "inactive"
	CustomerStatusSuspended CustomerStatus = "suspended"
)

// Valid reports whether s is a known customer status.
func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusSuspended:
		return true
	}
	return false
}

// CustomerFilter narrows a customer listing. Zero values are not sent upstream.
type CustomerFilter struct {
	Page   int
	Limit  int
	Search string
	Status CustomerStatus
}
