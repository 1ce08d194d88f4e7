package domain

// DeviceStatus mirrors the upstream device states.
type DeviceStatus string

const (
	DeviceStatusActive      DeviceStatus = "active"
	DeviceStatusInactive    DeviceStatus = "inactive"
	DeviceStatusLost        DeviceStatus = "lost"
	DeviceStatusMaintenance DeviceStatus = "maintenance"
)

// Valid reports whether s is a known device status.
func (s DeviceStatus) Valid() bool {
	switch s {
	case DeviceStatusActive, DeviceStatusInactive, DeviceStatusLost, DeviceStatusMaintenance:
		return true
	}
	return false
}

// DeviceFilter narrows a device listing. Zero values are not sent upstream.
type DeviceFilter struct {
	CustomerID string
	Status     DeviceStatus
	Page       int
	Limit      int
}
