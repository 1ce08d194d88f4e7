package domain

import "time"

// UpstreamState is the reachability of the device-management API.
type UpstreamState string

const (
	UpstreamOnline  UpstreamState = "online"
	UpstreamOffline UpstreamState = "offline"
)

// HealthStatus is reported by the upstream health probe.
type HealthStatus struct {
	Status    UpstreamState `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}
