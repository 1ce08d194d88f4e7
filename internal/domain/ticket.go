package domain

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether s is a known ticket status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates ticket urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// TicketCategory groups tickets by topic.
type TicketCategory string

const (
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategoryBilling   TicketCategory = "billing"
	TicketCategoryGeneral   TicketCategory = "general"
	TicketCategoryDevice    TicketCategory = "device"
)

// Valid reports whether c is a known category.
func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryTechnical, TicketCategoryBilling, TicketCategoryGeneral, TicketCategoryDevice:
		return true
	}
	return false
}

// TicketFilter narrows a ticket listing. Zero values are not sent upstream.
type TicketFilter struct {
	Page       int
	Limit      int
	Status     TicketStatus
	Priority   TicketPriority
	Category   TicketCategory
	AssignedTo string
}

// TicketUpdate carries only the fields an operator changed.
// The ticket id travels in the path, never in the body.
type TicketUpdate struct {
	Status     *TicketStatus   `json:"status,omitempty"`
	Priority   *TicketPriority `json:"priority,omitempty"`
	AssignedTo *string         `json:"assignedTo,omitempty"`
}

// Empty reports whether no field was supplied.
func (u TicketUpdate) Empty() bool {
	return u.Status == nil && u.Priority == nil && u.AssignedTo == nil
}

// ChangedFields lists the supplied field names.
func (u TicketUpdate) ChangedFields() []string {
	fields := make([]string, 0, 3)
	if u.Status != nil {
		fields = append(fields, "status")
	}
	if u.Priority != nil {
		fields = append(fields, "priority")
	}
	if u.AssignedTo != nil {
		fields = append(fields, "assignedTo")
	}
	return fields
}
