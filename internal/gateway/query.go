package gateway

import (
	"net/url"
	"strconv"

	"github.com/spec-kit/admin-portal/internal/domain"
)

// Query builders send only the fields the caller set. Absence and an
// empty value mean different things to the upstream API.

func customerQuery(f domain.CustomerFilter) url.Values {
	q := url.Values{}
	setInt(q, "page", f.Page)
	setInt(q, "limit", f.Limit)
	setString(q, "search", f.Search)
	setString(q, "status", string(f.Status))
	return q
}

func deviceQuery(f domain.DeviceFilter) url.Values {
	q := url.Values{}
	setString(q, "customerId", f.CustomerID)
	setString(q, "status", string(f.Status))
	setInt(q, "page", f.Page)
	setInt(q, "limit", f.Limit)
	return q
}

func ticketQuery(f domain.TicketFilter) url.Values {
	q := url.Values{}
	setInt(q, "page", f.Page)
	setInt(q, "limit", f.Limit)
	setString(q, "status", string(f.Status))
	setString(q, "priority", string(f.Priority))
	setString(q, "category", string(f.Category))
	setString(q, "assignedTo", f.AssignedTo)
	return q
}

func setString(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

func setInt(q url.Values, key string, val int) {
	if val > 0 {
		q.Set(key, strconv.Itoa(val))
	}
}
