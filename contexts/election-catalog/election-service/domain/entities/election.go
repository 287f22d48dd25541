package entities

import "time"

// Election is the administrative grouping that owns customer assignments,
// form attachments, and webhook subscriptions.
type Election struct {
	ElectionID string
	Name       string
	Type       string
	State      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Customer struct {
	CustomerID string
	Name       string
	CreatedAt  time.Time
}
