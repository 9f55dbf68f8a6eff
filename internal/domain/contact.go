package domain

import "time"

// ContactStatus enumerates processing states for a contact submission.
type ContactStatus string

const (
	ContactStatusPending    ContactStatus = "pending"
	ContactStatusInProgress ContactStatus = "in-progress"
	ContactStatusResolved   ContactStatus = "resolved"
	ContactStatusClosed     ContactStatus = "closed"
)

// ValidContactStatuses lists the accepted status values in display order.
var ValidContactStatuses = []ContactStatus{
	ContactStatusPending,
	ContactStatusInProgress,
	ContactStatusResolved,
	ContactStatusClosed,
}

// IsValidContactStatus reports whether s is one of the enumerated values.
func IsValidContactStatus(s ContactStatus) bool {
	for _, v := range ValidContactStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Contact is a contact-form submission.
type Contact struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Subject     string        `json:"subject"`
	Message     string        `json:"message"`
	SubmittedAt time.Time     `json:"submittedAt"`
	Status      ContactStatus `json:"status"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

// ContactStats aggregates submission counts per status.
type ContactStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}
