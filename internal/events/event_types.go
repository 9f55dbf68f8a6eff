package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated         EventType = "user_created"
	EventUserUpdated         EventType = "user_updated"
	EventUserDeleted         EventType = "user_deleted"
	EventUserAccessed        EventType = "user_accessed"
	EventUserSearch          EventType = "user_search"
	EventStatsAccessed       EventType = "stats_accessed"
	EventDepartmentAccessed  EventType = "department_accessed"
	EventActiveUsersAccessed EventType = "active_users_accessed"
	EventAPIAccessed         EventType = "api_accessed"
)

// Event represents an action emitted by controllers after a successful
// operation. Message is the human-readable summary forwarded to the
// notification channel.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
