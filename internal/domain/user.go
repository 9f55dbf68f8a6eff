package domain

import "time"

// UserStatus represents lifecycle states for a directory user.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is the domain model for directory records.
type User struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Age        int        `json:"age"`
	Department string     `json:"department"`
	Status     UserStatus `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// UserPatch carries a partial update; nil fields are left untouched.
// ID and CreatedAt are never patchable.
type UserPatch struct {
	Name       *string     `json:"name"`
	Email      *string     `json:"email"`
	Age        *int        `json:"age"`
	Department *string     `json:"department"`
	Status     *UserStatus `json:"status"`
}

// UserFilter narrows user lookups. Department and Email are matched as
// case-insensitive substrings, Status exactly.
type UserFilter struct {
	Department string
	Status     UserStatus
	Email      string
}

// AgeStats summarizes user ages.
type AgeStats struct {
	Average int `json:"average"`
	Min     int `json:"min"`
	Max     int `json:"max"`
}

// UserStats aggregates directory-wide counts.
type UserStats struct {
	Total       int            `json:"total"`
	Active      int            `json:"active"`
	Inactive    int            `json:"inactive"`
	Recent      int            `json:"recent"`
	Departments map[string]int `json:"departments"`
	Age         AgeStats       `json:"age"`
	GeneratedAt time.Time      `json:"generatedAt"`
}
