package model

import "time"

// Project statuses
const (
	ProjectStatusOpen      = "open"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

// Project represents a collection of tasks owned by a single user
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidProjectStatus reports whether s is a known project status
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}
