package models

import "time"

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on_hold"
)

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ClientID    string    `json:"client_id"`
	Description *string   `json:"description"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	Status      string    `json:"status"`
	Budget      *float64  `json:"budget"`
	TeamMembers []string  `json:"team_members"`
	CreatedAt   time.Time `json:"created_at"`
}
