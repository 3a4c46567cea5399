package models

import "time"

type TournamentStatus string

const (
	TournamentStatusPendingApproval TournamentStatus = "pending_approval"
	TournamentStatusOpen            TournamentStatus = "open"
	TournamentStatusFilling         TournamentStatus = "filling"
	TournamentStatusInProgress      TournamentStatus = "in_progress"
	TournamentStatusCompleted       TournamentStatus = "completed"
	TournamentStatusCancelled       TournamentStatus = "cancelled"
)

type OrganizerType string

const (
	OrganizerTeam       OrganizerType = "team"
	OrganizerIndividual OrganizerType = "individual"
)

type Tournament struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	OrganizerID   string           `json:"organizer_id"`
	OrganizerType OrganizerType    `json:"organizer_type"`
	Status        TournamentStatus `json:"status"`
	Fee           float64          `json:"fee"`
	Prize         string           `json:"prize"`
	StartDate     time.Time        `json:"start_date"`
	MaxTeams      int              `json:"max_teams"`
	CurrentTeams  int              `json:"current_teams"`
	Format        string           `json:"format"`
	Description   *string          `json:"description,omitempty"`
	AdminApproved bool             `json:"admin_approved"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusApproved RegistrationStatus = "approved"
	RegistrationStatusRejected RegistrationStatus = "rejected"
)

type TournamentRegistration struct {
	ID           string             `json:"id"`
	TournamentID string             `json:"tournament_id"`
	TeamID       *string            `json:"team_id,omitempty"`
	PlayerID     *string            `json:"player_id,omitempty"`
	Status       RegistrationStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}
