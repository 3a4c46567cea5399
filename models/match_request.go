package models

import "time"

type MatchRequestStatus string

const (
	RequestStatusPending   MatchRequestStatus = "pending"
	RequestStatusAccepted  MatchRequestStatus = "accepted"
	RequestStatusRejected  MatchRequestStatus = "rejected"
	RequestStatusCancelled MatchRequestStatus = "cancelled"
)

type MatchRequest struct {
	ID               string             `json:"id"`
	RequesterTeamID  string             `json:"requester_team_id"`
	RequestedTeamID  string             `json:"requested_team_id"`
	Status           MatchRequestStatus `json:"status"`
	ProposedDate     *time.Time         `json:"proposed_date,omitempty"`
	ProposedTime     *string            `json:"proposed_time,omitempty"`
	ProposedLocation *string            `json:"proposed_location,omitempty"`
	Notes            *string            `json:"notes,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	RequesterTeam *Team `json:"requester_team,omitempty"`
	RequestedTeam *Team `json:"requested_team,omitempty"`
}
