package models

import "time"

type InvitationType string

const (
	InvitationTypeTeam  InvitationType = "team"
	InvitationTypeMatch InvitationType = "match"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
)

type PlayerInvitation struct {
	ID             string           `json:"id"`
	TeamID         string           `json:"team_id"`
	PlayerID       string           `json:"player_id"`
	InvitationType InvitationType   `json:"invitation_type"`
	MatchID        *string          `json:"match_id,omitempty"`
	MatchFee       *float64         `json:"match_fee,omitempty"`
	Status         InvitationStatus `json:"status"`
	Message        *string          `json:"message,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	Team  *Team  `json:"team,omitempty"`
	Match *Match `json:"match,omitempty"`
}
