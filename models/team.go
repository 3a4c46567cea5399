package models

import "time"

type Team struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CaptainID  string    `json:"captain_id"`
	AgeGroup   string    `json:"age_group"`
	TeamLevel  int       `json:"team_level"`
	Rating     float64   `json:"rating"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	Draws      int       `json:"draws"`
	TotalGoals int       `json:"total_goals"`
	TotalMVPs  int       `json:"total_mvps"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`

	Captain *Profile     `json:"captain,omitempty"`
	Members []TeamMember `json:"members,omitempty"`
}

type TeamMemberRole string

const (
	TeamRoleCaptain TeamMemberRole = "captain"
	TeamRoleMember  TeamMemberRole = "member"
)

type TeamMember struct {
	ID       string         `json:"id"`
	TeamID   string         `json:"team_id"`
	PlayerID string         `json:"player_id"`
	Role     TeamMemberRole `json:"role"`
	JoinedAt time.Time      `json:"joined_at"`

	Player *Player `json:"player,omitempty"`
}
