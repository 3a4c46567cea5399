package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusConfirmed MatchStatus = "confirmed"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

type Match struct {
	ID            string      `json:"id"`
	TeamAID       string      `json:"team_a_id"`
	TeamBID       string      `json:"team_b_id"`
	Status        MatchStatus `json:"status"`
	ScheduledDate *time.Time  `json:"scheduled_date,omitempty"`
	ScheduledTime *string     `json:"scheduled_time,omitempty"`
	Location      *string     `json:"location,omitempty"`

	TeamAScore *int `json:"team_a_score,omitempty"`
	TeamBScore *int `json:"team_b_score,omitempty"`

	TeamAResultSubmitted bool       `json:"team_a_result_submitted"`
	TeamBResultSubmitted bool       `json:"team_b_result_submitted"`
	TeamASubmittedAt     *time.Time `json:"team_a_submitted_at,omitempty"`
	TeamBSubmittedAt     *time.Time `json:"team_b_submitted_at,omitempty"`
	VerifiedResult       bool       `json:"verified_result"`

	MVPPlayerID *string   `json:"mvp_player_id,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	TeamA *Team   `json:"team_a,omitempty"`
	TeamB *Team   `json:"team_b,omitempty"`
	MVP   *Player `json:"mvp,omitempty"`
}

// HasTeam reports whether teamID is one of the match parties.
func (m *Match) HasTeam(teamID string) bool {
	return teamID == m.TeamAID || teamID == m.TeamBID
}

// OpponentOf returns the other party of the match. The caller must have
// checked HasTeam first.
func (m *Match) OpponentOf(teamID string) string {
	if teamID == m.TeamAID {
		return m.TeamBID
	}
	return m.TeamAID
}

// SubmittedBy reports whether the given party has already submitted a result.
func (m *Match) SubmittedBy(teamID string) bool {
	if teamID == m.TeamAID {
		return m.TeamAResultSubmitted
	}
	return m.TeamBResultSubmitted
}

type GoalScorer struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	PlayerID  string    `json:"player_id"`
	TeamID    string    `json:"team_id"`
	Goals     int       `json:"goals"`
	CreatedAt time.Time `json:"created_at"`

	Player *Player `json:"player,omitempty"`
}
