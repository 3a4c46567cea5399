package models

import "time"

type Player struct {
	ID               string   `json:"id"`
	ProfileID        string   `json:"profile_id"`
	Position         *string  `json:"position,omitempty"`
	SkillLevel       int      `json:"skill_level"`
	Age              *int     `json:"age,omitempty"`
	City             string   `json:"city"`
	AvailabilityDays []string `json:"availability_days"`
	PreferredTime    *string  `json:"preferred_time,omitempty"`
	Bio              *string  `json:"bio,omitempty"`

	MatchesPlayed int     `json:"matches_played"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	MVPs          int     `json:"mvps"`
	Rating        float64 `json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PhotoKey *string `json:"-"`
	PhotoURL *string `json:"photo_url,omitempty"`

	Profile *Profile `json:"profile,omitempty"`
}
