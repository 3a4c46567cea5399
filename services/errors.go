package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses in the handlers package.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Result submission workflow
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchCancelled       = errors.New("match has been cancelled")
	ErrMatchAlreadyVerified = errors.New("match result is already verified")
	ErrInvalidParty         = errors.New("submitting team is not part of this match")
	ErrInvalidScore         = errors.New("scores must be non-negative integers")
	ErrScoreMismatch        = errors.New("goal scorer totals do not match the submitted score")
	ErrScoresDoNotMatch     = errors.New("submitted scores do not match the opponent's submission")

	// Authorization / business rules
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrCaptainActionForbidden = errors.New("only the team captain can perform this action")

	// Entity lookups
	ErrProfileNotFound    = errors.New("profile not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrRequestNotFound    = errors.New("match request not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrInvitationNotFound = errors.New("invitation not found")

	// Conflicts
	ErrProfileExists          = errors.New("profile already exists for this user")
	ErrPlayerProfileExists    = errors.New("player profile already exists")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrMemberConflict         = errors.New("player is already a member of this team")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrRegistrationConflict   = errors.New("already registered for this tournament")

	// Matchmaking / tournament rules
	ErrTeamNameRequired     = errors.New("team name is required")
	ErrRequestNotPending    = errors.New("match request is no longer pending")
	ErrSelfMatchRequest     = errors.New("a team cannot request a match against itself")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrRegistrationNotOpen  = errors.New("tournament registration is not open")
	ErrTournamentFull       = errors.New("tournament registration is full")
)
