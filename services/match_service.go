package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shoaibhussa1n/Futsal-Connect/live"
	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
)

// ScorerInput is one goal-scorer line of a result submission. Lines may
// reference either match party: the submitting team's lines are persisted,
// the opponent's lines only participate in total validation.
type ScorerInput struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Goals    int    `json:"goals"`
}

// SubmitResultInput is one team's report of the final result.
type SubmitResultInput struct {
	TeamID      string        `json:"team_id"`
	TeamAScore  int           `json:"team_a_score"`
	TeamBScore  int           `json:"team_b_score"`
	Scorers     []ScorerInput `json:"scorers"`
	MVPPlayerID *string       `json:"mvp_player_id"`
}

type MatchService interface {
	Create(ctx context.Context, match *models.Match) (*models.Match, error)
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error)
	ListScorers(ctx context.Context, matchID string) ([]*models.GoalScorer, error)
	Cancel(ctx context.Context, playerID, matchID string) error

	// SubmitResult records one team's report of the final result on behalf
	// of its captain. The first accepted submission stores the scores and
	// the second matching one verifies the result, which triggers the
	// rating updates and the completed status exactly once.
	SubmitResult(ctx context.Context, playerID, matchID string, input SubmitResultInput) (*models.Match, error)
}

type matchService struct {
	db            *sql.DB
	matchRepo     repositories.MatchRepository
	scorerRepo    repositories.GoalScorerRepository
	teamRepo      repositories.TeamRepository
	ratingService RatingService
	hub           *live.Hub
	logger        *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	scorerRepo repositories.GoalScorerRepository,
	teamRepo repositories.TeamRepository,
	ratingService RatingService,
	hub *live.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:            db,
		matchRepo:     matchRepo,
		scorerRepo:    scorerRepo,
		teamRepo:      teamRepo,
		ratingService: ratingService,
		hub:           hub,
		logger:        logger,
	}
}

func (s *matchService) Create(ctx context.Context, match *models.Match) (*models.Match, error) {
	if match.TeamAID == "" || match.TeamBID == "" {
		return nil, ErrValidationFailed
	}
	if match.TeamAID == match.TeamBID {
		return nil, ErrSelfMatchRequest
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("creating match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("fetching match %s: %w", id, err)
	}
	s.attachTeams(ctx, match)
	return match, nil
}

func (s *matchService) List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	return s.matchRepo.List(ctx, filter)
}

func (s *matchService) ListScorers(ctx context.Context, matchID string) ([]*models.GoalScorer, error) {
	if _, err := s.GetByID(ctx, matchID); err != nil {
		return nil, err
	}
	return s.scorerRepo.ListByMatch(ctx, nil, matchID)
}

func (s *matchService) Cancel(ctx context.Context, playerID, matchID string) error {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("fetching match %s: %w", matchID, err)
	}
	if match.VerifiedResult {
		return ErrMatchAlreadyVerified
	}
	if err := s.authorizeCaptainOfParty(ctx, playerID, match); err != nil {
		return err
	}
	return s.matchRepo.UpdateStatus(ctx, matchID, models.MatchStatusCancelled)
}

func (s *matchService) SubmitResult(ctx context.Context, playerID, matchID string, input SubmitResultInput) (*models.Match, error) {
	if input.TeamAScore < 0 || input.TeamBScore < 0 {
		return nil, ErrInvalidScore
	}

	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("fetching match %s: %w", matchID, err)
	}

	if !match.HasTeam(input.TeamID) {
		return nil, ErrInvalidParty
	}
	if match.Status == models.MatchStatusCancelled {
		return nil, ErrMatchCancelled
	}
	if match.VerifiedResult {
		return nil, ErrMatchAlreadyVerified
	}
	if err := s.authorizeCaptain(ctx, playerID, input.TeamID); err != nil {
		return nil, err
	}

	opponentID := match.OpponentOf(input.TeamID)
	ownScorers, opponentGoals, counted, err := s.splitScorers(match, input)
	if err != nil {
		return nil, err
	}

	// When the payload carries no opponent lines the opponent's stored
	// rows stand in for the validation, counting as zero if absent.
	if !counted {
		stored, listErr := s.scorerRepo.ListByMatch(ctx, nil, matchID)
		if listErr != nil {
			return nil, fmt.Errorf("loading scorers for match %s: %w", matchID, listErr)
		}
		for _, scorer := range stored {
			if scorer.TeamID == opponentID {
				opponentGoals += scorer.Goals
			}
		}
	}

	ownGoals := 0
	for _, scorer := range ownScorers {
		ownGoals += scorer.Goals
	}
	if ownGoals+opponentGoals != input.TeamAScore+input.TeamBScore {
		return nil, ErrScoreMismatch
	}

	// Pre-check against the opponent's stored scores. The conditional
	// update enforces the same rule atomically; this just produces the
	// precise error without burning a transaction.
	if match.SubmittedBy(opponentID) && !storedScoresEqual(match, input.TeamAScore, input.TeamBScore) {
		return nil, ErrScoresDoNotMatch
	}

	updated, err := s.submitInTx(ctx, match, input, ownScorers)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchSubmitRejected) {
			return nil, s.classifyRejection(ctx, matchID)
		}
		return nil, err
	}

	if updated.VerifiedResult {
		s.finalize(ctx, updated)
		s.hub.BroadcastToRoom(updated.ID, live.Event{Type: live.EventMatchVerified, Payload: updated})
	} else {
		s.hub.BroadcastToRoom(updated.ID, live.Event{Type: live.EventResultSubmitted, Payload: updated})
	}

	s.attachTeams(ctx, updated)
	return updated, nil
}

// splitScorers validates the payload lines and separates them into the
// submitting team's rows, which get persisted, and the opponent's goal
// total, which is validation-only.
func (s *matchService) splitScorers(match *models.Match, input SubmitResultInput) ([]*models.GoalScorer, int, bool, error) {
	ownScorers := make([]*models.GoalScorer, 0, len(input.Scorers))
	opponentGoals := 0
	opponentCounted := false
	seen := make(map[string]bool, len(input.Scorers))

	for _, line := range input.Scorers {
		if !match.HasTeam(line.TeamID) {
			return nil, 0, false, ErrInvalidParty
		}
		if line.Goals < 1 || line.PlayerID == "" {
			return nil, 0, false, ErrValidationFailed
		}
		if seen[line.PlayerID] {
			return nil, 0, false, ErrValidationFailed
		}
		seen[line.PlayerID] = true

		if line.TeamID == input.TeamID {
			ownScorers = append(ownScorers, &models.GoalScorer{
				MatchID:  match.ID,
				PlayerID: line.PlayerID,
				TeamID:   line.TeamID,
				Goals:    line.Goals,
			})
		} else {
			opponentGoals += line.Goals
			opponentCounted = true
		}
	}
	return ownScorers, opponentGoals, opponentCounted, nil
}

// submitInTx replaces the submitting team's scorer rows and performs the
// guarded result update in one transaction, so a rejected update leaves the
// previous scorer set intact.
func (s *matchService) submitInTx(ctx context.Context, match *models.Match, input SubmitResultInput, ownScorers []*models.GoalScorer) (*models.Match, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting submission transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.scorerRepo.ReplaceForTeam(ctx, tx, match.ID, input.TeamID, ownScorers); err != nil {
		if errors.Is(err, repositories.ErrGoalScorerInvalid) {
			return nil, ErrValidationFailed
		}
		return nil, fmt.Errorf("replacing scorers for match %s: %w", match.ID, err)
	}

	updated, err := s.matchRepo.SubmitTeamResult(ctx, tx, repositories.ResultSubmission{
		MatchID:     match.ID,
		AsTeamA:     input.TeamID == match.TeamAID,
		TeamAScore:  input.TeamAScore,
		TeamBScore:  input.TeamBScore,
		MVPPlayerID: input.MVPPlayerID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing submission for match %s: %w", match.ID, err)
	}
	return updated, nil
}

// classifyRejection re-reads the match to turn the guard's zero-row outcome
// into the caller-facing error. A concurrent submission may have verified
// the match between our read and the update.
func (s *matchService) classifyRejection(ctx context.Context, matchID string) error {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("classifying rejected submission for match %s: %w", matchID, err)
	}
	if match.VerifiedResult {
		return ErrMatchAlreadyVerified
	}
	return ErrScoresDoNotMatch
}

// finalize runs the rating updater for a submission that completed
// verification. The guard guarantees only one submission per match observes
// this transition.
func (s *matchService) finalize(ctx context.Context, match *models.Match) {
	scorers, err := s.scorerRepo.ListByMatch(ctx, nil, match.ID)
	if err != nil {
		s.logger.Error("loading scorers for finalization failed", "match_id", match.ID, "error", err)
		scorers = nil
	}
	s.ratingService.FinalizeMatch(ctx, match, scorers)
}

func (s *matchService) authorizeCaptain(ctx context.Context, playerID, teamID string) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("fetching team %s: %w", teamID, err)
	}
	if team.CaptainID != playerID {
		return ErrCaptainActionForbidden
	}
	return nil
}

func (s *matchService) authorizeCaptainOfParty(ctx context.Context, playerID string, match *models.Match) error {
	for _, teamID := range []string{match.TeamAID, match.TeamBID} {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				continue
			}
			return fmt.Errorf("fetching team %s: %w", teamID, err)
		}
		if team.CaptainID == playerID {
			return nil
		}
	}
	return ErrCaptainActionForbidden
}

func (s *matchService) attachTeams(ctx context.Context, match *models.Match) {
	if teamA, err := s.teamRepo.GetByID(ctx, match.TeamAID); err == nil {
		match.TeamA = teamA
	}
	if teamB, err := s.teamRepo.GetByID(ctx, match.TeamBID); err == nil {
		match.TeamB = teamB
	}
}

func storedScoresEqual(match *models.Match, teamAScore, teamBScore int) bool {
	if match.TeamAScore == nil || match.TeamBScore == nil {
		return false
	}
	return *match.TeamAScore == teamAScore && *match.TeamBScore == teamBScore
}
