package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
)

// Rating deltas applied when a verified result is finalized. Player and
// team ratings are clamped to [1.0, 10.0] at the repository level.
const (
	winRatingDelta    = 0.3
	scorerRatingDelta = 0.3
	mvpRatingBonus    = 0.5
)

type RatingService interface {
	// FinalizeMatch applies rating and statistics updates for a match whose
	// result just became verified. It runs exactly once per match, invoked
	// by whichever submission completed verification. Updates are best
	// effort: a failing step is logged and skipped so one bad row never
	// blocks the submission response or the remaining updates.
	//
	// When the match has no manually chosen MVP, the top scorer is selected
	// and persisted; match.MVPPlayerID is updated in place.
	FinalizeMatch(ctx context.Context, match *models.Match, scorers []*models.GoalScorer)
}

type ratingService struct {
	matchRepo  repositories.MatchRepository
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	memberRepo repositories.MemberRepository
	logger     *slog.Logger
}

func NewRatingService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	memberRepo repositories.MemberRepository,
	logger *slog.Logger,
) RatingService {
	return &ratingService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

func (s *ratingService) FinalizeMatch(ctx context.Context, match *models.Match, scorers []*models.GoalScorer) {
	if match.TeamAScore == nil || match.TeamBScore == nil {
		s.logger.Error("finalize skipped, verified match has no scores", "match_id", match.ID)
		return
	}
	scoreA, scoreB := *match.TeamAScore, *match.TeamBScore

	s.updateTeamRecords(ctx, match, scoreA, scoreB)
	s.updateTeamGoals(ctx, match, scoreA, scoreB)
	s.updateScorers(ctx, match, scorers)
	s.resolveMVP(ctx, match, scorers)
	s.applyMVPBonus(ctx, match, scorers)

	s.logger.Info("match finalized",
		"match_id", match.ID,
		"team_a_score", scoreA,
		"team_b_score", scoreB,
		"mvp_player_id", match.MVPPlayerID,
	)
}

func (s *ratingService) updateTeamRecords(ctx context.Context, match *models.Match, scoreA, scoreB int) {
	switch {
	case scoreA > scoreB:
		s.recordOutcome(ctx, match.ID, match.TeamAID, 1, 0, 0, winRatingDelta)
		s.recordOutcome(ctx, match.ID, match.TeamBID, 0, 1, 0, -winRatingDelta)
	case scoreB > scoreA:
		s.recordOutcome(ctx, match.ID, match.TeamBID, 1, 0, 0, winRatingDelta)
		s.recordOutcome(ctx, match.ID, match.TeamAID, 0, 1, 0, -winRatingDelta)
	default:
		s.recordOutcome(ctx, match.ID, match.TeamAID, 0, 0, 1, 0)
		s.recordOutcome(ctx, match.ID, match.TeamBID, 0, 0, 1, 0)
	}
}

func (s *ratingService) recordOutcome(ctx context.Context, matchID, teamID string, wins, losses, draws int, ratingDelta float64) {
	if err := s.teamRepo.IncrementRecord(ctx, teamID, wins, losses, draws); err != nil {
		s.logger.Error("team record update failed", "match_id", matchID, "team_id", teamID, "error", err)
	}
	if ratingDelta == 0 {
		return
	}
	if err := s.teamRepo.AdjustRating(ctx, teamID, ratingDelta); err != nil {
		s.logger.Error("team rating update failed", "match_id", matchID, "team_id", teamID, "error", err)
	}
}

func (s *ratingService) updateTeamGoals(ctx context.Context, match *models.Match, scoreA, scoreB int) {
	if scoreA > 0 {
		if err := s.teamRepo.AddGoals(ctx, match.TeamAID, scoreA); err != nil {
			s.logger.Error("team goals update failed", "match_id", match.ID, "team_id", match.TeamAID, "error", err)
		}
	}
	if scoreB > 0 {
		if err := s.teamRepo.AddGoals(ctx, match.TeamBID, scoreB); err != nil {
			s.logger.Error("team goals update failed", "match_id", match.ID, "team_id", match.TeamBID, "error", err)
		}
	}
}

// updateScorers credits each scorer's career goals and applies the flat
// scorer rating bonus, once per match regardless of goal count.
func (s *ratingService) updateScorers(ctx context.Context, match *models.Match, scorers []*models.GoalScorer) {
	for _, scorer := range scorers {
		if err := s.playerRepo.AddGoalsAndRating(ctx, scorer.PlayerID, scorer.Goals, scorerRatingDelta); err != nil {
			s.logger.Error("scorer stats update failed",
				"match_id", match.ID, "player_id", scorer.PlayerID, "error", err)
		}
	}
}

// resolveMVP selects the top scorer when no MVP was chosen manually. Ties
// break on goals descending, then lowest player id, so both submissions
// would have agreed on the same pick.
func (s *ratingService) resolveMVP(ctx context.Context, match *models.Match, scorers []*models.GoalScorer) {
	if match.MVPPlayerID != nil || len(scorers) == 0 {
		return
	}

	best := scorers[0]
	for _, scorer := range scorers[1:] {
		if scorer.Goals > best.Goals || (scorer.Goals == best.Goals && scorer.PlayerID < best.PlayerID) {
			best = scorer
		}
	}

	if err := s.matchRepo.SetMVP(ctx, match.ID, best.PlayerID); err != nil {
		s.logger.Error("mvp assignment failed", "match_id", match.ID, "player_id", best.PlayerID, "error", err)
		return
	}
	mvpID := best.PlayerID
	match.MVPPlayerID = &mvpID
}

func (s *ratingService) applyMVPBonus(ctx context.Context, match *models.Match, scorers []*models.GoalScorer) {
	if match.MVPPlayerID == nil {
		return
	}
	mvpID := *match.MVPPlayerID

	if err := s.playerRepo.ApplyMVPBonus(ctx, mvpID, mvpRatingBonus); err != nil {
		s.logger.Error("mvp player bonus failed", "match_id", match.ID, "player_id", mvpID, "error", err)
	}

	teamID, err := s.mvpTeam(ctx, match, mvpID, scorers)
	if err != nil {
		s.logger.Warn("mvp team unresolved, team counter skipped",
			"match_id", match.ID, "player_id", mvpID, "error", err)
		return
	}
	if err := s.teamRepo.IncrementMVPs(ctx, teamID); err != nil {
		s.logger.Error("team mvp counter failed", "match_id", match.ID, "team_id", teamID, "error", err)
	}
}

// mvpTeam finds which match party the MVP played for: a scorer row wins,
// otherwise team membership decides.
func (s *ratingService) mvpTeam(ctx context.Context, match *models.Match, playerID string, scorers []*models.GoalScorer) (string, error) {
	for _, scorer := range scorers {
		if scorer.PlayerID == playerID {
			return scorer.TeamID, nil
		}
	}

	for _, teamID := range []string{match.TeamAID, match.TeamBID} {
		_, err := s.memberRepo.GetByTeamAndPlayer(ctx, teamID, playerID)
		if err == nil {
			return teamID, nil
		}
		if !errors.Is(err, repositories.ErrMemberNotFound) {
			return "", err
		}
	}
	return "", repositories.ErrMemberNotFound
}
