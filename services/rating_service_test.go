package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
)

type ratingFixture struct {
	matchRepo  *fakeMatchRepo
	teamRepo   *fakeTeamRepo
	playerRepo *fakePlayerRepo
	memberRepo *fakeMemberRepo
	service    RatingService
}

func newRatingFixture(t *testing.T) *ratingFixture {
	t.Helper()

	matchRepo := &fakeMatchRepo{}
	teamRepo := newFakeTeamRepo(
		&models.Team{ID: "team-a", Name: "Alpha"},
		&models.Team{ID: "team-b", Name: "Bravo"},
	)
	playerRepo := newFakePlayerRepo(
		&models.Player{ID: "p1"},
		&models.Player{ID: "p2"},
		&models.Player{ID: "p3"},
	)
	memberRepo := newFakeMemberRepo()

	return &ratingFixture{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		memberRepo: memberRepo,
		service:    NewRatingService(matchRepo, teamRepo, playerRepo, memberRepo, slog.Default()),
	}
}

func verifiedMatch(scoreA, scoreB int) *models.Match {
	return &models.Match{
		ID:             "match-1",
		TeamAID:        "team-a",
		TeamBID:        "team-b",
		Status:         models.MatchStatusCompleted,
		TeamAScore:     intPtr(scoreA),
		TeamBScore:     intPtr(scoreB),
		VerifiedResult: true,
	}
}

func TestFinalizeMatchWinnerAndLoser(t *testing.T) {
	fx := newRatingFixture(t)

	fx.service.FinalizeMatch(context.Background(), verifiedMatch(3, 1), nil)

	require.Len(t, fx.teamRepo.recordCalls, 2)
	assert.Equal(t, recordCall{teamID: "team-a", wins: 1}, fx.teamRepo.recordCalls[0])
	assert.Equal(t, recordCall{teamID: "team-b", losses: 1}, fx.teamRepo.recordCalls[1])

	require.Len(t, fx.teamRepo.ratingCalls, 2)
	assert.Equal(t, ratingCall{teamID: "team-a", delta: winRatingDelta}, fx.teamRepo.ratingCalls[0])
	assert.Equal(t, ratingCall{teamID: "team-b", delta: -winRatingDelta}, fx.teamRepo.ratingCalls[1])

	assert.Contains(t, fx.teamRepo.goalsCalls, goalsCall{teamID: "team-a", goals: 3})
	assert.Contains(t, fx.teamRepo.goalsCalls, goalsCall{teamID: "team-b", goals: 1})
}

func TestFinalizeMatchDraw(t *testing.T) {
	fx := newRatingFixture(t)

	fx.service.FinalizeMatch(context.Background(), verifiedMatch(2, 2), nil)

	require.Len(t, fx.teamRepo.recordCalls, 2)
	assert.Equal(t, recordCall{teamID: "team-a", draws: 1}, fx.teamRepo.recordCalls[0])
	assert.Equal(t, recordCall{teamID: "team-b", draws: 1}, fx.teamRepo.recordCalls[1])
	assert.Empty(t, fx.teamRepo.ratingCalls, "a draw moves no ratings")
}

func TestFinalizeMatchCreditsScorers(t *testing.T) {
	fx := newRatingFixture(t)
	match := verifiedMatch(2, 1)
	scorers := []*models.GoalScorer{
		{MatchID: "match-1", PlayerID: "p1", TeamID: "team-a", Goals: 2},
		{MatchID: "match-1", PlayerID: "p2", TeamID: "team-b", Goals: 1},
	}

	fx.service.FinalizeMatch(context.Background(), match, scorers)

	require.Len(t, fx.playerRepo.goalsCalls, 2)
	assert.Equal(t, playerGoalsCall{playerID: "p1", goals: 2, delta: scorerRatingDelta}, fx.playerRepo.goalsCalls[0])
	assert.Equal(t, playerGoalsCall{playerID: "p2", goals: 1, delta: scorerRatingDelta}, fx.playerRepo.goalsCalls[1])
}

func TestFinalizeMatchAutoSelectsTopScorerAsMVP(t *testing.T) {
	fx := newRatingFixture(t)
	match := verifiedMatch(3, 2)
	scorers := []*models.GoalScorer{
		{MatchID: "match-1", PlayerID: "p2", TeamID: "team-b", Goals: 2},
		{MatchID: "match-1", PlayerID: "p1", TeamID: "team-a", Goals: 3},
	}

	fx.service.FinalizeMatch(context.Background(), match, scorers)

	require.NotNil(t, match.MVPPlayerID)
	assert.Equal(t, "p1", *match.MVPPlayerID)
	assert.Equal(t, "p1", fx.matchRepo.mvpByID["match-1"])

	require.Len(t, fx.playerRepo.mvpBonus, 1)
	assert.Equal(t, bonusCall{playerID: "p1", delta: mvpRatingBonus}, fx.playerRepo.mvpBonus[0])
	assert.Equal(t, []string{"team-a"}, fx.teamRepo.mvpTeams)
}

func TestFinalizeMatchMVPTieBreaksOnPlayerID(t *testing.T) {
	fx := newRatingFixture(t)
	match := verifiedMatch(2, 2)
	scorers := []*models.GoalScorer{
		{MatchID: "match-1", PlayerID: "p3", TeamID: "team-b", Goals: 2},
		{MatchID: "match-1", PlayerID: "p1", TeamID: "team-a", Goals: 2},
	}

	fx.service.FinalizeMatch(context.Background(), match, scorers)

	require.NotNil(t, match.MVPPlayerID)
	assert.Equal(t, "p1", *match.MVPPlayerID, "ties resolve to the lowest player id")
}

func TestFinalizeMatchKeepsManualMVP(t *testing.T) {
	fx := newRatingFixture(t)
	match := verifiedMatch(1, 0)
	match.MVPPlayerID = strPtr("p2")
	scorers := []*models.GoalScorer{
		{MatchID: "match-1", PlayerID: "p1", TeamID: "team-a", Goals: 1},
	}

	fx.service.FinalizeMatch(context.Background(), match, scorers)

	assert.Equal(t, "p2", *match.MVPPlayerID)
	assert.Empty(t, fx.matchRepo.mvpByID, "manual choice is not overwritten")
	require.Len(t, fx.playerRepo.mvpBonus, 1)
	assert.Equal(t, "p2", fx.playerRepo.mvpBonus[0].playerID)
}

func TestFinalizeMatchMVPTeamResolvedThroughMembership(t *testing.T) {
	fx := newRatingFixture(t)
	match := verifiedMatch(1, 0)
	match.MVPPlayerID = strPtr("p3")
	fx.memberRepo.put("team-b", "p3")

	fx.service.FinalizeMatch(context.Background(), match, nil)

	assert.Equal(t, []string{"team-b"}, fx.teamRepo.mvpTeams)
}

func TestFinalizeMatchMVPTeamUnresolvedSkipsCounter(t *testing.T) {
	fx := newRatingFixture(t)
	match := verifiedMatch(1, 0)
	match.MVPPlayerID = strPtr("ghost")

	fx.service.FinalizeMatch(context.Background(), match, nil)

	require.Len(t, fx.playerRepo.mvpBonus, 1, "player bonus still applies")
	assert.Empty(t, fx.teamRepo.mvpTeams, "team counter skipped without a resolvable team")
}

func TestFinalizeMatchContinuesPastFailures(t *testing.T) {
	fx := newRatingFixture(t)
	fx.teamRepo.recordErr = errors.New("records table unavailable")
	match := verifiedMatch(2, 0)
	scorers := []*models.GoalScorer{
		{MatchID: "match-1", PlayerID: "p1", TeamID: "team-a", Goals: 2},
	}

	fx.service.FinalizeMatch(context.Background(), match, scorers)

	assert.Len(t, fx.playerRepo.goalsCalls, 1, "scorer updates proceed after a team update failure")
	require.NotNil(t, match.MVPPlayerID)
	assert.Equal(t, "p1", *match.MVPPlayerID)
}

func TestFinalizeMatchWithoutScoresIsNoop(t *testing.T) {
	fx := newRatingFixture(t)
	match := &models.Match{ID: "match-1", TeamAID: "team-a", TeamBID: "team-b", VerifiedResult: true}

	fx.service.FinalizeMatch(context.Background(), match, nil)

	assert.Empty(t, fx.teamRepo.recordCalls)
	assert.Empty(t, fx.playerRepo.goalsCalls)
}
