package services

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

type submitFixture struct {
	db         *sql.DB
	mock       sqlmock.Sqlmock
	matchRepo  *fakeMatchRepo
	scorerRepo *fakeScorerRepo
	teamRepo   *fakeTeamRepo
	rating     *fakeRatingService
	service    MatchService
}

func newSubmitFixture(t *testing.T, match *models.Match) *submitFixture {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	matchRepo := &fakeMatchRepo{match: match}
	scorerRepo := &fakeScorerRepo{}
	teamRepo := newFakeTeamRepo(
		&models.Team{ID: "team-a", Name: "Alpha", CaptainID: "cap-a"},
		&models.Team{ID: "team-b", Name: "Bravo", CaptainID: "cap-b"},
	)
	rating := &fakeRatingService{}

	service := NewMatchService(mockDB, matchRepo, scorerRepo, teamRepo, rating, nil, slog.Default())

	return &submitFixture{
		db:         mockDB,
		mock:       mock,
		matchRepo:  matchRepo,
		scorerRepo: scorerRepo,
		teamRepo:   teamRepo,
		rating:     rating,
		service:    service,
	}
}

func pendingMatch() *models.Match {
	return &models.Match{
		ID:      "match-1",
		TeamAID: "team-a",
		TeamBID: "team-b",
		Status:  models.MatchStatusPending,
	}
}

// guardSubmit emulates the conditional update: it applies the submitting
// party's flag and derives verification from the opponent's flag.
func guardSubmit(match *models.Match) func(sub repositories.ResultSubmission) (*models.Match, error) {
	return func(sub repositories.ResultSubmission) (*models.Match, error) {
		opponentSubmitted := match.TeamBResultSubmitted
		if !sub.AsTeamA {
			opponentSubmitted = match.TeamAResultSubmitted
		}
		if match.VerifiedResult {
			return nil, repositories.ErrMatchSubmitRejected
		}
		if opponentSubmitted && (*match.TeamAScore != sub.TeamAScore || *match.TeamBScore != sub.TeamBScore) {
			return nil, repositories.ErrMatchSubmitRejected
		}

		updated := *match
		updated.TeamAScore = intPtr(sub.TeamAScore)
		updated.TeamBScore = intPtr(sub.TeamBScore)
		if sub.AsTeamA {
			updated.TeamAResultSubmitted = true
		} else {
			updated.TeamBResultSubmitted = true
		}
		if sub.MVPPlayerID != nil {
			updated.MVPPlayerID = sub.MVPPlayerID
		}
		updated.VerifiedResult = opponentSubmitted
		if opponentSubmitted {
			updated.Status = models.MatchStatusCompleted
		} else {
			updated.Status = models.MatchStatusConfirmed
		}
		return &updated, nil
	}
}

func TestSubmitResultFirstSubmission(t *testing.T) {
	match := pendingMatch()
	fx := newSubmitFixture(t, match)
	fx.matchRepo.submitFn = guardSubmit(match)

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	updated, err := fx.service.SubmitResult(context.Background(), "cap-a", "match-1", SubmitResultInput{
		TeamID:     "team-a",
		TeamAScore: 2,
		TeamBScore: 1,
		Scorers: []ScorerInput{
			{PlayerID: "p1", TeamID: "team-a", Goals: 2},
			{PlayerID: "p2", TeamID: "team-b", Goals: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusConfirmed, updated.Status)
	assert.False(t, updated.VerifiedResult)
	assert.True(t, updated.TeamAResultSubmitted)

	// Only the submitting team's rows are persisted; the opponent's line in
	// the payload is validation-only.
	require.Len(t, fx.scorerRepo.replaced, 1)
	call := fx.scorerRepo.replaced[0]
	assert.Equal(t, "team-a", call.teamID)
	require.Len(t, call.scorers, 1)
	assert.Equal(t, "p1", call.scorers[0].PlayerID)

	assert.Empty(t, fx.rating.calls, "first submission must not finalize")
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestSubmitResultSecondSubmissionVerifies(t *testing.T) {
	match := pendingMatch()
	match.TeamAResultSubmitted = true
	match.TeamAScore = intPtr(2)
	match.TeamBScore = intPtr(1)
	match.Status = models.MatchStatusConfirmed

	fx := newSubmitFixture(t, match)
	fx.matchRepo.submitFn = guardSubmit(match)
	fx.scorerRepo.stored = []*models.GoalScorer{
		{MatchID: "match-1", PlayerID: "p1", TeamID: "team-a", Goals: 2},
		{MatchID: "match-1", PlayerID: "p2", TeamID: "team-b", Goals: 1},
	}

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	updated, err := fx.service.SubmitResult(context.Background(), "cap-b", "match-1", SubmitResultInput{
		TeamID:      "team-b",
		TeamAScore:  2,
		TeamBScore:  1,
		Scorers:     []ScorerInput{{PlayerID: "p2", TeamID: "team-b", Goals: 1}},
		MVPPlayerID: strPtr("p1"),
	})
	require.NoError(t, err)

	assert.True(t, updated.VerifiedResult)
	assert.Equal(t, models.MatchStatusCompleted, updated.Status)

	require.Len(t, fx.rating.calls, 1, "verifying submission finalizes exactly once")
	assert.Equal(t, "match-1", fx.rating.calls[0].match.ID)
	assert.Len(t, fx.rating.calls[0].scorers, 2)

	require.Len(t, fx.matchRepo.submitted, 1)
	assert.False(t, fx.matchRepo.submitted[0].AsTeamA)
	assert.Equal(t, "p1", *fx.matchRepo.submitted[0].MVPPlayerID)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestSubmitResultScoresDoNotMatchOpponent(t *testing.T) {
	match := pendingMatch()
	match.TeamAResultSubmitted = true
	match.TeamAScore = intPtr(2)
	match.TeamBScore = intPtr(1)

	fx := newSubmitFixture(t, match)

	_, err := fx.service.SubmitResult(context.Background(), "cap-b", "match-1", SubmitResultInput{
		TeamID:     "team-b",
		TeamAScore: 3,
		TeamBScore: 1,
		Scorers: []ScorerInput{
			{PlayerID: "p1", TeamID: "team-a", Goals: 3},
			{PlayerID: "p2", TeamID: "team-b", Goals: 1},
		},
	})
	assert.ErrorIs(t, err, ErrScoresDoNotMatch)
	assert.Empty(t, fx.matchRepo.submitted, "guard query must not run after the pre-check")
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestSubmitResultGoalTotalsMismatch(t *testing.T) {
	fx := newSubmitFixture(t, pendingMatch())

	_, err := fx.service.SubmitResult(context.Background(), "cap-a", "match-1", SubmitResultInput{
		TeamID:     "team-a",
		TeamAScore: 2,
		TeamBScore: 1,
		Scorers: []ScorerInput{
			{PlayerID: "p1", TeamID: "team-a", Goals: 1},
			{PlayerID: "p2", TeamID: "team-b", Goals: 1},
		},
	})
	assert.ErrorIs(t, err, ErrScoreMismatch)
}

func TestSubmitResultStoredOpponentScorersCountTowardsTotals(t *testing.T) {
	match := pendingMatch()
	fx := newSubmitFixture(t, match)
	fx.scorerRepo.stored = []*models.GoalScorer{
		{MatchID: "match-1", PlayerID: "p2", TeamID: "team-b", Goals: 2},
	}

	// Own payload 2 + stored opponent 2 = 4, but the claimed total is 3.
	_, err := fx.service.SubmitResult(context.Background(), "cap-a", "match-1", SubmitResultInput{
		TeamID:     "team-a",
		TeamAScore: 2,
		TeamBScore: 1,
		Scorers:    []ScorerInput{{PlayerID: "p1", TeamID: "team-a", Goals: 2}},
	})
	assert.ErrorIs(t, err, ErrScoreMismatch)
}

func TestSubmitResultGoalTotalsMustCoverScoreTotal(t *testing.T) {
	fx := newSubmitFixture(t, pendingMatch())

	// No opponent rows exist yet, so the breakdown alone must account for
	// every goal in the claimed total.
	_, err := fx.service.SubmitResult(context.Background(), "cap-a", "match-1", SubmitResultInput{
		TeamID:     "team-a",
		TeamAScore: 2,
		TeamBScore: 1,
		Scorers:    []ScorerInput{{PlayerID: "p1", TeamID: "team-a", Goals: 1}},
	})
	assert.ErrorIs(t, err, ErrScoreMismatch)

	_, err = fx.service.SubmitResult(context.Background(), "cap-a", "match-1", SubmitResultInput{
		TeamID:     "team-a",
		TeamAScore: 2,
		TeamBScore: 1,
	})
	assert.ErrorIs(t, err, ErrScoreMismatch)

	assert.Empty(t, fx.matchRepo.submitted, "under-accounted totals must not reach the guard")
	assert.Empty(t, fx.scorerRepo.replaced)
}

func TestSubmitResultRepeatedFirstSubmissionStaysUnverified(t *testing.T) {
	match := pendingMatch()
	fx := newSubmitFixture(t, match)
	fx.matchRepo.submitFn = guardSubmit(match)

	input := SubmitResultInput{
		TeamID:     "team-a",
		TeamAScore: 2,
		TeamBScore: 1,
		Scorers: []ScorerInput{
			{PlayerID: "p1", TeamID: "team-a", Goals: 2},
			{PlayerID: "p2", TeamID: "team-b", Goals: 1},
		},
	}

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	first, err := fx.service.SubmitResult(context.Background(), "cap-a", "match-1", input)
	require.NoError(t, err)

	// The same captain resubmits the identical result before the opponent
	// has reported.
	fx.matchRepo.match = first
	fx.matchRepo.submitFn = guardSubmit(first)

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	second, err := fx.service.SubmitResult(context.Background(), "cap-a", "match-1", input)
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusConfirmed, second.Status)
	assert.False(t, second.VerifiedResult)
	assert.Empty(t, fx.rating.calls, "resubmission must not finalize")

	// The scorer set is replaced, not appended to.
	require.Len(t, fx.scorerRepo.replaced, 2)
	for _, call := range fx.scorerRepo.replaced {
		assert.Equal(t, "team-a", call.teamID)
		require.Len(t, call.scorers, 1)
		assert.Equal(t, "p1", call.scorers[0].PlayerID)
	}
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestSubmitResultValidation(t *testing.T) {
	tests := []struct {
		name     string
		match    func() *models.Match
		playerID string
		input    SubmitResultInput
		wantErr  error
	}{
		{
			name:     "negative score",
			match:    pendingMatch,
			playerID: "cap-a",
			input:    SubmitResultInput{TeamID: "team-a", TeamAScore: -1, TeamBScore: 0},
			wantErr:  ErrInvalidScore,
		},
		{
			name:     "foreign team",
			match:    pendingMatch,
			playerID: "cap-a",
			input:    SubmitResultInput{TeamID: "team-c", TeamAScore: 1, TeamBScore: 0},
			wantErr:  ErrInvalidParty,
		},
		{
			name: "cancelled match",
			match: func() *models.Match {
				m := pendingMatch()
				m.Status = models.MatchStatusCancelled
				return m
			},
			playerID: "cap-a",
			input:    SubmitResultInput{TeamID: "team-a", TeamAScore: 1, TeamBScore: 0},
			wantErr:  ErrMatchCancelled,
		},
		{
			name: "already verified",
			match: func() *models.Match {
				m := pendingMatch()
				m.VerifiedResult = true
				return m
			},
			playerID: "cap-a",
			input:    SubmitResultInput{TeamID: "team-a", TeamAScore: 1, TeamBScore: 0},
			wantErr:  ErrMatchAlreadyVerified,
		},
		{
			name:     "not the captain",
			match:    pendingMatch,
			playerID: "someone-else",
			input:    SubmitResultInput{TeamID: "team-a", TeamAScore: 1, TeamBScore: 0},
			wantErr:  ErrCaptainActionForbidden,
		},
		{
			name:     "scorer from outside the match",
			match:    pendingMatch,
			playerID: "cap-a",
			input: SubmitResultInput{
				TeamID: "team-a", TeamAScore: 1, TeamBScore: 0,
				Scorers: []ScorerInput{{PlayerID: "p1", TeamID: "team-c", Goals: 1}},
			},
			wantErr: ErrInvalidParty,
		},
		{
			name:     "zero goal line",
			match:    pendingMatch,
			playerID: "cap-a",
			input: SubmitResultInput{
				TeamID: "team-a", TeamAScore: 1, TeamBScore: 0,
				Scorers: []ScorerInput{{PlayerID: "p1", TeamID: "team-a", Goals: 0}},
			},
			wantErr: ErrValidationFailed,
		},
		{
			name:     "duplicate scorer line",
			match:    pendingMatch,
			playerID: "cap-a",
			input: SubmitResultInput{
				TeamID: "team-a", TeamAScore: 2, TeamBScore: 0,
				Scorers: []ScorerInput{
					{PlayerID: "p1", TeamID: "team-a", Goals: 1},
					{PlayerID: "p1", TeamID: "team-a", Goals: 1},
				},
			},
			wantErr: ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newSubmitFixture(t, tt.match())
			_, err := fx.service.SubmitResult(context.Background(), tt.playerID, "match-1", tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitResultMatchNotFound(t *testing.T) {
	fx := newSubmitFixture(t, pendingMatch())
	fx.matchRepo.getErr = repositories.ErrMatchNotFound

	_, err := fx.service.SubmitResult(context.Background(), "cap-a", "match-1", SubmitResultInput{
		TeamID: "team-a", TeamAScore: 1, TeamBScore: 0,
	})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSubmitResultLostRaceToVerification(t *testing.T) {
	match := pendingMatch()
	fx := newSubmitFixture(t, match)

	// The opponent's submission lands between our read and our update: the
	// guard rejects and the re-read sees a verified match.
	fx.matchRepo.submitFn = func(sub repositories.ResultSubmission) (*models.Match, error) {
		match.VerifiedResult = true
		match.TeamAScore = intPtr(1)
		match.TeamBScore = intPtr(0)
		return nil, repositories.ErrMatchSubmitRejected
	}

	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	_, err := fx.service.SubmitResult(context.Background(), "cap-a", "match-1", SubmitResultInput{
		TeamID: "team-a", TeamAScore: 1, TeamBScore: 0,
		Scorers: []ScorerInput{{PlayerID: "p1", TeamID: "team-a", Goals: 1}},
	})
	assert.ErrorIs(t, err, ErrMatchAlreadyVerified)
	assert.Empty(t, fx.rating.calls)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestSubmitResultRejectedOnConcurrentScoreConflict(t *testing.T) {
	match := pendingMatch()
	fx := newSubmitFixture(t, match)

	// The opponent submits different scores concurrently; the guard rejects
	// and the re-read shows an unverified match with conflicting scores.
	fx.matchRepo.submitFn = func(sub repositories.ResultSubmission) (*models.Match, error) {
		match.TeamBResultSubmitted = true
		match.TeamAScore = intPtr(0)
		match.TeamBScore = intPtr(3)
		return nil, repositories.ErrMatchSubmitRejected
	}

	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	_, err := fx.service.SubmitResult(context.Background(), "cap-a", "match-1", SubmitResultInput{
		TeamID: "team-a", TeamAScore: 1, TeamBScore: 0,
		Scorers: []ScorerInput{{PlayerID: "p1", TeamID: "team-a", Goals: 1}},
	})
	assert.ErrorIs(t, err, ErrScoresDoNotMatch)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestCancelMatch(t *testing.T) {
	match := pendingMatch()
	fx := newSubmitFixture(t, match)

	err := fx.service.Cancel(context.Background(), "cap-b", "match-1")
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusCancelled, match.Status)
}

func TestCancelMatchRequiresParticipantCaptain(t *testing.T) {
	fx := newSubmitFixture(t, pendingMatch())

	err := fx.service.Cancel(context.Background(), "stranger", "match-1")
	assert.ErrorIs(t, err, ErrCaptainActionForbidden)
}

func TestCancelVerifiedMatchRejected(t *testing.T) {
	match := pendingMatch()
	match.VerifiedResult = true
	fx := newSubmitFixture(t, match)

	err := fx.service.Cancel(context.Background(), "cap-a", "match-1")
	assert.ErrorIs(t, err, ErrMatchAlreadyVerified)
}
