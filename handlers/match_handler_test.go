package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoaibhussa1n/Futsal-Connect/middleware"
	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
	"github.com/shoaibhussa1n/Futsal-Connect/services"
)

const (
	testMatchID  = "2b6f3a52-9c1d-4f2e-8a7b-0c5d4e3f2a1b"
	testPlayerID = "7d8e9f0a-1b2c-4d3e-9f8a-7b6c5d4e3f2a"
	testUserID   = "user-1"
)

type stubMatchService struct {
	match     *models.Match
	submitErr error

	submittedBy string
	submittedTo string
	input       services.SubmitResultInput
	cancelled   []string
}

func (s *stubMatchService) Create(ctx context.Context, match *models.Match) (*models.Match, error) {
	return match, nil
}

func (s *stubMatchService) GetByID(ctx context.Context, id string) (*models.Match, error) {
	if s.match == nil {
		return nil, services.ErrMatchNotFound
	}
	return s.match, nil
}

func (s *stubMatchService) List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	return []*models.Match{s.match}, nil
}

func (s *stubMatchService) ListScorers(ctx context.Context, matchID string) ([]*models.GoalScorer, error) {
	return nil, nil
}

func (s *stubMatchService) Cancel(ctx context.Context, playerID, matchID string) error {
	s.cancelled = append(s.cancelled, matchID)
	return nil
}

func (s *stubMatchService) SubmitResult(ctx context.Context, playerID, matchID string, input services.SubmitResultInput) (*models.Match, error) {
	s.submittedBy = playerID
	s.submittedTo = matchID
	s.input = input
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.match, nil
}

type stubPlayerService struct {
	player *models.Player
}

func (s *stubPlayerService) Create(ctx context.Context, userID string, player *models.Player) (*models.Player, error) {
	return player, nil
}

func (s *stubPlayerService) GetByID(ctx context.Context, id string) (*models.Player, error) {
	return s.player, nil
}

func (s *stubPlayerService) GetByUserID(ctx context.Context, userID string) (*models.Player, error) {
	if s.player == nil {
		return nil, services.ErrPlayerNotFound
	}
	return s.player, nil
}

func (s *stubPlayerService) List(ctx context.Context, filter repositories.PlayerFilter) ([]*models.Player, error) {
	return []*models.Player{s.player}, nil
}

func (s *stubPlayerService) Update(ctx context.Context, userID string, player *models.Player) (*models.Player, error) {
	return player, nil
}

func (s *stubPlayerService) UploadPhoto(ctx context.Context, userID, fileName, contentType string, file io.Reader) (*models.Player, error) {
	return s.player, nil
}

func matchRouter(h *MatchHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/matches/{matchID}", h.GetMatchByID)
	r.Post("/matches/{matchID}/result", h.SubmitMatchResult)
	r.Delete("/matches/{matchID}", h.CancelMatch)
	return r
}

func authedRequest(method, target string, body []byte) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.ContextWithUserID(req.Context(), testUserID))
}

func TestSubmitMatchResult(t *testing.T) {
	score := 2
	ms := &stubMatchService{match: &models.Match{ID: testMatchID, Status: models.MatchStatusConfirmed, TeamAScore: &score}}
	ps := &stubPlayerService{player: &models.Player{ID: testPlayerID}}
	router := matchRouter(NewMatchHandler(ms, ps))

	body := []byte(`{"team_id":"team-a","team_a_score":2,"team_b_score":1,"scorers":[{"player_id":"p1","team_id":"team-a","goals":2}]}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/matches/"+testMatchID+"/result", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testPlayerID, ms.submittedBy)
	assert.Equal(t, testMatchID, ms.submittedTo)
	assert.Equal(t, "team-a", ms.input.TeamID)
	assert.Equal(t, 2, ms.input.TeamAScore)
	require.Len(t, ms.input.Scorers, 1)

	var envelope struct {
		Match *models.Match `json:"match"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, testMatchID, envelope.Match.ID)
}

func TestSubmitMatchResultErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "conflicting scores", serviceErr: services.ErrScoresDoNotMatch, wantStatus: http.StatusConflict},
		{name: "already verified", serviceErr: services.ErrMatchAlreadyVerified, wantStatus: http.StatusConflict},
		{name: "not a participant", serviceErr: services.ErrInvalidParty, wantStatus: http.StatusForbidden},
		{name: "not the captain", serviceErr: services.ErrCaptainActionForbidden, wantStatus: http.StatusForbidden},
		{name: "goal totals off", serviceErr: services.ErrScoreMismatch, wantStatus: http.StatusBadRequest},
		{name: "match missing", serviceErr: services.ErrMatchNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := &stubMatchService{submitErr: tt.serviceErr}
			ps := &stubPlayerService{player: &models.Player{ID: testPlayerID}}
			router := matchRouter(NewMatchHandler(ms, ps))

			body := []byte(`{"team_id":"team-a","team_a_score":2,"team_b_score":1}`)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, authedRequest(http.MethodPost, "/matches/"+testMatchID+"/result", body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSubmitMatchResultRejectsInvalidMatchID(t *testing.T) {
	ms := &stubMatchService{}
	ps := &stubPlayerService{player: &models.Player{ID: testPlayerID}}
	router := matchRouter(NewMatchHandler(ms, ps))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/matches/not-a-uuid/result", []byte(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ms.submittedTo)
}

func TestSubmitMatchResultRejectsUnknownField(t *testing.T) {
	ms := &stubMatchService{}
	ps := &stubPlayerService{player: &models.Player{ID: testPlayerID}}
	router := matchRouter(NewMatchHandler(ms, ps))

	body := []byte(`{"team_id":"team-a","surprise":true}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/matches/"+testMatchID+"/result", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitMatchResultRequiresAuth(t *testing.T) {
	ms := &stubMatchService{}
	ps := &stubPlayerService{player: &models.Player{ID: testPlayerID}}
	router := matchRouter(NewMatchHandler(ms, ps))

	body := []byte(`{"team_id":"team-a","team_a_score":2,"team_b_score":1}`)
	req := httptest.NewRequest(http.MethodPost, "/matches/"+testMatchID+"/result", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, ms.submittedTo)
}

func TestGetMatchByID(t *testing.T) {
	ms := &stubMatchService{match: &models.Match{ID: testMatchID}}
	router := matchRouter(NewMatchHandler(ms, &stubPlayerService{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/"+testMatchID, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Match *models.Match `json:"match"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, testMatchID, envelope.Match.ID)
}

func TestGetMatchByIDNotFound(t *testing.T) {
	ms := &stubMatchService{}
	router := matchRouter(NewMatchHandler(ms, &stubPlayerService{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/"+testMatchID, nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelMatch(t *testing.T) {
	ms := &stubMatchService{match: &models.Match{ID: testMatchID}}
	ps := &stubPlayerService{player: &models.Player{ID: testPlayerID}}
	router := matchRouter(NewMatchHandler(ms, ps))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/matches/"+testMatchID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{testMatchID}, ms.cancelled)
}
