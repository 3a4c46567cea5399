package handlers

import (
	"net/http"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
	"github.com/shoaibhussa1n/Futsal-Connect/services"
)

type MatchHandler struct {
	matchService  services.MatchService
	playerService services.PlayerService
}

func NewMatchHandler(ms services.MatchService, ps services.PlayerService) *MatchHandler {
	return &MatchHandler{matchService: ms, playerService: ps}
}

func (h *MatchHandler) GetMatchByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	filter := repositories.MatchFilter{}

	if teamID := r.URL.Query().Get("team_id"); teamID != "" {
		filter.TeamID = &teamID
	}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := models.MatchStatus(statusParam)
		filter.Status = &status
	}
	if r.URL.Query().Get("upcoming") == "true" {
		filter.Upcoming = true
	}

	matches, err := h.matchService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListMatchScorers(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scorers, err := h.matchService.ListScorers(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"scorers": scorers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitMatchResult handles one team's report of the final result. The
// caller must be the captain of the team named in the payload.
func (h *MatchHandler) SubmitMatchResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SubmitResultInput
	if err = readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	match, err := h.matchService.SubmitResult(r.Context(), player.ID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = h.matchService.Cancel(r.Context(), player.ID, matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"message": "match cancelled"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
