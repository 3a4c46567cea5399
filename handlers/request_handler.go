package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/services"
)

type MatchRequestHandler struct {
	requestService services.MatchRequestService
	playerService  services.PlayerService
}

func NewMatchRequestHandler(rs services.MatchRequestService, ps services.PlayerService) *MatchRequestHandler {
	return &MatchRequestHandler{requestService: rs, playerService: ps}
}

type matchRequestInput struct {
	RequesterTeamID  string     `json:"requester_team_id"`
	RequestedTeamID  string     `json:"requested_team_id"`
	ProposedDate     *time.Time `json:"proposed_date"`
	ProposedTime     *string    `json:"proposed_time"`
	ProposedLocation *string    `json:"proposed_location"`
	Notes            *string    `json:"notes"`
}

func (h *MatchRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var input matchRequestInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	request, err := h.requestService.Create(r.Context(), player.ID, &models.MatchRequest{
		RequesterTeamID:  input.RequesterTeamID,
		RequestedTeamID:  input.RequestedTeamID,
		ProposedDate:     input.ProposedDate,
		ProposedTime:     input.ProposedTime,
		ProposedLocation: input.ProposedLocation,
		Notes:            input.Notes,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"request": request}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchRequestHandler) ListTeamRequests(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	requests, err := h.requestService.ListByTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"requests": requests}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AcceptRequest confirms the matchup and returns the newly scheduled match.
func (h *MatchRequestHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := getIDFromURL(r, "requestID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	match, err := h.requestService.Accept(r.Context(), player.ID, requestID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchRequestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.requestService.Reject, "request rejected")
}

func (h *MatchRequestHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.requestService.Cancel, "request cancelled")
}

func (h *MatchRequestHandler) resolve(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, playerID, requestID string) error,
	message string,
) {
	requestID, err := getIDFromURL(r, "requestID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = action(r.Context(), player.ID, requestID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"message": message}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
