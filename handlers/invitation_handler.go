package handlers

import (
	"net/http"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/services"
)

type InvitationHandler struct {
	invitationService services.InvitationService
	playerService     services.PlayerService
}

func NewInvitationHandler(is services.InvitationService, ps services.PlayerService) *InvitationHandler {
	return &InvitationHandler{invitationService: is, playerService: ps}
}

func (h *InvitationHandler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TeamID         string   `json:"team_id"`
		PlayerID       string   `json:"player_id"`
		InvitationType string   `json:"invitation_type"`
		MatchID        *string  `json:"match_id"`
		MatchFee       *float64 `json:"match_fee"`
		Message        *string  `json:"message"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	invitation, err := h.invitationService.Invite(r.Context(), player.ID, &models.PlayerInvitation{
		TeamID:         input.TeamID,
		PlayerID:       input.PlayerID,
		InvitationType: models.InvitationType(input.InvitationType),
		MatchID:        input.MatchID,
		MatchFee:       input.MatchFee,
		Message:        input.Message,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"invitation": invitation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InvitationHandler) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	invitations, err := h.invitationService.ListPending(r.Context(), player.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"invitations": invitations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InvitationHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, err := getIDFromURL(r, "invitationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = h.invitationService.Accept(r.Context(), player.ID, invitationID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"message": "invitation accepted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *InvitationHandler) RejectInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, err := getIDFromURL(r, "invitationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = h.invitationService.Reject(r.Context(), player.ID, invitationID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"message": "invitation rejected"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
