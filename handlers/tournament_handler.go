package handlers

import (
	"net/http"
	"time"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
	"github.com/shoaibhussa1n/Futsal-Connect/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	playerService     services.PlayerService
}

func NewTournamentHandler(ts services.TournamentService, ps services.PlayerService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts, playerService: ps}
}

type tournamentInput struct {
	Name          string    `json:"name"`
	OrganizerType string    `json:"organizer_type"`
	Fee           float64   `json:"fee"`
	Prize         string    `json:"prize"`
	StartDate     time.Time `json:"start_date"`
	MaxTeams      int       `json:"max_teams"`
	Format        string    `json:"format"`
	Description   *string   `json:"description"`
}

func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var input tournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), player.ID, &models.Tournament{
		Name:          input.Name,
		OrganizerType: models.OrganizerType(input.OrganizerType),
		Fee:           input.Fee,
		Prize:         input.Prize,
		StartDate:     input.StartDate,
		MaxTeams:      input.MaxTeams,
		Format:        input.Format,
		Description:   input.Description,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GetTournamentByID(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	filter := repositories.TournamentFilter{}

	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := models.TournamentStatus(statusParam)
		filter.Status = &status
	}
	if r.URL.Query().Get("approved") == "true" {
		approved := true
		filter.Approved = &approved
	}

	tournaments, err := h.tournamentService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Register(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamID   *string `json:"team_id"`
		PlayerID *string `json:"player_id"`
	}
	if err = readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registration, err := h.tournamentService.Register(r.Context(), &models.TournamentRegistration{
		TournamentID: tournamentID,
		TeamID:       input.TeamID,
		PlayerID:     input.PlayerID,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"registration": registration}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registrations, err := h.tournamentService.ListRegistrations(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"registrations": registrations}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
