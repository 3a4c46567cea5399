package handlers

import (
	"net/http"
	"strconv"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
	"github.com/shoaibhussa1n/Futsal-Connect/services"
)

type TeamHandler struct {
	teamService   services.TeamService
	playerService services.PlayerService
}

func NewTeamHandler(ts services.TeamService, ps services.PlayerService) *TeamHandler {
	return &TeamHandler{teamService: ts, playerService: ps}
}

type teamInput struct {
	Name      string `json:"name"`
	AgeGroup  string `json:"age_group"`
	TeamLevel int    `json:"team_level"`
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input teamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), player.ID, &models.Team{
		Name:      input.Name,
		AgeGroup:  input.AgeGroup,
		TeamLevel: input.TeamLevel,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetByID(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	filter := repositories.TeamFilter{}

	if ageGroup := r.URL.Query().Get("age_group"); ageGroup != "" {
		filter.AgeGroup = &ageGroup
	}
	if minRating := r.URL.Query().Get("min_rating"); minRating != "" {
		if value, err := strconv.ParseFloat(minRating, 64); err == nil {
			filter.MinRating = &value
		}
	}
	if maxRating := r.URL.Query().Get("max_rating"); maxRating != "" {
		if value, err := strconv.ParseFloat(maxRating, 64); err == nil {
			filter.MaxRating = &value
		}
	}

	teams, err := h.teamService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input teamInput
	if err = readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	team, err := h.teamService.Update(r.Context(), player.ID, &models.Team{
		ID:        teamID,
		Name:      input.Name,
		AgeGroup:  input.AgeGroup,
		TeamLevel: input.TeamLevel,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = h.teamService.Delete(r.Context(), player.ID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"message": "team deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	members, err := h.teamService.ListMembers(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"members": members}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		PlayerID string `json:"player_id"`
	}
	if err = readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = h.teamService.AddMember(r.Context(), player.ID, teamID, input.PlayerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"message": "member added"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	memberID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = h.teamService.RemoveMember(r.Context(), player.ID, teamID, memberID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"message": "member removed"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	team, err := h.teamService.UploadLogo(r.Context(), player.ID, teamID,
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
