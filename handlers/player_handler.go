package handlers

import (
	"net/http"
	"strconv"

	"github.com/shoaibhussa1n/Futsal-Connect/middleware"
	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/repositories"
	"github.com/shoaibhussa1n/Futsal-Connect/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

type playerInput struct {
	Position         *string  `json:"position"`
	SkillLevel       int      `json:"skill_level"`
	Age              *int     `json:"age"`
	City             string   `json:"city"`
	AvailabilityDays []string `json:"availability_days"`
	PreferredTime    *string  `json:"preferred_time"`
	Bio              *string  `json:"bio"`
}

func (input playerInput) toModel() *models.Player {
	return &models.Player{
		Position:         input.Position,
		SkillLevel:       input.SkillLevel,
		Age:              input.Age,
		City:             input.City,
		AvailabilityDays: input.AvailabilityDays,
		PreferredTime:    input.PreferredTime,
		Bio:              input.Bio,
	}
}

func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input playerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	player, err := h.playerService.Create(r.Context(), userID, input.toModel())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) GetCurrentPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := currentPlayer(r.Context(), h.playerService)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) GetPlayerByID(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetByID(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	filter := repositories.PlayerFilter{}

	if position := r.URL.Query().Get("position"); position != "" {
		filter.Position = &position
	}
	if city := r.URL.Query().Get("city"); city != "" {
		filter.City = &city
	}
	if minSkill := r.URL.Query().Get("min_skill"); minSkill != "" {
		if value, err := strconv.Atoi(minSkill); err == nil {
			filter.MinSkill = &value
		}
	}
	if maxSkill := r.URL.Query().Get("max_skill"); maxSkill != "" {
		if value, err := strconv.Atoi(maxSkill); err == nil {
			filter.MaxSkill = &value
		}
	}

	players, err := h.playerService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) UpdateCurrentPlayer(w http.ResponseWriter, r *http.Request) {
	var input playerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	player, err := h.playerService.Update(r.Context(), userID, input.toModel())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	if err = r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	player, err := h.playerService.UploadPhoto(r.Context(), userID,
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err = writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
