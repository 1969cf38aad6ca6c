package handlers

import (
	"net/http"

	"epl-api/packages/core/models"
	"epl-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// @Summary List all players
// @Tags players
// @Produce json
// @Success 200 {object} Response{data=[]models.Player}
// @Router /players [get]
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	players, err := h.playerService.GetPlayers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Players retrieved", players)
}

// GetPlayersByTeam returns a squad
// @Summary Players of a team
// @Tags players
// @Produce json
// @Param teamId query int true "Team ID"
// @Param playerId query int false "Only this player"
// @Success 200 {object} Response{data=[]models.Player}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/by-team [get]
func (h *PlayerHandler) GetPlayersByTeam(c *gin.Context) {
	teamID, ok := parseQueryID(c, "teamId")
	if !ok {
		return
	}
	playerID, ok := parseQueryID(c, "playerId")
	if !ok {
		return
	}
	players, err := h.playerService.GetPlayersByTeam(c.Request.Context(), teamID, playerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Players retrieved", players)
}

// @Summary Get a player
// @Tags players
// @Security BearerAuth
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} Response{data=models.Player}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	player, err := h.playerService.GetPlayer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Player retrieved", player)
}

// @Summary Create a player
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player"
// @Success 201 {object} Response{data=models.Player}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	player, err := h.playerService.CreatePlayer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Player created", player)
}

// @Summary Update a player
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param player body models.UpdatePlayerRequest true "Changes"
// @Success 200 {object} Response{data=models.Player}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/{id} [put]
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	player, err := h.playerService.UpdatePlayer(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Player updated", player)
}

// @Summary Delete a player
// @Tags players
// @Security BearerAuth
// @Param id path int true "Player ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponse
// @Router /players/{id} [delete]
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.playerService.DeletePlayer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Player deleted")
}
