package handlers

import (
	"net/http"

	"epl-api/packages/core/models"
	"epl-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// GetMatches lists all matches
// @Summary List matches
// @Description Live matches first, then upcoming, then finished. Statuses are refreshed before reading.
// @Tags matches
// @Produce json
// @Success 200 {object} Response{data=[]models.MatchDetail}
// @Failure 500 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	matches, err := h.matchService.GetMatches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Matches retrieved", matches)
}

// @Summary League table
// @Tags matches
// @Produce json
// @Success 200 {object} Response{data=[]models.StandingRow}
// @Failure 500 {object} ErrorResponse
// @Router /matches/table [get]
func (h *MatchHandler) GetTable(c *gin.Context) {
	table, err := h.matchService.GetTable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "League table retrieved", table)
}

// @Summary Live matches
// @Tags matches
// @Produce json
// @Success 200 {object} Response{data=[]models.MatchDetail}
// @Router /matches/ongoing [get]
func (h *MatchHandler) GetOngoingMatches(c *gin.Context) {
	matches, err := h.matchService.GetOngoingMatches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Ongoing matches retrieved", matches)
}

// @Summary Finished matches, most recent first
// @Tags matches
// @Produce json
// @Success 200 {object} Response{data=[]models.MatchDetail}
// @Router /matches/finished [get]
func (h *MatchHandler) GetFinishedMatches(c *gin.Context) {
	matches, err := h.matchService.GetFinishedMatches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Finished matches retrieved", matches)
}

// @Summary Upcoming matches
// @Tags matches
// @Produce json
// @Success 200 {object} Response{data=[]models.MatchDetail}
// @Router /matches/upcoming [get]
func (h *MatchHandler) GetUpcomingMatches(c *gin.Context) {
	matches, err := h.matchService.GetUpcomingMatches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Upcoming matches retrieved", matches)
}

// @Summary Get a match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} Response{data=models.MatchDetail}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	match, err := h.matchService.GetMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Match retrieved", match)
}

// CreateMatch schedules a fixture
// @Summary Create a match
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Fixture"
// @Success 201 {object} Response{data=models.MatchDetail}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	match, err := h.matchService.CreateMatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, "Match created", match)
}

// UpdateMatch edits a match
// @Summary Update a match
// @Description Upcoming matches accept any field. Live and finished matches only accept status and scores.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param match body models.UpdateMatchRequest true "Changes"
// @Success 200 {object} Response{data=models.MatchDetail}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{id} [put]
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	match, err := h.matchService.UpdateMatch(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, "Match updated", match)
}

// DeleteMatch removes a match that has not kicked off
// @Summary Delete a match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} Response
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.matchService.DeleteMatch(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Match deleted")
}
