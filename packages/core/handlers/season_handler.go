package handlers

import (
	"net/http"

	"epl-api/packages/core/models"
	"epl-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type SeasonHandler struct {
	seasonService *services.SeasonService
	linkService   *services.MatchSeasonService
}

func NewSeasonHandler(seasonService *services.SeasonService, linkService *services.MatchSeasonService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService, linkService: linkService}
}

// @Summary List seasons
// @Tags seasons
// @Produce json
// @Param query query string false "Season name or start/end year"
// @Success 200 {object} Response{content=[]models.Season}
// @Router /seasons [get]
func (h *SeasonHandler) GetSeasons(c *gin.Context) {
	seasons, err := h.seasonService.GetSeasons(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "Seasons retrieved", seasons)
}

// @Summary Get a season
// @Tags seasons
// @Security BearerAuth
// @Produce json
// @Param id path int true "Season ID"
// @Success 200 {object} Response{content=models.Season}
// @Failure 404 {object} ErrorResponse
// @Router /seasons/{id} [get]
func (h *SeasonHandler) GetSeason(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	season, err := h.seasonService.GetSeason(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "Season retrieved", season)
}

// @Summary Create a season
// @Description The end date must fall in the year after the start date.
// @Tags seasons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param season body models.SeasonRequest true "Season"
// @Success 201 {object} Response{content=models.Season}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /seasons [post]
func (h *SeasonHandler) CreateSeason(c *gin.Context) {
	var req models.SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	season, err := h.seasonService.CreateSeason(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusCreated, "Season created", season)
}

// @Summary Update a season
// @Tags seasons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Season ID"
// @Param season body models.SeasonRequest true "Season"
// @Success 200 {object} Response{content=models.Season}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /seasons/{id} [put]
func (h *SeasonHandler) UpdateSeason(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	season, err := h.seasonService.UpdateSeason(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "Season updated", season)
}

// @Summary Delete a season
// @Tags seasons
// @Security BearerAuth
// @Param id path int true "Season ID"
// @Success 200 {object} Response
// @Router /seasons/{id} [delete]
func (h *SeasonHandler) DeleteSeason(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.seasonService.DeleteSeason(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Season deleted")
}

// @Summary List match/season links
// @Tags match-seasons
// @Produce json
// @Param query query string false "Season name or team name"
// @Success 200 {object} Response{content=[]models.MatchSeasonDetail}
// @Router /match-seasons [get]
func (h *SeasonHandler) GetLinks(c *gin.Context) {
	links, err := h.linkService.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "Match seasons retrieved", links)
}

// @Summary Get a match/season link
// @Tags match-seasons
// @Security BearerAuth
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {object} Response{content=models.MatchSeasonDetail}
// @Router /match-seasons/{id} [get]
func (h *SeasonHandler) GetLink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	link, err := h.linkService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "Match season retrieved", link)
}

// @Summary Link a match to a season
// @Tags match-seasons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param link body models.MatchSeasonRequest true "Link"
// @Success 201 {object} Response{content=models.MatchSeasonDetail}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /match-seasons [post]
func (h *SeasonHandler) CreateLink(c *gin.Context) {
	var req models.MatchSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	link, err := h.linkService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusCreated, "Match season created", link)
}

// @Summary Update a match/season link
// @Tags match-seasons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Link ID"
// @Param link body models.MatchSeasonRequest true "Link"
// @Success 200 {object} Response{content=models.MatchSeasonDetail}
// @Router /match-seasons/{id} [put]
func (h *SeasonHandler) UpdateLink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.MatchSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	link, err := h.linkService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "Match season updated", link)
}

// @Summary Delete a match/season link
// @Tags match-seasons
// @Security BearerAuth
// @Param id path int true "Link ID"
// @Success 200 {object} Response
// @Router /match-seasons/{id} [delete]
func (h *SeasonHandler) DeleteLink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.linkService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Match season deleted")
}
