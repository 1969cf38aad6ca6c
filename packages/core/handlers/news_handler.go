package handlers

import (
	"net/http"
	"strconv"

	authMiddleware "epl-api/packages/auth/middleware"
	"epl-api/packages/core/models"
	"epl-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsService *services.NewsService
}

func NewNewsHandler(newsService *services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// @Summary List news
// @Tags news
// @Produce json
// @Param active query bool false "Only active, unexpired articles"
// @Success 200 {object} Response{content=[]models.News}
// @Router /news [get]
func (h *NewsHandler) GetNews(c *gin.Context) {
	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "Invalid active parameter")
			return
		}
		activeOnly = v
	}
	news, err := h.newsService.GetNews(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "News retrieved", news)
}

// @Summary Search news
// @Tags news
// @Produce json
// @Param query query string true "Text to look for in title, subtitle or body"
// @Success 200 {object} Response{content=[]models.News}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /news/search [get]
func (h *NewsHandler) SearchNews(c *gin.Context) {
	news, err := h.newsService.SearchNews(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "News found", news)
}

// @Summary Get an article
// @Tags news
// @Security BearerAuth
// @Produce json
// @Param id path int true "News ID"
// @Success 200 {object} Response{content=models.News}
// @Failure 404 {object} ErrorResponse
// @Router /news/{id} [get]
func (h *NewsHandler) GetNewsItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	news, err := h.newsService.GetNewsItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "News retrieved", news)
}

// @Summary Publish an article
// @Description The caller becomes the author.
// @Tags news
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param news body models.NewsRequest true "Article"
// @Success 201 {object} Response{content=models.News}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /news [post]
func (h *NewsHandler) CreateNews(c *gin.Context) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req models.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	news, err := h.newsService.CreateNews(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusCreated, "News created", news)
}

// @Summary Edit an article
// @Description Only the author may edit.
// @Tags news
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "News ID"
// @Param news body models.NewsRequest true "Article"
// @Success 200 {object} Response{content=models.News}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /news/{id} [put]
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	userID, ok := authMiddleware.GetUserID(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	news, err := h.newsService.UpdateNews(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondContent(c, http.StatusOK, "News updated", news)
}

// @Summary Delete an article
// @Tags news
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponse
// @Router /news/{id} [delete]
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.newsService.DeleteNews(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "News deleted")
}
