package handlers

import (
	"context"
	"net/http"

	"epl-api/packages/core/models"
	"epl-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type eventService interface {
	List(ctx context.Context, query string) ([]models.EventDetail, error)
	Get(ctx context.Context, id uint) (*models.EventDetail, error)
	Create(ctx context.Context, req models.EventRequest) (*models.EventDetail, error)
	Update(ctx context.Context, id uint, req models.EventRequest) (*models.EventDetail, error)
	Delete(ctx context.Context, id uint) error
}

// EventHandler serves /goals, /assists and /cards.
type EventHandler struct {
	service eventService
	noun    string
	respond func(c *gin.Context, status int, message string, payload any)
}

func NewGoalHandler(s *services.GoalService) *EventHandler {
	return &EventHandler{service: s, noun: "Goal", respond: respondContent}
}

func NewAssistHandler(s *services.AssistService) *EventHandler {
	return &EventHandler{service: s, noun: "Assist", respond: respondContent}
}

func NewCardHandler(s *services.CardService) *EventHandler {
	return &EventHandler{service: s, noun: "Card", respond: respondData}
}

// List match events
// @Summary List goals, assists or cards
// @Tags events
// @Produce json
// @Param query query string false "Player name, team name or match team name"
// @Success 200 {object} Response{content=[]models.EventDetail}
// @Router /goals [get]
// @Router /assists [get]
// @Router /cards [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, h.noun+"s retrieved", events)
}

// @Summary Get a goal, assist or card
// @Tags events
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} Response{content=models.EventDetail}
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /goals/{id} [get]
// @Router /assists/{id} [get]
// @Router /cards/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, h.noun+" retrieved", event)
}

// @Summary Record a goal, assist or card
// @Tags events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param event body models.EventRequest true "Event (card_type only for cards)"
// @Success 201 {object} Response{content=models.EventDetail}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /goals [post]
// @Router /assists [post]
// @Router /cards [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	event, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, h.noun+" created", event)
}

// @Summary Edit a goal, assist or card
// @Tags events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID"
// @Param event body models.EventRequest true "Event"
// @Success 200 {object} Response{content=models.EventDetail}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /goals/{id} [put]
// @Router /assists/{id} [put]
// @Router /cards/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	event, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, h.noun+" updated", event)
}

// @Summary Delete a goal, assist or card
// @Tags events
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponse
// @Router /goals/{id} [delete]
// @Router /assists/{id} [delete]
// @Router /cards/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, h.noun+" deleted")
}
