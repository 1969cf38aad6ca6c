package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"epl-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Response is the envelope every core endpoint answers with. Data and Content
// are alternatives: which one an endpoint fills is part of its contract.
type Response struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Message    string `json:"message" example:"OK"`
	Data       any    `json:"data,omitempty"`
	Content    any    `json:"content,omitempty"`
}

// ErrorResponse documents the error envelope for swag.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode" example:"404"`
	Message    string `json:"message" example:"match not found"`
}

func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{StatusCode: status, Message: message, Data: data})
}

func respondContent(c *gin.Context, status int, message string, content any) {
	c.JSON(status, Response{StatusCode: status, Message: message, Content: content})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Response{StatusCode: status, Message: message})
}

// respondError maps service errors to HTTP codes. Unknown errors are logged
// and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrBadRequest):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		respondMessage(c, status, "Internal server error")
		return
	}
	respondMessage(c, status, err.Error())
}

func respondBindError(c *gin.Context, err error) {
	respondMessage(c, http.StatusBadRequest, err.Error())
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondMessage(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// parseQueryID reads an optional positive integer query parameter; absent is 0.
func parseQueryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// RequestLogger logs one line per request with zerolog.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
