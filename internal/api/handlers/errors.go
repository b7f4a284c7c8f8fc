package handlers

import (
	"errors"
	"net/http"

	"github.com/Conceptual-Machines/echo-api/internal/drafts"
	"github.com/Conceptual-Machines/echo-api/internal/logger"
	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/Conceptual-Machines/echo-api/internal/session"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to status codes. Anything unknown is a 500
// and gets reported.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", err, logger.WithContext(c))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrBlankTopic),
		errors.Is(err, session.ErrBlankMood),
		errors.Is(err, session.ErrBlankLine),
		errors.Is(err, session.ErrEmptyMessage),
		errors.Is(err, session.ErrNoLyrics),
		errors.Is(err, models.ErrUnknownGenre):
		return http.StatusBadRequest
	case errors.Is(err, drafts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoSong),
		errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, session.ErrNothingToGenerate):
		return http.StatusConflict
	case errors.Is(err, session.ErrNoDraftStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
