package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/echo-api/internal/api/middleware"
	"github.com/Conceptual-Machines/echo-api/internal/session"
	"github.com/gin-gonic/gin"
)

// Generate composes a track for the workspace song. Vendor failures are a
// 200 with success=false: the song is untouched and the message is shown.
func (h *WorkspaceHandler) Generate(c *gin.Context) {
	id, ok := middleware.GetWorkspaceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing workspace"})
		return
	}

	var outcome session.GenerateOutcome
	var resp WorkspaceResponse
	err := h.registry.Do(id, func(s *session.Session) error {
		var err error
		if outcome, err = s.Generate(c.Request.Context()); err != nil {
			return err
		}
		resp = newWorkspaceResponse(s)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generation": outcome,
		"workspace":  resp,
	})
}
