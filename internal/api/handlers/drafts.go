package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/echo-api/internal/api/middleware"
	"github.com/Conceptual-Machines/echo-api/internal/drafts"
	"github.com/Conceptual-Machines/echo-api/internal/session"
	"github.com/gin-gonic/gin"
)

type DraftsHandler struct {
	store    *drafts.Store
	registry *session.Registry
}

func NewDraftsHandler(store *drafts.Store, registry *session.Registry) *DraftsHandler {
	return &DraftsHandler{store: store, registry: registry}
}

func (h *DraftsHandler) List(c *gin.Context) {
	list, err := h.store.ListDrafts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": list})
}

func (h *DraftsHandler) Get(c *gin.Context) {
	draft, err := h.store.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftsHandler) NextTitle(c *gin.Context) {
	base := c.DefaultQuery("base", drafts.DefaultTitleBase)
	title, err := h.store.NextDraftTitle(c.Request.Context(), base)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": title})
}

// Save stores the caller's workspace song
func (h *DraftsHandler) Save(c *gin.Context) {
	id, ok := middleware.GetWorkspaceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing workspace"})
		return
	}

	var draftID string
	err := h.registry.Do(id, func(s *session.Session) error {
		var err error
		draftID, err = s.SaveDraft(c.Request.Context())
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": draftID})
}

// Load opens a draft in the caller's workspace
func (h *DraftsHandler) Load(c *gin.Context) {
	id, ok := middleware.GetWorkspaceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing workspace"})
		return
	}

	var resp WorkspaceResponse
	err := h.registry.Do(id, func(s *session.Session) error {
		if err := s.LoadDraft(c.Request.Context(), c.Param("id")); err != nil {
			return err
		}
		resp = newWorkspaceResponse(s)
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DraftsHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
