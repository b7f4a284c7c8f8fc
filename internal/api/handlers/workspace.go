package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/echo-api/internal/api/middleware"
	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/Conceptual-Machines/echo-api/internal/session"
	"github.com/gin-gonic/gin"
)

// WorkspaceHandler exposes the session state machine of the caller's
// workspace
type WorkspaceHandler struct {
	registry *session.Registry
}

func NewWorkspaceHandler(registry *session.Registry) *WorkspaceHandler {
	return &WorkspaceHandler{registry: registry}
}

// WorkspaceResponse is the full view of a workspace after an action
type WorkspaceResponse struct {
	WorkspaceID string           `json:"workspace_id"`
	DraftID     string           `json:"draft_id,omitempty"`
	Song        *models.Song     `json:"song"`
	State       session.State    `json:"state"`
	History     []models.Message `json:"history"`
	CanGenerate bool             `json:"can_generate"`
}

func newWorkspaceResponse(s *session.Session) WorkspaceResponse {
	song := s.Song()
	return WorkspaceResponse{
		WorkspaceID: s.ID(),
		DraftID:     s.DraftID(),
		Song:        song,
		State:       s.State(),
		History:     s.History(),
		CanGenerate: song != nil && song.CanGenerate(),
	}
}

type indexRequest struct {
	Index *int `json:"index" binding:"required"`
}

type textRequest struct {
	Text string `json:"text"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type melodyRequest struct {
	Description string `json:"description"`
}

type genreRequest struct {
	Genre    string `json:"genre"`
	SubGenre string `json:"sub_genre"`
}

type tilesRequest struct {
	Open bool `json:"open"`
}

// run applies action to the caller's workspace and answers with the
// resulting workspace view
func (h *WorkspaceHandler) run(c *gin.Context, action func(*session.Session) error) {
	id, ok := middleware.GetWorkspaceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing workspace"})
		return
	}

	var resp WorkspaceResponse
	err := h.registry.Do(id, func(s *session.Session) error {
		if err := action(s); err != nil {
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

// runIndexed binds {"index": n} and applies action with it
func (h *WorkspaceHandler) runIndexed(c *gin.Context, action func(*session.Session, int) error) {
	var req indexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(s *session.Session) error {
		return action(s, *req.Index)
	})
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	h.run(c, func(*session.Session) error { return nil })
}

func (h *WorkspaceHandler) StartSong(c *gin.Context) {
	var req session.NewSongInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(s *session.Session) error {
		return s.StartSong(c.Request.Context(), req)
	})
}

func (h *WorkspaceHandler) Reset(c *gin.Context) {
	h.run(c, func(s *session.Session) error {
		s.Reset()
		return nil
	})
}

func (h *WorkspaceHandler) SwitchMode(c *gin.Context) {
	h.run(c, (*session.Session).SwitchMode)
}

func (h *WorkspaceHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, ok := middleware.GetWorkspaceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing workspace"})
		return
	}

	var reply session.Reply
	var resp WorkspaceResponse
	err := h.registry.Do(id, func(s *session.Session) error {
		var err error
		if reply, err = s.Send(c.Request.Context(), req.Message); err != nil {
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
		"reply":     reply,
		"workspace": resp,
	})
}

func (h *WorkspaceHandler) AddLine(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(s *session.Session) error {
		return s.AddLine(req.Text)
	})
}

func (h *WorkspaceHandler) BeginEdit(c *gin.Context) {
	h.run(c, (*session.Session).BeginEdit)
}

func (h *WorkspaceHandler) SelectLine(c *gin.Context) {
	h.runIndexed(c, (*session.Session).SelectLine)
}

func (h *WorkspaceHandler) RequestDelete(c *gin.Context) {
	h.runIndexed(c, (*session.Session).RequestDelete)
}

func (h *WorkspaceHandler) ConfirmDelete(c *gin.Context) {
	h.run(c, (*session.Session).ConfirmDelete)
}

func (h *WorkspaceHandler) CancelDelete(c *gin.Context) {
	h.run(c, (*session.Session).CancelDelete)
}

func (h *WorkspaceHandler) StartEditingLine(c *gin.Context) {
	h.runIndexed(c, (*session.Session).StartEditingLine)
}

func (h *WorkspaceHandler) UpdateDraft(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(s *session.Session) error {
		return s.UpdateDraft(req.Text)
	})
}

func (h *WorkspaceHandler) RequestSave(c *gin.Context) {
	h.run(c, (*session.Session).RequestSave)
}

func (h *WorkspaceHandler) ConfirmSave(c *gin.Context) {
	h.run(c, (*session.Session).ConfirmSave)
}

func (h *WorkspaceHandler) RejectSave(c *gin.Context) {
	h.run(c, (*session.Session).RejectSave)
}

func (h *WorkspaceHandler) CancelEdit(c *gin.Context) {
	h.run(c, (*session.Session).CancelEdit)
}

func (h *WorkspaceHandler) AwaitReplacement(c *gin.Context) {
	h.runIndexed(c, (*session.Session).AwaitReplacement)
}

// TakeReplacement hands out the line replacement captured by chat, if any
func (h *WorkspaceHandler) TakeReplacement(c *gin.Context) {
	id, ok := middleware.GetWorkspaceID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing workspace"})
		return
	}

	var (
		index int
		text  string
		found bool
	)
	_ = h.registry.Do(id, func(s *session.Session) error {
		index, text, found = s.TakePendingReplacement()
		return nil
	})

	if !found {
		c.JSON(http.StatusOK, gin.H{"pending": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": true, "index": index, "text": text})
}

func (h *WorkspaceHandler) SetMelody(c *gin.Context) {
	var req melodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(s *session.Session) error {
		return s.SetMelodyDescription(req.Description)
	})
}

// SelectGenre picks a genre, or a genre and sub-genre in one call
func (h *WorkspaceHandler) SelectGenre(c *gin.Context) {
	var req genreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(s *session.Session) error {
		if req.Genre == "" {
			_, err := s.PickSubGenre(req.SubGenre)
			return err
		}
		if req.SubGenre == "" {
			return s.PickGenre(req.Genre)
		}
		_, err := s.SelectGenre(req.Genre, req.SubGenre)
		return err
	})
}

func (h *WorkspaceHandler) SetGenreTiles(c *gin.Context) {
	var req tilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(s *session.Session) error {
		return s.SetGenreTilesOpen(req.Open)
	})
}
