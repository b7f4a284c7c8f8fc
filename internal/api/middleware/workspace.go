package middleware

import (
	"net/http"

	"github.com/Conceptual-Machines/echo-api/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	// WorkspaceIDKey is the gin context key holding the caller's workspace
	WorkspaceIDKey = "workspace_id"

	workspaceCookie = "echo_workspace"
	workspaceHeader = "X-Workspace-ID"
	workspaceMaxAge = 30 * 24 * 60 * 60
)

// NewWorkspaceStore creates the signed cookie store for workspace ids
func NewWorkspaceStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.Path = "/"
	store.Options.MaxAge = workspaceMaxAge
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// Workspace resolves which workspace a request acts on. An explicit
// X-Workspace-ID header wins (CLI and scripted clients); browsers get a
// signed cookie minted on their first request.
func Workspace(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(workspaceHeader); id != "" {
			if _, err := uuid.Parse(id); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid X-Workspace-ID header"})
				c.Abort()
				return
			}
			setWorkspace(c, id)
			c.Next()
			return
		}

		// a tampered or expired cookie yields a fresh session
		session, _ := store.Get(c.Request, workspaceCookie)
		id, _ := session.Values[WorkspaceIDKey].(string)
		if id == "" {
			id = uuid.New().String()
			session.Values[WorkspaceIDKey] = id
			if err := session.Save(c.Request, c.Writer); err != nil {
				logger.Error("Failed to save workspace cookie", err, logger.Fields{
					"request_id": c.GetString("request_id"),
				})
			}
		}

		setWorkspace(c, id)
		c.Next()
	}
}

// GetWorkspaceID returns the workspace resolved by Workspace
func GetWorkspaceID(c *gin.Context) (string, bool) {
	id := c.GetString(WorkspaceIDKey)
	return id, id != ""
}

func setWorkspace(c *gin.Context, id string) {
	c.Set(WorkspaceIDKey, id)
	c.Header(workspaceHeader, id)
}
