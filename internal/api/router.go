package api

import (
	"github.com/Conceptual-Machines/echo-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/echo-api/internal/api/middleware"
	"github.com/Conceptual-Machines/echo-api/internal/drafts"
	"github.com/Conceptual-Machines/echo-api/internal/metrics"
	"github.com/Conceptual-Machines/echo-api/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

// Deps is everything the router wires into handlers
type Deps struct {
	DB         *gorm.DB
	Drafts     *drafts.Store
	Registry   *session.Registry
	Cookies    sessions.Store
	CloudWatch *metrics.Client
	Services   map[string]bool
}

func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())
	router.Use(apimiddleware.SentryMiddleware())
	router.Use(apimiddleware.CORS())
	router.Use(apimiddleware.RequestTracking(deps.CloudWatch))

	// Generated tracks and genre previews
	router.Static("/assets", "./assets")

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Services)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/api/genres", handlers.ListGenres)

	v1 := router.Group("/api/v1")
	v1.Use(apimiddleware.Workspace(deps.Cookies))
	{
		ws := handlers.NewWorkspaceHandler(deps.Registry)
		v1.GET("/workspace", ws.Get)
		v1.POST("/workspace/reset", ws.Reset)
		v1.POST("/songs", ws.StartSong)
		v1.POST("/mode/switch", ws.SwitchMode)
		v1.POST("/chat", ws.Chat)

		v1.POST("/lyrics", ws.AddLine)
		edit := v1.Group("/lyrics/edit")
		{
			edit.POST("/begin", ws.BeginEdit)
			edit.POST("/select", ws.SelectLine)
			edit.POST("/delete", ws.RequestDelete)
			edit.POST("/delete/confirm", ws.ConfirmDelete)
			edit.POST("/delete/cancel", ws.CancelDelete)
			edit.POST("/line", ws.StartEditingLine)
			edit.PUT("/draft", ws.UpdateDraft)
			edit.POST("/save", ws.RequestSave)
			edit.POST("/save/confirm", ws.ConfirmSave)
			edit.POST("/save/reject", ws.RejectSave)
			edit.POST("/cancel", ws.CancelEdit)
			edit.POST("/replacement", ws.AwaitReplacement)
			edit.POST("/replacement/take", ws.TakeReplacement)
		}

		v1.PUT("/melody", ws.SetMelody)
		v1.POST("/genre", ws.SelectGenre)
		v1.POST("/genre/tiles", ws.SetGenreTiles)
		v1.POST("/generate", ws.Generate)

		if deps.Drafts != nil {
			dh := handlers.NewDraftsHandler(deps.Drafts, deps.Registry)
			v1.GET("/drafts", dh.List)
			v1.GET("/drafts/next-title", dh.NextTitle)
			v1.GET("/drafts/:id", dh.Get)
			v1.POST("/drafts", dh.Save)
			v1.POST("/drafts/:id/load", dh.Load)
			v1.DELETE("/drafts/:id", dh.Delete)
		}
	}

	return router
}
