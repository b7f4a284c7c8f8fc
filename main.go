package main

import (
	"context"
	"log"
	"time"

	"github.com/Conceptual-Machines/echo-api/internal/agents/coach"
	"github.com/Conceptual-Machines/echo-api/internal/api"
	"github.com/Conceptual-Machines/echo-api/internal/api/middleware"
	"github.com/Conceptual-Machines/echo-api/internal/audio"
	"github.com/Conceptual-Machines/echo-api/internal/config"
	"github.com/Conceptual-Machines/echo-api/internal/database"
	"github.com/Conceptual-Machines/echo-api/internal/drafts"
	"github.com/Conceptual-Machines/echo-api/internal/llm"
	"github.com/Conceptual-Machines/echo-api/internal/logger"
	"github.com/Conceptual-Machines/echo-api/internal/metrics"
	"github.com/Conceptual-Machines/echo-api/internal/observability"
	"github.com/Conceptual-Machines/echo-api/internal/session"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "echo-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	observability.InitializeLangfuse(ctx, cfg)

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}
	recorder := metrics.Multi(metrics.NewSentryMetrics(), cloudwatch)

	db, err := database.Connect(ctx, cfg.DBType, cfg.DatabaseURL, !cfg.IsProduction())
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to run migrations:", err)
	}
	draftStore := drafts.NewStore(db)

	audioService, err := audio.NewServiceFromConfig(ctx, cfg, recorder)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to set up audio generation:", err)
	}

	lyricsAgent, melodyAgent := buildAgents(ctx, cfg, recorder)

	deps := session.Dependencies{
		Drafts: draftStore,
		Audio:  audioService,
	}
	// a nil *coach.Agent must stay a nil interface
	if lyricsAgent != nil {
		deps.LyricsAgent = lyricsAgent
	}
	if melodyAgent != nil {
		deps.MelodyAgent = melodyAgent
	}

	registry, err := session.NewRegistry(cfg.MaxWorkspaces, deps)
	if err != nil {
		log.Fatal("Failed to create workspace registry:", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(api.Deps{
		DB:         db,
		Drafts:     draftStore,
		Registry:   registry,
		Cookies:    middleware.NewWorkspaceStore(cfg.SessionSecret, cfg.IsProduction()),
		CloudWatch: cloudwatch,
		Services: map[string]bool{
			"lyrics_coach": lyricsAgent != nil,
			"melody_coach": melodyAgent != nil,
			"audio":        audioService.Enabled(),
		},
	})

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

// buildAgents creates both coaches on the configured provider. A missing
// key leaves the coaches nil so chat answers with the unavailable message.
func buildAgents(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (*coach.Agent, *coach.Agent) {
	model := cfg.ChatModel
	if model == "" {
		model = llm.DefaultModel(cfg.LLMProvider)
	}

	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	provider, err := factory.GetProvider(ctx, model, cfg.LLMProvider)
	if err != nil {
		logger.Warn("AI coaches unavailable", logger.Fields{
			"provider": cfg.LLMProvider,
			"error":    err.Error(),
		})
		return nil, nil
	}

	opts := []coach.Option{coach.WithModel(model), coach.WithMetrics(recorder)}
	lyrics, err := coach.NewLyricsAgent(provider, opts...)
	if err != nil {
		logger.Error("Failed to create lyrics coach", err, nil)
		lyrics = nil
	}
	melody, err := coach.NewMelodyAgent(provider, opts...)
	if err != nil {
		logger.Error("Failed to create melody coach", err, nil)
		melody = nil
	}
	return lyrics, melody
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization":  true,
		"cookie":         true,
		"x-api-key":      true,
		"x-workspace-id": true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
