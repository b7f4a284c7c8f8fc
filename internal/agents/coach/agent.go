// Package coach implements the per-mode songwriting coaches that wrap a
// text-generation provider.
package coach

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Conceptual-Machines/echo-api/internal/llm"
	"github.com/Conceptual-Machines/echo-api/internal/logger"
	"github.com/Conceptual-Machines/echo-api/internal/metrics"
	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/Conceptual-Machines/echo-api/internal/observability"
	"github.com/Conceptual-Machines/echo-api/internal/prompt"
	"github.com/getsentry/sentry-go"
)

const (
	// ErrorReply replaces the model reply on any provider failure
	ErrorReply = "Error calling Gemini API."
	// EmptyReply replaces a blank model reply
	EmptyReply = "..."

	defaultMaxOutputTokens int32   = 160
	defaultTemperature     float32 = 0.6

	snapshotPrefix = "SONG SNAPSHOT (context):\n"
)

// ErrNoProvider is returned when an agent is built without a backend
var ErrNoProvider = errors.New("coach: no llm provider")

// Agent is a mode-bound coach: fixed persona, fixed sampling settings
type Agent struct {
	provider     llm.Provider
	mode         models.Mode
	systemPrompt string
	model        string
	maxTokens    int32
	temperature  float32
	metrics      metrics.Recorder
}

// Option customizes an Agent
type Option func(*Agent)

// WithModel overrides the default gemini-2.0-flash model
func WithModel(model string) Option {
	return func(a *Agent) {
		if model != "" {
			a.model = model
		}
	}
}

// WithMetrics sets where reply timings and token usage are reported
func WithMetrics(rec metrics.Recorder) Option {
	return func(a *Agent) {
		if rec != nil {
			a.metrics = rec
		}
	}
}

// New creates the coach for a mode
func New(mode models.Mode, provider llm.Provider, opts ...Option) (*Agent, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}

	systemPrompt, err := prompt.NewPromptLoader().SystemPrompt(mode)
	if err != nil {
		return nil, fmt.Errorf("coach: %w", err)
	}

	agent := &Agent{
		provider:     provider,
		mode:         mode,
		systemPrompt: systemPrompt,
		model:        llm.DefaultGeminiModel,
		maxTokens:    defaultMaxOutputTokens,
		temperature:  defaultTemperature,
		metrics:      metrics.NewSentryMetrics(),
	}
	for _, opt := range opts {
		opt(agent)
	}

	log.Printf("🎤 %s COACH INITIALIZED (provider: %s, model: %s)", mode, provider.Name(), agent.model)
	return agent, nil
}

// NewLyricsAgent creates the LYRICS mode coach
func NewLyricsAgent(provider llm.Provider, opts ...Option) (*Agent, error) {
	return New(models.ModeLyrics, provider, opts...)
}

// NewMelodyAgent creates the MELODY mode coach
func NewMelodyAgent(provider llm.Provider, opts ...Option) (*Agent, error) {
	return New(models.ModeMelody, provider, opts...)
}

// Mode returns the mode the agent coaches
func (a *Agent) Mode() models.Mode {
	return a.mode
}

// Model returns the model name sent to the provider
func (a *Agent) Model() string {
	return a.model
}

// GetResponse asks the model for one short coaching reply. It never fails:
// provider errors become ErrorReply and blank output becomes EmptyReply.
func (a *Agent) GetResponse(ctx context.Context, userMessage, songSnapshot string, history []models.Message) string {
	startTime := time.Now()

	transaction := sentry.StartTransaction(ctx, "coach.reply")
	defer transaction.Finish()
	transaction.SetTag("mode", a.mode.String())
	transaction.SetTag("model", a.model)
	ctx = transaction.Context()

	request := &llm.GenerationRequest{
		Model:           a.model,
		SystemPrompt:    a.systemPrompt,
		Contents:        BuildContents(userMessage, songSnapshot, history),
		MaxOutputTokens: a.maxTokens,
		Temperature:     a.temperature,
	}

	trace := observability.GetClient().StartTrace(ctx, "coach.reply", map[string]interface{}{
		"mode": a.mode.String(),
	})
	defer trace.Finish()
	generation := trace.Generation(a.model, map[string]interface{}{
		"provider": a.provider.Name(),
		"turns":    len(request.Contents),
	})
	defer generation.Finish()

	span := transaction.StartChild("coach.provider_call")
	resp, err := a.provider.Generate(ctx, request)
	span.Finish()
	duration := time.Since(startTime)

	if resp != nil {
		a.metrics.RecordTokenUsage(ctx, a.model, resp.Usage.TotalTokens, resp.Usage.InputTokens, resp.Usage.OutputTokens)
		generation.LogChatResponse(a.model, request.Contents, resp.Text, resp.Usage.InputTokens, resp.Usage.OutputTokens, nil)
	}

	if err != nil {
		transaction.SetTag("success", "false")
		a.metrics.RecordChatReply(ctx, a.mode.String(), duration, false)

		if llm.KindOf(err) == llm.KindEmpty {
			logger.Warn("Coach returned empty reply", logger.Fields{"mode": a.mode.String(), "model": a.model})
			return EmptyReply
		}
		generation.SetLevel("ERROR")
		logger.Error("Coach provider call failed", err, logger.Fields{
			"mode":     a.mode.String(),
			"model":    a.model,
			"provider": a.provider.Name(),
			"kind":     string(llm.KindOf(err)),
		})
		return ErrorReply
	}

	transaction.SetTag("success", "true")
	a.metrics.RecordChatReply(ctx, a.mode.String(), duration, true)
	logger.LogChatCompletion(ctx, a.model, duration, resp.Usage.Map(), logger.Fields{"mode": a.mode.String()})

	if resp.Text == "" {
		return EmptyReply
	}
	return resp.Text
}

// BuildContents orders the turns sent to the model: the song snapshot as a
// context turn, the history with assistant turns mapped to the model role,
// then the current message. A final history entry that repeats the current
// message is skipped.
func BuildContents(userMessage, songSnapshot string, history []models.Message) []llm.Content {
	contents := make([]llm.Content, 0, len(history)+2)

	if songSnapshot != "" {
		contents = append(contents, llm.Content{Role: llm.RoleUser, Text: snapshotPrefix + songSnapshot})
	}

	if n := len(history); n > 0 && history[n-1].Role == models.RoleUser && history[n-1].Content == userMessage {
		history = history[:n-1]
	}
	for _, msg := range history {
		role := llm.RoleUser
		if msg.Role == models.RoleAssistant {
			role = llm.RoleModel
		}
		contents = append(contents, llm.Content{Role: role, Text: msg.Content})
	}

	return append(contents, llm.Content{Role: llm.RoleUser, Text: userMessage})
}
