package llm

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"

	// DefaultGeminiModel is the model the coach agents call
	DefaultGeminiModel = "gemini-2.0-flash"
)

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	client *genai.Client
}

// GeminiOption customizes the underlying genai client
type GeminiOption func(*genai.ClientConfig)

// WithGeminiBaseURL points the client at another endpoint (tests, proxies)
func WithGeminiBaseURL(url string) GeminiOption {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

// NewGeminiProvider creates a new Gemini provider.
// A missing key is a configuration error reported here, once.
func NewGeminiProvider(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, newError(KindConfiguration, "GEMINI_API_KEY not configured", nil)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, newError(KindConfiguration, "failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate implements non-streaming generation using Gemini's API
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 GEMINI GENERATION REQUEST STARTED (Model: %s, turns: %d)", request.Model, len(request.Contents))

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	contents := buildGeminiContents(request.Contents)
	config := buildGeminiConfig(request)

	span := transaction.StartChild("gemini.api_call")
	apiStartTime := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, request.Model, contents, config)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, newError(KindTransport, "gemini request failed", err)
	}

	log.Printf("⏱️  GEMINI API CALL COMPLETED in %v", apiDuration)

	text := strings.TrimSpace(result.Text())
	usage := geminiUsage(result)
	log.Printf("📊 GEMINI USAGE: input=%d, output=%d, total=%d", usage.InputTokens, usage.OutputTokens, usage.TotalTokens)

	if text == "" {
		transaction.SetTag("success", "false")
		log.Printf("⚠️  GEMINI RESPONSE EMPTY after %v", time.Since(startTime))
		return &GenerationResponse{Usage: usage}, newError(KindEmpty, "gemini response did not include any output text", nil)
	}

	log.Printf("✅ GEMINI GENERATION COMPLETED in %v (output_length=%d)", time.Since(startTime), len(text))
	transaction.SetTag("success", "true")

	return &GenerationResponse{
		Text:  text,
		Usage: usage,
	}, nil
}

// buildGeminiContents converts our turns to Gemini Content; anything that
// is not the model's own turn is sent as user
func buildGeminiContents(turns []Content) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := genai.RoleUser
		if turn.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(role)))
	}
	return contents
}

func buildGeminiConfig(request *GenerationRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: request.MaxOutputTokens,
		Temperature:     genai.Ptr(request.Temperature),
	}
	if request.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemPrompt}},
		}
	}
	return config
}

func geminiUsage(result *genai.GenerateContentResponse) Usage {
	if result == nil || result.UsageMetadata == nil {
		return Usage{}
	}
	return Usage{
		InputTokens:  int(result.UsageMetadata.PromptTokenCount),
		OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
	}
}
