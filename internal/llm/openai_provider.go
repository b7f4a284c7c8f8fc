package llm

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const (
	providerNameOpenAI = "openai"

	// DefaultOpenAIModel is used when LLM_PROVIDER=openai and no CHAT_MODEL is set
	DefaultOpenAIModel = "gpt-4.1-mini"
)

// Reasoning models reject a temperature parameter
var modelsWithReasoning = map[string]bool{
	"gpt-5":      true,
	"gpt-5-mini": true,
	"gpt-5-nano": true,
	"o3":         true,
	"o4-mini":    true,
}

// OpenAIProvider implements the Provider interface using OpenAI's Responses API
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider. Extra request options
// (base URL, HTTP client) are passed through to the SDK.
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, newError(KindConfiguration, "OPENAI_API_KEY not configured", nil)
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIProvider{
		client: &client,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Generate implements non-streaming generation using the Responses API
func (p *OpenAIProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎵 OPENAI GENERATION REQUEST STARTED (Model: %s, turns: %d)", request.Model, len(request.Contents))

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := buildOpenAIParams(request)

	span := transaction.StartChild("openai.api_call")
	apiStartTime := time.Now()
	resp, err := p.client.Responses.New(ctx, params)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, newError(KindTransport, "openai request failed", err)
	}

	log.Printf("⏱️  OPENAI API CALL COMPLETED in %v", apiDuration)

	usage := Usage{
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
		TotalTokens:  int(resp.Usage.TotalTokens),
	}
	log.Printf("📊 OPENAI USAGE: input=%d, output=%d, total=%d", usage.InputTokens, usage.OutputTokens, usage.TotalTokens)

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		transaction.SetTag("success", "false")
		return &GenerationResponse{Usage: usage}, newError(KindEmpty, "openai response did not include any output text", nil)
	}

	log.Printf("✅ OPENAI GENERATION COMPLETED in %v (output_length=%d)", time.Since(startTime), len(text))
	transaction.SetTag("success", "true")
	transaction.SetTag("output_type", "plain_text")

	return &GenerationResponse{
		Text:  text,
		Usage: usage,
	}, nil
}

// buildOpenAIParams converts a GenerationRequest to ResponseNewParams
func buildOpenAIParams(request *GenerationRequest) responses.ResponseNewParams {
	inputItems := responses.ResponseInputParam{}
	for _, turn := range request.Contents {
		role := responses.EasyInputMessageRoleUser
		if turn.Role == RoleModel {
			role = responses.EasyInputMessageRoleAssistant
		}
		inputItems = append(inputItems, responses.ResponseInputItemParamOfMessage(turn.Text, role))
	}

	params := responses.ResponseNewParams{
		Model: request.Model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: inputItems,
		},
	}
	if request.SystemPrompt != "" {
		params.Instructions = openai.String(request.SystemPrompt)
	}
	if request.MaxOutputTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(request.MaxOutputTokens))
	}
	if !modelsWithReasoning[request.Model] {
		params.Temperature = openai.Float(float64(request.Temperature))
	}
	return params
}
