package llm

import (
	"context"
)

// Provider defines the interface for text generation backends
type Provider interface {
	// Generate sends one chat turn and returns the model's plain-text reply
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// Content roles as the model sees them
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Content is one ordered turn of the conversation
type Content struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model string
	// SystemPrompt is passed out-of-band, never as a content turn
	SystemPrompt    string
	Contents        []Content
	MaxOutputTokens int32
	Temperature     float32
}

// Usage is the token accounting reported by the backend
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Map returns usage in the shape observability.Generation.Usage expects
func (u Usage) Map() map[string]any {
	return map[string]any{
		"input_tokens":  u.InputTokens,
		"output_tokens": u.OutputTokens,
		"total_tokens":  u.TotalTokens,
	}
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}
