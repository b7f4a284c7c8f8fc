package llm

import (
	"context"
	"fmt"
	"strings"
)

// ProviderFactory creates providers based on model name or explicit provider choice
type ProviderFactory struct {
	openaiAPIKey string
	geminiAPIKey string
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(openaiAPIKey, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey: openaiAPIKey,
		geminiAPIKey: geminiAPIKey,
	}
}

// GetProvider returns the appropriate provider for the given model/provider name
func (f *ProviderFactory) GetProvider(ctx context.Context, model, providerName string) (Provider, error) {
	if providerName != "" {
		return f.getProviderByName(ctx, providerName)
	}
	return f.getProviderByModel(ctx, model)
}

// DefaultModel returns the chat model used with a provider when none is configured
func DefaultModel(providerName string) string {
	if strings.EqualFold(providerName, providerNameOpenAI) {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}

func (f *ProviderFactory) getProviderByName(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(providerName) {
	case providerNameGemini:
		return NewGeminiProvider(ctx, f.geminiAPIKey)
	case providerNameOpenAI:
		return NewOpenAIProvider(f.openaiAPIKey)
	default:
		return nil, newError(KindConfiguration,
			fmt.Sprintf("unknown provider: %s (allowed: gemini, openai)", providerName), nil)
	}
}

// getProviderByModel infers provider from model name; Gemini is the default
func (f *ProviderFactory) getProviderByModel(ctx context.Context, model string) (Provider, error) {
	modelLower := strings.ToLower(model)
	if strings.HasPrefix(modelLower, "gpt-") || strings.HasPrefix(modelLower, "o3") || strings.HasPrefix(modelLower, "o4") {
		return NewOpenAIProvider(f.openaiAPIKey)
	}
	return NewGeminiProvider(ctx, f.geminiAPIKey)
}
