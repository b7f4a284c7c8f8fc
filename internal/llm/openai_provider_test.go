package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIProvider(t *testing.T) {
	provider, err := NewOpenAIProvider("test-key")
	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Name())

	_, err = NewOpenAIProvider("")
	assert.Equal(t, KindConfiguration, KindOf(err))
}

func TestBuildOpenAIParams(t *testing.T) {
	tests := []struct {
		name            string
		request         *GenerationRequest
		wantItems       int
		wantTemperature bool
	}{
		{
			name: "chat model keeps temperature",
			request: &GenerationRequest{
				Model:           "gpt-4.1-mini",
				SystemPrompt:    "coach",
				Contents:        []Content{{Role: RoleUser, Text: "a"}, {Role: RoleModel, Text: "b"}, {Role: RoleUser, Text: "c"}},
				MaxOutputTokens: 160,
				Temperature:     0.6,
			},
			wantItems:       3,
			wantTemperature: true,
		},
		{
			name: "reasoning model drops temperature",
			request: &GenerationRequest{
				Model:       "gpt-5-mini",
				Contents:    []Content{{Role: RoleUser, Text: "a"}},
				Temperature: 0.6,
			},
			wantItems:       1,
			wantTemperature: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := buildOpenAIParams(tt.request)
			assert.Equal(t, tt.request.Model, params.Model)
			assert.Len(t, params.Input.OfInputItemList, tt.wantItems)
			assert.Equal(t, tt.wantTemperature, params.Temperature.Valid())
			assert.Equal(t, tt.request.SystemPrompt != "", params.Instructions.Valid())
			assert.Equal(t, tt.request.MaxOutputTokens > 0, params.MaxOutputTokens.Valid())
		})
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "resp_1",
			"object": "response",
			"status": "completed",
			"model": "gpt-4.1-mini",
			"output": [{
				"type": "message",
				"id": "msg_1",
				"role": "assistant",
				"status": "completed",
				"content": [{"type": "output_text", "text": "- keep the hook short", "annotations": []}]
			}],
			"usage": {"input_tokens": 20, "output_tokens": 6, "total_tokens": 26}
		}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider("test-key", option.WithBaseURL(server.URL))
	require.NoError(t, err)

	resp, err := provider.Generate(context.Background(), &GenerationRequest{
		Model:    DefaultOpenAIModel,
		Contents: []Content{{Role: RoleUser, Text: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "- keep the hook short", resp.Text)
	assert.Equal(t, 26, resp.Usage.TotalTokens)
}

func TestOpenAIProvider_GenerateRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "bad request", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider("test-key", option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = provider.Generate(context.Background(), &GenerationRequest{Model: DefaultOpenAIModel})
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}
