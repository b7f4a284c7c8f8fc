package coach

import (
	"context"
	"errors"
	"testing"

	"github.com/Conceptual-Machines/echo-api/internal/llm"
	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider is a test implementation of the llm.Provider interface
type MockProvider struct {
	name         string
	generateFunc func(ctx context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error)
	requests     []*llm.GenerationRequest
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Generate(ctx context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	m.requests = append(m.requests, request)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, request)
	}
	return &llm.GenerationResponse{Text: "ok"}, nil
}

func replyWith(text string, err error) *MockProvider {
	return &MockProvider{
		name: "mock",
		generateFunc: func(context.Context, *llm.GenerationRequest) (*llm.GenerationResponse, error) {
			if err != nil {
				return nil, err
			}
			return &llm.GenerationResponse{Text: text, Usage: llm.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}}, nil
		},
	}
}

func TestNew(t *testing.T) {
	_, err := NewLyricsAgent(nil)
	assert.ErrorIs(t, err, ErrNoProvider)

	_, err = New(models.Mode("DRUMS"), &MockProvider{name: "mock"})
	assert.Error(t, err)

	agent, err := NewMelodyAgent(&MockProvider{name: "mock"}, WithModel("gemini-2.5-flash"))
	require.NoError(t, err)
	assert.Equal(t, models.ModeMelody, agent.Mode())
	assert.Equal(t, "gemini-2.5-flash", agent.Model())
}

func TestGetResponse_RequestShape(t *testing.T) {
	provider := replyWith("- try a slant rhyme\nWhat image fits?", nil)
	agent, err := NewLyricsAgent(provider)
	require.NoError(t, err)

	history := []models.Message{
		{Role: models.RoleAssistant, Content: "Welcome"},
		{Role: models.RoleUser, Content: "help"},
	}
	reply := agent.GetResponse(context.Background(), "USER MESSAGE:\nhelp", "CURRENT SONG STATE:\nNo song yet.", history)
	assert.Equal(t, "- try a slant rhyme\nWhat image fits?", reply)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, "gemini-2.0-flash", req.Model)
	assert.Equal(t, int32(160), req.MaxOutputTokens)
	assert.InDelta(t, 0.6, req.Temperature, 1e-6)
	assert.Contains(t, req.SystemPrompt, "LYRICS mode")

	require.Len(t, req.Contents, 4)
	assert.Equal(t, llm.Content{Role: llm.RoleUser, Text: "SONG SNAPSHOT (context):\nCURRENT SONG STATE:\nNo song yet."}, req.Contents[0])
	assert.Equal(t, llm.RoleModel, req.Contents[1].Role)
	assert.Equal(t, llm.Content{Role: llm.RoleUser, Text: "help"}, req.Contents[2])
	assert.Equal(t, llm.Content{Role: llm.RoleUser, Text: "USER MESSAGE:\nhelp"}, req.Contents[3])
	for _, c := range req.Contents {
		assert.NotContains(t, c.Text, "beginner-first", "system prompt must stay out of the content turns")
	}
}

func TestGetResponse_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *MockProvider
		want     string
	}{
		{
			name:     "transport error",
			provider: replyWith("", &llm.Error{Kind: llm.KindTransport, Message: "unreachable"}),
			want:     ErrorReply,
		},
		{
			name:     "foreign error",
			provider: replyWith("", errors.New("boom")),
			want:     ErrorReply,
		},
		{
			name:     "empty kind",
			provider: replyWith("", &llm.Error{Kind: llm.KindEmpty, Message: "no text"}),
			want:     EmptyReply,
		},
		{
			name:     "blank text without error",
			provider: replyWith("", nil),
			want:     EmptyReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, err := NewMelodyAgent(tt.provider)
			require.NoError(t, err)
			assert.Equal(t, tt.want, agent.GetResponse(context.Background(), "hi", "", nil))
		})
	}
}

func TestBuildContents(t *testing.T) {
	t.Run("no snapshot no history", func(t *testing.T) {
		got := BuildContents("hello", "", nil)
		assert.Equal(t, []llm.Content{{Role: llm.RoleUser, Text: "hello"}}, got)
	})

	t.Run("trailing duplicate dropped", func(t *testing.T) {
		history := []models.Message{
			{Role: models.RoleUser, Content: "first"},
			{Role: models.RoleAssistant, Content: "reply"},
			{Role: models.RoleUser, Content: "hello"},
		}
		got := BuildContents("hello", "snap", history)
		require.Len(t, got, 4)
		assert.Equal(t, "first", got[1].Text)
		assert.Equal(t, llm.RoleModel, got[2].Role)
		assert.Equal(t, "hello", got[3].Text)
	})

	t.Run("earlier duplicates kept", func(t *testing.T) {
		history := []models.Message{
			{Role: models.RoleUser, Content: "hello"},
			{Role: models.RoleAssistant, Content: "reply"},
		}
		got := BuildContents("hello", "", history)
		assert.Len(t, got, 3)
	})
}
