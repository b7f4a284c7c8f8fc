package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	tokens, chats, audio int
}

func (c *countingRecorder) RecordTokenUsage(context.Context, string, int, int, int) { c.tokens++ }
func (c *countingRecorder) RecordChatReply(context.Context, string, time.Duration, bool) { c.chats++ }
func (c *countingRecorder) RecordAudioGeneration(context.Context, time.Duration, bool) { c.audio++ }

func TestMultiFansOut(t *testing.T) {
	a, b := &countingRecorder{}, &countingRecorder{}
	rec := Multi(a, nil, b)

	ctx := context.Background()
	rec.RecordTokenUsage(ctx, "gemini-2.0-flash", 10, 6, 4)
	rec.RecordChatReply(ctx, "LYRICS", time.Second, true)
	rec.RecordAudioGeneration(ctx, time.Second, false)

	for _, r := range []*countingRecorder{a, b} {
		assert.Equal(t, 1, r.tokens)
		assert.Equal(t, 1, r.chats)
		assert.Equal(t, 1, r.audio)
	}

	// no recorders is a valid no-op
	Multi().RecordChatReply(ctx, "MELODY", time.Second, true)
}

func TestCloudWatchDisabledOutsideProduction(t *testing.T) {
	client, err := NewClient(context.Background(), "development")
	require.NoError(t, err)
	assert.False(t, client.enabled)

	// disabled clients never spawn publishers
	client.RecordAPIRequest("/health", 200, time.Millisecond)
	client.RecordChatReply(context.Background(), "LYRICS", time.Millisecond, true)
	client.RecordAudioGeneration(context.Background(), time.Millisecond, true)
	client.RecordTokenUsage(context.Background(), "m", 1, 1, 0)
}

func TestSentryMetricsWithoutClient(t *testing.T) {
	m := NewSentryMetrics()
	ctx := context.Background()
	m.RecordAPIRequest(ctx, "/api/v1/chat", 500, time.Millisecond)
	m.RecordTokenUsage(ctx, "gemini-2.0-flash", 3, 2, 1)
	m.RecordChatReply(ctx, "MELODY", time.Millisecond, false)
	m.RecordAudioGeneration(ctx, time.Millisecond, true)
}
