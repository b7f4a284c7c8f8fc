package metrics

import (
	"context"
	"time"
)

// Recorder is what the coach agents and the audio service report to
type Recorder interface {
	RecordTokenUsage(ctx context.Context, model string, totalTokens, inputTokens, outputTokens int)
	RecordChatReply(ctx context.Context, mode string, duration time.Duration, success bool)
	RecordAudioGeneration(ctx context.Context, duration time.Duration, success bool)
}

type multiRecorder []Recorder

// Multi fans every record out to all recorders. With none it records nothing.
func Multi(recorders ...Recorder) Recorder {
	out := make(multiRecorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multiRecorder) RecordTokenUsage(ctx context.Context, model string, total, input, output int) {
	for _, r := range m {
		r.RecordTokenUsage(ctx, model, total, input, output)
	}
}

func (m multiRecorder) RecordChatReply(ctx context.Context, mode string, d time.Duration, success bool) {
	for _, r := range m {
		r.RecordChatReply(ctx, mode, d, success)
	}
}

func (m multiRecorder) RecordAudioGeneration(ctx context.Context, d time.Duration, success bool) {
	for _, r := range m {
		r.RecordAudioGeneration(ctx, d, success)
	}
}
