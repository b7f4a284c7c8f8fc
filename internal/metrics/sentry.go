package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true,
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordTokenUsage tags the running transaction with the reply's token counts
func (m *SentryMetrics) RecordTokenUsage(ctx context.Context, model string, totalTokens, inputTokens, outputTokens int) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("llm.model", model)
		transaction.SetData("llm.total_tokens", totalTokens)
		transaction.SetData("llm.input_tokens", inputTokens)
		transaction.SetData("llm.output_tokens", outputTokens)
	}

	span := sentry.StartSpan(ctx, "llm.token_usage")
	defer span.Finish()

	span.SetTag("model", model)
	span.SetData("total_tokens", totalTokens)
	span.SetData("input_tokens", inputTokens)
	span.SetData("output_tokens", outputTokens)
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Token Usage: %s", model)
}

// RecordChatReply records how long a coach reply took
func (m *SentryMetrics) RecordChatReply(ctx context.Context, mode string, duration time.Duration, success bool) {
	m.recordDuration(ctx, "coach.reply", duration, success, map[string]string{"mode": mode})
}

// RecordAudioGeneration records one music vendor round trip
func (m *SentryMetrics) RecordAudioGeneration(ctx context.Context, duration time.Duration, success bool) {
	m.recordDuration(ctx, "audio.generate", duration, success, nil)
}

func (m *SentryMetrics) recordDuration(ctx context.Context, op string, duration time.Duration, success bool, tags map[string]string) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, op)
	defer span.Finish()

	span.SetTag("success", fmt.Sprintf("%t", success))
	for k, v := range tags {
		span.SetTag(k, v)
	}
	span.SetData("duration_ms", duration.Milliseconds())

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("%s: %t", op, success)
}
