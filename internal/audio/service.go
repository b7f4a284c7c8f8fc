package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Conceptual-Machines/echo-api/internal/config"
	"github.com/Conceptual-Machines/echo-api/internal/logger"
	"github.com/Conceptual-Machines/echo-api/internal/metrics"
	"github.com/getsentry/sentry-go"
	"golang.org/x/time/rate"
)

// Result is what a generate action shows. Path is set only on success;
// Message is the text to display either way.
type Result struct {
	Path     string
	Message  string
	Duration time.Duration
}

// Succeeded reports whether a track was stored
func (r Result) Succeeded() bool {
	return r.Path != ""
}

// Service runs one composition: prompt, vendor call, storage
type Service struct {
	provider Provider
	store    Store
	limiter  *rate.Limiter
	metrics  metrics.Recorder
	now      func() time.Time
}

// ServiceOption customizes a Service
type ServiceOption func(*Service)

// WithMinInterval spaces vendor calls at least d apart. Zero disables it.
func WithMinInterval(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

func WithMetrics(rec metrics.Recorder) ServiceOption {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithClock replaces the clock used for file names
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService wires a provider and a store. A nil provider yields a service
// whose every generation fails with FailedMessage.
func NewService(provider Provider, store Store, opts ...ServiceOption) *Service {
	if store == nil {
		store = NewLocalStore("")
	}
	s := &Service{
		provider: provider,
		store:    store,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		metrics:  metrics.NewSentryMetrics(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileName is the stored name of a track generated at t
func FileName(t time.Time) string {
	return fmt.Sprintf("song_%s.mp3", t.Format("20060102_150405"))
}

// Generate composes and stores a track. It never returns an error: vendor
// messages and transport failures become Result.Message.
func (s *Service) Generate(ctx context.Context, lyrics []string, melodyDescription string) Result {
	if s.provider == nil {
		logger.Warn("Audio generation requested without a provider", nil)
		return Result{Message: FailedMessage}
	}

	transaction := sentry.StartTransaction(ctx, "audio.generate")
	defer transaction.Finish()
	transaction.SetTag("provider", s.provider.Name())
	ctx = transaction.Context()

	startTime := time.Now()
	result := s.generate(ctx, transaction, lyrics, melodyDescription)
	success := result.Succeeded()

	transaction.SetTag("success", fmt.Sprintf("%t", success))
	s.metrics.RecordAudioGeneration(ctx, time.Since(startTime), success)
	return result
}

func (s *Service) generate(ctx context.Context, transaction *sentry.Span, lyrics []string, melodyDescription string) Result {
	if err := s.limiter.Wait(ctx); err != nil {
		logger.Warn("Audio generation throttled", logger.Fields{"error": err.Error()})
		return Result{Message: FailedMessage}
	}

	req := BuildRequest(lyrics, melodyDescription)

	span := transaction.StartChild("audio.compose")
	data, err := s.provider.Compose(ctx, req)
	span.Finish()
	if err != nil {
		var remote *RemoteError
		if errors.As(err, &remote) {
			logger.Warn("Audio vendor rejected request", logger.Fields{
				"status":  remote.StatusCode,
				"message": remote.Message,
			})
			if remote.Message != "" {
				return Result{Message: remote.Message}
			}
			return Result{Message: FailedMessage}
		}
		logger.Error("Audio generation failed", err, logger.Fields{"provider": s.provider.Name()})
		return Result{Message: FailedMessage}
	}

	span = transaction.StartChild("audio.store")
	path, err := s.store.Save(ctx, FileName(s.now()), data)
	span.Finish()
	if err != nil {
		logger.Error("Failed to store generated audio", err, nil)
		return Result{Message: FailedMessage}
	}

	duration, err := ProbeDuration(data)
	if err != nil {
		logger.Debug("Could not probe generated audio", logger.Fields{"error": err.Error()})
	}

	log.Printf("✅ Music generated: %s (%d bytes, %s)", path, len(data), duration)
	return Result{Path: path, Message: SuccessMessage, Duration: duration}
}

// NewServiceFromConfig builds the vendor client and track store from cfg.
// A missing ElevenLabs key is not an error: the service then reports every
// generation as failed.
func NewServiceFromConfig(ctx context.Context, cfg *config.Config, rec metrics.Recorder) (*Service, error) {
	var provider Provider
	elevenLabs, err := NewElevenLabsProvider(cfg.ElevenLabsAPIKey, cfg.ElevenLabsURL, cfg.AudioTimeout)
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		logger.Warn("Audio generation disabled", logger.Fields{"reason": "ELEVENLABS_API_KEY not set"})
	case err != nil:
		return nil, err
	default:
		provider = elevenLabs
	}

	var store Store
	switch cfg.AudioStore {
	case "s3":
		s3Store := NewS3Store(cfg.AudioS3Key, cfg.AudioS3Secret, cfg.AudioS3Region, cfg.AudioS3Bucket, "generated")
		if err := s3Store.Start(ctx); err != nil {
			return nil, err
		}
		store = s3Store
	case "", "local":
		store = NewLocalStore(cfg.AudioOutputDir)
	default:
		return nil, fmt.Errorf("audio: unknown store %q (allowed: local, s3)", cfg.AudioStore)
	}

	return NewService(provider, store, WithMinInterval(cfg.AudioRateLimit), WithMetrics(rec)), nil
}

// Enabled reports whether a vendor is configured
func (s *Service) Enabled() bool {
	return s.provider != nil
}
