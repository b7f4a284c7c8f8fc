package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultElevenLabsURL is the music composition endpoint
	DefaultElevenLabsURL = "https://api.elevenlabs.io/v1/music"
	elevenLabsModel      = "music_v1"
	defaultTimeout       = 120 * time.Second
)

// ElevenLabsProvider calls the ElevenLabs music endpoint
type ElevenLabsProvider struct {
	apiKey string
	url    string
	client *http.Client
}

type elevenLabsPayload struct {
	Prompt            string `json:"prompt"`
	ModelID           string `json:"model_id"`
	MusicLengthMs     int    `json:"music_length_ms"`
	ForceInstrumental bool   `json:"force_instrumental"`
}

type elevenLabsError struct {
	Detail struct {
		Message string `json:"message"`
	} `json:"detail"`
}

// NewElevenLabsProvider creates the vendor client. An empty url uses the
// public endpoint and a zero timeout uses 120s.
func NewElevenLabsProvider(apiKey, url string, timeout time.Duration) (*ElevenLabsProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if url == "" {
		url = DefaultElevenLabsURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ElevenLabsProvider{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (p *ElevenLabsProvider) Name() string {
	return "elevenlabs"
}

// Compose posts the prompt and returns the mp3 body
func (p *ElevenLabsProvider) Compose(ctx context.Context, req Request) ([]byte, error) {
	durationMs := req.DurationMs
	if durationMs <= 0 {
		durationMs = DefaultDurationMs
	}

	body, err := json.Marshal(elevenLabsPayload{
		Prompt:            req.Prompt,
		ModelID:           elevenLabsModel,
		MusicLengthMs:     durationMs,
		ForceInstrumental: req.Instrumental,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("audio: failed to build request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	log.Printf("🎵 ElevenLabs compose: model=%s length=%dms instrumental=%t", elevenLabsModel, durationMs, req.Instrumental)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("audio: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("audio: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Message: remoteMessage(data)}
	}
	return data, nil
}

// remoteMessage pulls detail.message out of an error body, falling back to
// the raw text
func remoteMessage(data []byte) string {
	var parsed elevenLabsError
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Detail.Message != "" {
		return parsed.Detail.Message
	}
	return strings.TrimSpace(string(data))
}
