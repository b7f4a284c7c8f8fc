// Package audio turns a finished song (lyrics plus a melody description)
// into a short generated track.
package audio

import (
	"context"
	"errors"
	"fmt"
)

const (
	// DefaultDurationMs is the clip length requested from the vendor
	DefaultDurationMs = 20000
	// FailedMessage is shown when generation fails without a vendor message
	FailedMessage = "Generation failed."
	// SuccessMessage is shown after a track was stored
	SuccessMessage = "Music generated successfully!"
)

// ErrMissingAPIKey is returned when a provider is built without credentials
var ErrMissingAPIKey = errors.New("audio: missing api key")

// Request is one composition job
type Request struct {
	Prompt       string
	Instrumental bool
	DurationMs   int
}

// Provider composes audio bytes from a text prompt
type Provider interface {
	Compose(ctx context.Context, req Request) ([]byte, error)
	Name() string
}

// RemoteError is a non-success answer from the vendor
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("audio: remote error %d: %s", e.StatusCode, e.Message)
}
