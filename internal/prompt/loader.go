package prompt

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/Conceptual-Machines/echo-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetLyricsSystemPrompt loads the LYRICS coach instruction
func (l *Loader) GetLyricsSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.LyricsSystemPromptTxt)), nil
}

// GetMelodySystemPrompt loads the MELODY coach instruction
func (l *Loader) GetMelodySystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.MelodySystemPromptTxt)), nil
}

// SystemPrompt returns the system instruction bound to a mode's agent
func (l *Loader) SystemPrompt(mode models.Mode) (string, error) {
	switch mode {
	case models.ModeLyrics:
		return l.GetLyricsSystemPrompt()
	case models.ModeMelody:
		return l.GetMelodySystemPrompt()
	default:
		return "", fmt.Errorf("no system prompt for mode %q", mode)
	}
}
