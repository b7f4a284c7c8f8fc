package models

import (
	"fmt"
	"strings"
)

// Mode selects the active coach persona, rule set and panel layout
type Mode string

const (
	ModeLyrics Mode = "LYRICS"
	ModeMelody Mode = "MELODY"
)

// DefaultMode is the mode every new session starts in
const DefaultMode = ModeLyrics

// ParseMode accepts "lyrics"/"melody" in any case
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeLyrics:
		return ModeLyrics, nil
	case ModeMelody:
		return ModeMelody, nil
	default:
		return "", fmt.Errorf("unknown mode: %q (allowed: LYRICS, MELODY)", s)
	}
}

// Other returns the mode a switch action moves to
func (m Mode) Other() Mode {
	if m == ModeMelody {
		return ModeLyrics
	}
	return ModeMelody
}

func (m Mode) String() string {
	return string(m)
}
