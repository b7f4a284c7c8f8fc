package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Conceptual-Machines/echo-api/internal/models"
)

// HistoryWindow is how many past messages accompany a chat call
const HistoryWindow = 3

var newlineRuns = regexp.MustCompile(`\n+`)

// BuildSongSnapshot renders the full song state sent as the context turn
func BuildSongSnapshot(song *models.Song) string {
	if song == nil {
		return "CURRENT SONG STATE:\nNo song yet."
	}

	lines := []string{
		"CURRENT SONG STATE:",
		"Title: " + song.Title,
		"Genre: " + orNotSet(song.Genre),
		"Sub-Genre: " + orNotSet(song.SubGenre),
		"Melody: " + orNotSet(song.MelodyDescription),
		"",
		"Lyrics (current version):",
	}
	if len(song.Lyrics) == 0 {
		lines = append(lines, "— No lyrics yet —")
	}
	for i, l := range song.Lyrics {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, l))
	}
	return strings.Join(lines, "\n")
}

// RecentHistory returns the last n messages, minus a trailing user entry
// that repeats the message about to be sent.
// A user who deliberately repeats their previous message loses that entry
// from the window as well.
func RecentHistory(history []models.Message, userMessage string, n int) []models.Message {
	if n <= 0 || len(history) == 0 {
		return []models.Message{}
	}
	start := len(history) - n
	if start < 0 {
		start = 0
	}
	recent := make([]models.Message, len(history)-start)
	copy(recent, history[start:])

	if last := recent[len(recent)-1]; last.Role == models.RoleUser && last.Content == userMessage {
		recent = recent[:len(recent)-1]
	}
	return recent
}

// CompactNewlines collapses runs of newlines and trims the reply
func CompactNewlines(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(newlineRuns.ReplaceAllString(text, "\n"))
}

func orNotSet(s string) string {
	if s == "" {
		return "Not set"
	}
	return s
}
