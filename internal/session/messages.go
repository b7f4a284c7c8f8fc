package session

import (
	"fmt"

	"github.com/Conceptual-Machines/echo-api/internal/models"
)

const (
	WelcomeMessage = "Welcome to **ECHO** ✨\n" +
		"I’m your AI assistant for writing lyrics and shaping melodies.\n" +
		"Let’s create something awesome."

	LyricsGreeting = "Hi! You’re in **LYRICS** mode 🎤\n" +
		"Tell me what you want to write, the vibe, or paste a few lines — and I’ll help you shape them."

	MelodyGreeting = "Hi! You’re in **MELODY** mode 🎶\n" +
		"What vibe do you want (happy/dark/nostalgic), tempo/BPM, and main instruments?"

	GenreHint = "On your left, pick a **genre** 🎧\n" +
		"You can preview each one by clicking the **play** button."

	// UnavailableMessage answers chat sends when the mode has no coach
	UnavailableMessage = "AI agent not available. Please check your API key configuration."
)

func greeting(mode models.Mode) string {
	switch mode {
	case models.ModeLyrics:
		return LyricsGreeting
	case models.ModeMelody:
		return MelodyGreeting
	default:
		return fmt.Sprintf("Hi! You’re in **%s** mode. How can I help you?", mode)
	}
}

func genreSummary(pick models.GenrePick) string {
	return fmt.Sprintf("Nice — you picked **%s / %s**.\n", pick.Genre, pick.SubGenre) +
		"Quick direction question:\n" +
		"• What vibe do you want (happy/dark/nostalgic)?\n" +
		"• Tempo/BPM range?\n" +
		"• Main instruments (e.g., piano, sax, drums)?\n" +
		"Answer in 1–2 lines and I’ll shape a melody prompt."
}

func editLineMessage(index int, line string) string {
	return fmt.Sprintf("Okay — you want to change line %d:\n“%s”\nWhat vibe/meaning do you want instead?", index+1, line)
}
