package prompt

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/echo-api/internal/knowledge"
	"github.com/Conceptual-Machines/echo-api/internal/models"
)

const (
	contextHeader      = "SONG CONTEXT (use this to tailor your answer):"
	replyShapeRule     = "\nRULES: 3 bullets max, no paragraphs, end with 1 question.\n\n"
	userMessageLabel   = "USER MESSAGE:\n"
	melodyPreviewRunes = 240
	lyricsPreviewLines = 6
)

// PayloadInput is everything the user turn of a chat call is built from
type PayloadInput struct {
	Song             *models.Song
	Mode             models.Mode
	Rules            []knowledge.Rule
	FocusedLineIndex *int
	UserMessage      string
}

// Builder assembles the user turn sent to a coach agent
type Builder struct {
	ruleLimit int
}

// NewPromptBuilder creates a builder that attaches up to
// knowledge.DefaultLimit rules per turn
func NewPromptBuilder() *Builder {
	return &Builder{ruleLimit: knowledge.DefaultLimit}
}

// Build retrieves the rules relevant to the message and song, then renders
// the payload
func (b *Builder) Build(song *models.Song, mode models.Mode, focused *int, userMessage string) string {
	rules := knowledge.Retrieve(RetrievalQuery(song, userMessage), mode, b.ruleLimit)
	return BuildUserPayload(PayloadInput{
		Song:             song,
		Mode:             mode,
		Rules:            rules,
		FocusedLineIndex: focused,
		UserMessage:      userMessage,
	})
}

// BuildUserPayload renders, in order: song context, the reply shape
// reminder, the rule block, the focused line (when the index is valid) and
// the labeled user message.
func BuildUserPayload(in PayloadInput) string {
	var b strings.Builder

	title, intent, melody, genre, sub := "", "", "", "", ""
	var lyrics []string
	if in.Song != nil {
		title = strings.TrimSpace(in.Song.Title)
		intent = strings.TrimSpace(in.Song.Intent)
		melody = strings.TrimSpace(in.Song.MelodyDescription)
		genre, sub = in.Song.Genre, in.Song.SubGenre
		lyrics = in.Song.RecentLyrics(lyricsPreviewLines)
	}

	b.WriteString(contextHeader + "\n")
	fmt.Fprintf(&b, "- Title: %s\n", title)
	fmt.Fprintf(&b, "- Intent (topic/mood): %s\n", intent)
	if genre != "" || sub != "" {
		fmt.Fprintf(&b, "- Genre/Sub: %s / %s\n", genre, sub)
	}
	if melody != "" {
		fmt.Fprintf(&b, "- Melody description (current): %s\n", truncateRunes(melody, melodyPreviewRunes))
	}
	if len(lyrics) > 0 {
		fmt.Fprintf(&b, "- Recent lyrics:\n%s\n", strings.Join(lyrics, "\n"))
	}
	b.WriteString(replyShapeRule)

	b.WriteString(knowledge.FormatRules(in.Rules))

	if in.Song != nil && in.FocusedLineIndex != nil {
		idx := *in.FocusedLineIndex
		if line, ok := in.Song.LyricLine(idx); ok && line != "" {
			fmt.Fprintf(&b, "FOCUSED LINE (we are rewriting line %d):\n\"%s\"\n\n", idx+1, line)
		}
	}

	b.WriteString(userMessageLabel)
	b.WriteString(in.UserMessage)
	return b.String()
}

// RetrievalQuery is the text the rule retriever scores: the message plus
// the song's title, intent, melody and recent lyrics
func RetrievalQuery(song *models.Song, userMessage string) string {
	if song == nil {
		return userMessage + "\n\n\n\n"
	}
	return strings.Join([]string{
		userMessage,
		strings.TrimSpace(song.Title),
		strings.TrimSpace(song.Intent),
		strings.TrimSpace(song.MelodyDescription),
		strings.Join(song.RecentLyrics(lyricsPreviewLines), "\n"),
	}, "\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
