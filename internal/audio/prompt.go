package audio

import "strings"

const promptPreamble = "Generate a song based on the user's request below.\n" +
	" Follow it as closely as possible while keeping musical coherence. \n" +
	" Avoid adding elements that are clearly outside the requested style.\n"

// BuildRequest renders the composition prompt. A song without lyrics is
// composed as an instrumental.
func BuildRequest(lyrics []string, melodyDescription string) Request {
	lyricsText := strings.Join(lyrics, "\n")
	style := strings.TrimSpace(melodyDescription)

	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("User request melody of style:\n ")
	b.WriteString(style)

	if lyricsText != "" {
		b.WriteString(". User song lyrics: ")
		b.WriteString(lyricsText)
	} else {
		b.WriteString("\n no lyrics only melody")
	}

	return Request{
		Prompt:       b.String(),
		Instrumental: lyricsText == "",
		DurationMs:   DefaultDurationMs,
	}
}
