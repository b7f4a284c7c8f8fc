package models

import "strings"

// Song is the work-in-progress artifact a session edits.
// Empty strings mean "unset" for Genre, SubGenre and AudioPath.
type Song struct {
	Title             string   `json:"title"`
	Intent            string   `json:"intent"`
	Lyrics            []string `json:"lyrics"`
	MelodyDescription string   `json:"melody_description"`
	Genre             string   `json:"genre,omitempty"`
	SubGenre          string   `json:"sub_genre,omitempty"`
	AudioPath         string   `json:"audio_path,omitempty"`
	Generated         bool     `json:"generated"`
}

// NewSong creates an empty song with the given title and intent
func NewSong(title, intent string) *Song {
	return &Song{
		Title:  title,
		Intent: intent,
		Lyrics: []string{},
	}
}

// AddLyricLine appends a line at the end
func (s *Song) AddLyricLine(line string) {
	s.Lyrics = append(s.Lyrics, line)
}

// InsertLyricLine inserts a line before index; index == len appends.
// Indexes outside [0, len] are ignored.
func (s *Song) InsertLyricLine(index int, line string) {
	if index < 0 || index > len(s.Lyrics) {
		return
	}
	s.Lyrics = append(s.Lyrics, "")
	copy(s.Lyrics[index+1:], s.Lyrics[index:])
	s.Lyrics[index] = line
}

// ReplaceLyricLine swaps the text of an existing line
func (s *Song) ReplaceLyricLine(index int, line string) {
	if !s.validIndex(index) {
		return
	}
	s.Lyrics[index] = line
}

// DeleteLyricLine removes an existing line
func (s *Song) DeleteLyricLine(index int) {
	if !s.validIndex(index) {
		return
	}
	s.Lyrics = append(s.Lyrics[:index], s.Lyrics[index+1:]...)
}

// LyricLine returns the line at index and whether it exists
func (s *Song) LyricLine(index int) (string, bool) {
	if !s.validIndex(index) {
		return "", false
	}
	return s.Lyrics[index], true
}

// RecentLyrics returns the last n lines
func (s *Song) RecentLyrics(n int) []string {
	if n <= 0 || len(s.Lyrics) == 0 {
		return nil
	}
	start := len(s.Lyrics) - n
	if start < 0 {
		start = 0
	}
	return s.Lyrics[start:]
}

func (s *Song) HasLyrics() bool {
	return len(s.Lyrics) > 0
}

// HasMelody reports whether a non-blank melody description exists
func (s *Song) HasMelody() bool {
	return strings.TrimSpace(s.MelodyDescription) != ""
}

// CanGenerate gates audio generation on a melody description
func (s *Song) CanGenerate() bool {
	return s.HasMelody()
}

// SetGeneratedAudio is the only way to mark a song as generated.
// AudioPath and Generated always change together.
func (s *Song) SetGeneratedAudio(path string) {
	if path == "" {
		return
	}
	s.AudioPath = path
	s.Generated = true
}

// Clone returns a deep copy
func (s *Song) Clone() *Song {
	if s == nil {
		return nil
	}
	c := *s
	c.Lyrics = append([]string{}, s.Lyrics...)
	return &c
}

func (s *Song) validIndex(index int) bool {
	return index >= 0 && index < len(s.Lyrics)
}
