package session

import (
	"strings"

	"github.com/Conceptual-Machines/echo-api/internal/models"
)

const (
	stylePrefix    = "Style:"
	substylePrefix = "Substyle:"
	genreNotesLine = "Add extra notes about vibe, tempo, and instruments"
)

// ApplyGenreHeader writes the Style/Substyle header into a melody
// description. An existing header pair on the first two lines is replaced
// and the text after it kept; otherwise the header is prepended. An empty
// description also gets a prompt for extra notes.
func ApplyGenreHeader(description string, pick models.GenrePick) string {
	header := stylePrefix + " " + pick.Genre + "\n" + substylePrefix + " " + pick.SubGenre
	current := strings.TrimSpace(description)

	lines := strings.Split(current, "\n")
	if len(lines) >= 2 && strings.HasPrefix(lines[0], stylePrefix) && strings.HasPrefix(lines[1], substylePrefix) {
		rest := strings.TrimLeft(strings.Join(lines[2:], "\n"), " \t\r\n")
		if rest == "" {
			return header
		}
		return strings.TrimSpace(header + "\n" + rest)
	}

	if current == "" {
		return header + "\n" + genreNotesLine
	}
	return header + "\n\n" + current
}

// PickGenre selects a genre tile. Picking a different genre clears the
// sub-genre selection.
func (s *Session) PickGenre(genre string) error {
	if err := s.requireMelody(); err != nil {
		return err
	}
	name, err := models.ResolveGenre(genre)
	if err != nil {
		return err
	}
	if name != s.state.SelectedGenre {
		s.state.SelectedSubGenre = ""
	}
	s.state.SelectedGenre = name
	return nil
}

// PickSubGenre completes the selection started by PickGenre. It reports
// whether the pick was applied to the song.
func (s *Session) PickSubGenre(subGenre string) (bool, error) {
	if err := s.requireMelody(); err != nil {
		return false, err
	}
	if s.state.SelectedGenre == "" {
		return false, ErrInvalidTransition
	}
	return s.SelectGenre(s.state.SelectedGenre, subGenre)
}

// SelectGenre picks a genre and sub-genre in one step. A pair is applied
// once: later selections of the same pair change nothing.
func (s *Session) SelectGenre(genre, subGenre string) (bool, error) {
	if err := s.requireMelody(); err != nil {
		return false, err
	}
	pick, err := models.ResolvePick(genre, subGenre)
	if err != nil {
		return false, err
	}

	s.state.SelectedGenre = pick.Genre
	s.state.SelectedSubGenre = pick.SubGenre
	s.song.Genre = pick.Genre
	s.song.SubGenre = pick.SubGenre

	if last := s.state.LastGenreApplied; last != nil && *last == pick {
		return false, nil
	}
	s.state.LastGenreApplied = &pick
	s.song.MelodyDescription = ApplyGenreHeader(s.song.MelodyDescription, pick)
	s.pushGenreSummary(pick)
	s.state.ShowGenreTiles = false
	return true, nil
}

// SetGenreTilesOpen shows or hides the genre tiles
func (s *Session) SetGenreTilesOpen(open bool) error {
	if err := s.requireMelody(); err != nil {
		return err
	}
	s.state.ShowGenreTiles = open
	return nil
}

func (s *Session) pushGenreSummary(pick models.GenrePick) {
	if last := s.state.LastGenreSummarySent; last != nil && *last == pick {
		return
	}
	sent := pick
	s.state.LastGenreSummarySent = &sent
	s.say(genreSummary(pick))
}

func (s *Session) requireMelody() error {
	if s.song == nil {
		return ErrNoSong
	}
	if s.state.Mode != models.ModeMelody {
		return ErrInvalidTransition
	}
	return nil
}
