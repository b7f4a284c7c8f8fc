// Package session is the per-workspace state machine: the song being
// written, the chat with the mode coaches, line editing, genre picks and
// audio generation.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Conceptual-Machines/echo-api/internal/audio"
	"github.com/Conceptual-Machines/echo-api/internal/logger"
	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/Conceptual-Machines/echo-api/internal/prompt"
)

var (
	ErrNoSong            = errors.New("no active song")
	ErrBlankTopic        = errors.New("topic is required")
	ErrBlankMood         = errors.New("mood is required")
	ErrBlankLine         = errors.New("lyric line is empty")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrNothingToGenerate = errors.New("add a melody description to enable generate")
	ErrInvalidTransition = errors.New("action not allowed in the current state")
	ErrNoLyrics          = errors.New("no lines to edit yet")
	ErrNoDraftStore      = errors.New("draft storage is not configured")
)

const defaultTitleBase = "Draft"

// Agent answers one chat turn for a mode
type Agent interface {
	GetResponse(ctx context.Context, userMessage, songSnapshot string, history []models.Message) string
}

// DraftStore is the draft persistence the session needs
type DraftStore interface {
	GetDraft(ctx context.Context, id string) (*models.Draft, error)
	SaveDraft(ctx context.Context, song *models.Song, id string) (string, error)
	NextDraftTitle(ctx context.Context, base string) (string, error)
}

// AudioGenerator composes a track for a song
type AudioGenerator interface {
	Generate(ctx context.Context, lyrics []string, melodyDescription string) audio.Result
}

// Dependencies are the collaborators shared by all sessions. A nil agent
// makes its mode answer with UnavailableMessage.
type Dependencies struct {
	LyricsAgent Agent
	MelodyAgent Agent
	Drafts      DraftStore
	Audio       AudioGenerator
}

// NewSongInput are the answers of the new song form
type NewSongInput struct {
	Title string `json:"title"`
	Topic string `json:"topic"`
	Mood  string `json:"mood"`
}

// Reply is the outcome of a chat send. Captured means the text was taken as
// a line replacement and no coach was asked.
type Reply struct {
	Content  string `json:"content,omitempty"`
	Captured bool   `json:"captured"`
}

// GenerateOutcome is shown after a generate action
type GenerateOutcome struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Session is one workspace. It is not safe for concurrent use; the
// Registry serializes access.
type Session struct {
	mu sync.Mutex

	id      string
	song    *models.Song
	draftID string
	state   State

	agents  map[models.Mode]Agent
	drafts  DraftStore
	audio   AudioGenerator
	builder *prompt.Builder
}

// New creates an empty workspace
func New(id string, deps Dependencies) *Session {
	agents := make(map[models.Mode]Agent, 2)
	if deps.LyricsAgent != nil {
		agents[models.ModeLyrics] = deps.LyricsAgent
	}
	if deps.MelodyAgent != nil {
		agents[models.ModeMelody] = deps.MelodyAgent
	}
	return &Session{
		id:      id,
		state:   NewState(),
		agents:  agents,
		drafts:  deps.Drafts,
		audio:   deps.Audio,
		builder: prompt.NewPromptBuilder(),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Song returns a copy of the current song, nil before one is started
func (s *Session) Song() *models.Song {
	return s.song.Clone()
}

// State returns a copy of the workspace state
func (s *Session) State() State {
	return s.state.clone()
}

// History returns the chat log
func (s *Session) History() []models.Message {
	return s.state.History.Messages()
}

// DraftID is the draft the song was loaded from or last saved to
func (s *Session) DraftID() string {
	return s.draftID
}

// StartSong opens a new song. Topic and mood are required; a blank title
// takes the next free draft name.
func (s *Session) StartSong(ctx context.Context, in NewSongInput) error {
	topic := strings.TrimSpace(in.Topic)
	mood := strings.TrimSpace(in.Mood)
	if topic == "" {
		return ErrBlankTopic
	}
	if mood == "" {
		return ErrBlankMood
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		var err error
		if title, err = s.nextTitle(ctx); err != nil {
			return err
		}
	}

	s.open(models.NewSong(title, fmt.Sprintf("Topic: %s\nMood: %s", topic, mood)), "")
	logger.Info("Song started", logger.Fields{"workspace_id": s.id, "title": title})
	return nil
}

// LoadDraft replaces the workspace with a saved draft
func (s *Session) LoadDraft(ctx context.Context, id string) error {
	if s.drafts == nil {
		return ErrNoDraftStore
	}
	draft, err := s.drafts.GetDraft(ctx, id)
	if err != nil {
		return err
	}
	s.open(draft.Song.Clone(), draft.ID)
	logger.Info("Draft loaded", logger.Fields{"workspace_id": s.id, "draft_id": draft.ID})
	return nil
}

// SaveDraft stores the song, updating the draft it came from if any
func (s *Session) SaveDraft(ctx context.Context) (string, error) {
	if s.song == nil {
		return "", ErrNoSong
	}
	if s.drafts == nil {
		return "", ErrNoDraftStore
	}
	id, err := s.drafts.SaveDraft(ctx, s.song, s.draftID)
	if err != nil {
		return "", err
	}
	s.draftID = id
	return id, nil
}

// Reset closes the song and forgets the chat
func (s *Session) Reset() {
	s.song = nil
	s.draftID = ""
	s.state = NewState()
}

// SwitchMode toggles LYRICS and MELODY and greets the new mode
func (s *Session) SwitchMode() error {
	if s.song == nil {
		return ErrNoSong
	}
	next := s.state.Mode.Other()
	s.state.Mode = next
	s.resetEdit()
	s.say(greeting(next))

	if next == models.ModeMelody {
		s.state.ShowGenreTiles = true
		s.enterMelody()
	} else {
		s.state.ShowGenreTiles = false
	}
	return nil
}

// AddLine appends a lyric line
func (s *Session) AddLine(text string) error {
	if s.song == nil {
		return ErrNoSong
	}
	line := strings.TrimSpace(text)
	if line == "" {
		return ErrBlankLine
	}
	if s.state.Edit.Stage != EditIdle {
		return ErrInvalidTransition
	}
	s.song.AddLyricLine(line)
	return nil
}

// SetMelodyDescription replaces the free-text melody description
func (s *Session) SetMelodyDescription(text string) error {
	if s.song == nil {
		return ErrNoSong
	}
	s.song.MelodyDescription = text
	return nil
}

// Send handles one chat message. While a line replacement is awaited the
// text is captured instead of sent to the coach.
func (s *Session) Send(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}

	s.state.ShowGenreTiles = false

	if s.state.WaitingForReplacement && s.state.SelectedLineIndex != nil {
		s.state.PendingReplacement = text
		s.state.WaitingForReplacement = false
		return Reply{Captured: true}, nil
	}

	s.state.History.Append(models.RoleUser, text)

	agent, ok := s.agents[s.state.Mode]
	if !ok {
		s.say(UnavailableMessage)
		return Reply{Content: UnavailableMessage}, nil
	}

	snapshot := prompt.BuildSongSnapshot(s.song)
	recent := prompt.RecentHistory(s.state.History.Messages(), text, prompt.HistoryWindow)
	payload := s.builder.Build(s.song, s.state.Mode, s.focusedLine(), text)

	reply := prompt.CompactNewlines(agent.GetResponse(ctx, payload, snapshot, recent))
	s.say(reply)
	return Reply{Content: reply}, nil
}

// Generate composes a track for the song. A failed generation leaves the
// song unchanged and reports the reason in the outcome message.
func (s *Session) Generate(ctx context.Context) (GenerateOutcome, error) {
	if s.song == nil {
		return GenerateOutcome{}, ErrNoSong
	}
	if !s.song.CanGenerate() {
		return GenerateOutcome{}, ErrNothingToGenerate
	}
	if s.audio == nil {
		return GenerateOutcome{Message: audio.FailedMessage}, nil
	}

	result := s.audio.Generate(ctx, s.song.Lyrics, s.song.MelodyDescription)
	if strings.HasSuffix(result.Path, ".mp3") {
		s.song.SetGeneratedAudio(result.Path)
		return GenerateOutcome{Success: true, Path: result.Path, Message: audio.SuccessMessage}, nil
	}

	msg := result.Message
	if msg == "" {
		msg = audio.FailedMessage
	}
	logger.Warn("Song generation failed", logger.Fields{"workspace_id": s.id, "message": msg})
	return GenerateOutcome{Message: msg}, nil
}

// open swaps in a song, resets the workspace and greets
func (s *Session) open(song *models.Song, draftID string) {
	s.song = song
	s.draftID = draftID
	s.state = NewState()

	s.say(WelcomeMessage)
	s.say(greeting(s.state.Mode))
	s.state.ModeGreetedOnce = true
}

func (s *Session) enterMelody() {
	if s.state.MelodyModeEntered {
		return
	}
	s.state.MelodyModeEntered = true
	if !s.state.MelodyGenreHintSent {
		s.say(GenreHint)
		s.state.MelodyGenreHintSent = true
	}
}

func (s *Session) say(content string) {
	s.state.History.Append(models.RoleAssistant, content)
}

func (s *Session) nextTitle(ctx context.Context) (string, error) {
	if s.drafts == nil {
		return defaultTitleBase + " 1", nil
	}
	title, err := s.drafts.NextDraftTitle(ctx, defaultTitleBase)
	if err != nil {
		return "", fmt.Errorf("failed to name song: %w", err)
	}
	return title, nil
}
