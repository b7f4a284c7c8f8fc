package session

import "github.com/Conceptual-Machines/echo-api/internal/models"

// EditStage is the step of the line editing flow
type EditStage string

const (
	EditIdle             EditStage = "idle"
	EditChoosingLine     EditStage = "choosing_line"
	EditConfirmingDelete EditStage = "confirming_delete"
	EditEditingLine      EditStage = "editing_line"
	EditConfirmingSave   EditStage = "confirming_save"
)

// EditState is the line editing flow. Index and Draft only mean something
// in the index-scoped stages.
type EditState struct {
	Stage EditStage `json:"stage"`
	Index int       `json:"index"`
	Draft string    `json:"draft,omitempty"`
}

func idleEdit() EditState {
	return EditState{Stage: EditIdle, Index: -1}
}

// indexScoped reports whether Index targets a lyric line in this stage
func (e EditState) indexScoped() bool {
	switch e.Stage {
	case EditConfirmingDelete, EditEditingLine, EditConfirmingSave:
		return true
	}
	return false
}

// State is everything about a workspace besides the song itself
type State struct {
	Mode models.Mode `json:"mode"`
	Edit EditState   `json:"edit"`

	ModeGreetedOnce     bool `json:"mode_greeted_once"`
	MelodyModeEntered   bool `json:"melody_mode_entered"`
	MelodyGenreHintSent bool `json:"melody_genre_hint_sent"`

	ShowGenreTiles       bool              `json:"show_genre_tiles"`
	SelectedGenre        string            `json:"selected_genre,omitempty"`
	SelectedSubGenre     string            `json:"selected_sub_genre,omitempty"`
	LastGenreApplied     *models.GenrePick `json:"last_genre_applied,omitempty"`
	LastGenreSummarySent *models.GenrePick `json:"last_genre_summary_sent,omitempty"`

	SelectedLineIndex         *int   `json:"selected_line_index,omitempty"`
	FocusedLineForReplacement *int   `json:"focused_line_for_replacement,omitempty"`
	WaitingForReplacement     bool   `json:"waiting_for_replacement"`
	PendingReplacement        string `json:"pending_replacement,omitempty"`

	History models.History `json:"-"`
}

// NewState is the state of a freshly opened workspace
func NewState() State {
	return State{
		Mode: models.DefaultMode,
		Edit: idleEdit(),
	}
}

// clone copies the state so callers can't reach into the session
func (s State) clone() State {
	c := s
	c.LastGenreApplied = clonePick(s.LastGenreApplied)
	c.LastGenreSummarySent = clonePick(s.LastGenreSummarySent)
	c.SelectedLineIndex = cloneInt(s.SelectedLineIndex)
	c.FocusedLineForReplacement = cloneInt(s.FocusedLineForReplacement)
	c.History = models.History{}
	for _, m := range s.History.Messages() {
		c.History.Append(m.Role, m.Content)
	}
	return c
}

func clonePick(p *models.GenrePick) *models.GenrePick {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func intPtr(i int) *int {
	return &i
}
