package session

import (
	"strings"

	"github.com/Conceptual-Machines/echo-api/internal/models"
)

// BeginEdit opens the line chooser
func (s *Session) BeginEdit() error {
	if err := s.requireLyricsStage(EditIdle); err != nil {
		return err
	}
	if !s.song.HasLyrics() {
		return ErrNoLyrics
	}
	s.state.Edit = EditState{Stage: EditChoosingLine, Index: -1}
	s.state.SelectedLineIndex = nil
	return nil
}

// SelectLine moves the chooser to another line. A pending delete
// confirmation for a different line is dropped.
func (s *Session) SelectLine(index int) error {
	if err := s.requireLyricsStage(EditChoosingLine, EditConfirmingDelete); err != nil {
		return err
	}
	if !s.lineExists(index) {
		s.resetEdit()
		return nil
	}
	if s.state.Edit.Stage == EditConfirmingDelete && s.state.Edit.Index != index {
		s.state.SelectedLineIndex = nil
	}
	s.state.Edit = EditState{Stage: EditChoosingLine, Index: index}
	return nil
}

// RequestDelete asks to confirm deleting a line
func (s *Session) RequestDelete(index int) error {
	if err := s.requireLyricsStage(EditChoosingLine, EditConfirmingDelete); err != nil {
		return err
	}
	if !s.lineExists(index) {
		s.resetEdit()
		return nil
	}
	s.state.Edit = EditState{Stage: EditConfirmingDelete, Index: index}
	s.state.SelectedLineIndex = intPtr(index)
	return nil
}

// ConfirmDelete deletes the line awaiting confirmation
func (s *Session) ConfirmDelete() error {
	if err := s.requireLyricsStage(EditConfirmingDelete); err != nil {
		return err
	}
	s.song.DeleteLyricLine(s.state.Edit.Index)
	s.resetEdit()
	return nil
}

// CancelDelete drops the confirmation and returns to the chooser
func (s *Session) CancelDelete() error {
	if err := s.requireLyricsStage(EditConfirmingDelete); err != nil {
		return err
	}
	s.state.Edit = EditState{Stage: EditChoosingLine, Index: s.state.Edit.Index}
	s.state.SelectedLineIndex = nil
	return nil
}

// StartEditingLine opens the editor for a line and asks in chat what the
// line should say instead
func (s *Session) StartEditingLine(index int) error {
	if err := s.requireLyricsStage(EditChoosingLine); err != nil {
		return err
	}
	line, ok := s.song.LyricLine(index)
	if !ok {
		s.resetEdit()
		return nil
	}
	s.state.Edit = EditState{Stage: EditEditingLine, Index: index, Draft: line}
	s.state.SelectedLineIndex = intPtr(index)
	s.say(editLineMessage(index, line))
	return nil
}

// UpdateDraft replaces the text being edited
func (s *Session) UpdateDraft(text string) error {
	if err := s.requireLyricsStage(EditEditingLine); err != nil {
		return err
	}
	if !s.lineExists(s.state.Edit.Index) {
		s.resetEdit()
		return nil
	}
	s.state.Edit.Draft = text
	return nil
}

// RequestSave asks to confirm the edited text
func (s *Session) RequestSave() error {
	if err := s.requireLyricsStage(EditEditingLine); err != nil {
		return err
	}
	if !s.lineExists(s.state.Edit.Index) {
		s.resetEdit()
		return nil
	}
	s.state.Edit.Stage = EditConfirmingSave
	return nil
}

// ConfirmSave commits the edited text. A blank draft leaves the line as is.
func (s *Session) ConfirmSave() error {
	if err := s.requireLyricsStage(EditConfirmingSave); err != nil {
		return err
	}
	if text := strings.TrimSpace(s.state.Edit.Draft); text != "" {
		s.song.ReplaceLyricLine(s.state.Edit.Index, text)
	}
	s.resetEdit()
	return nil
}

// RejectSave goes back to editing without saving
func (s *Session) RejectSave() error {
	if err := s.requireLyricsStage(EditConfirmingSave); err != nil {
		return err
	}
	s.state.Edit.Stage = EditEditingLine
	return nil
}

// CancelEdit leaves the edit flow from any stage
func (s *Session) CancelEdit() error {
	if s.song == nil {
		return ErrNoSong
	}
	s.resetEdit()
	return nil
}

// AwaitReplacement makes the next chat message the replacement text for a
// line instead of a question for the coach
func (s *Session) AwaitReplacement(index int) error {
	if s.song == nil {
		return ErrNoSong
	}
	if !s.lineExists(index) {
		return ErrInvalidTransition
	}
	s.state.SelectedLineIndex = intPtr(index)
	s.state.FocusedLineForReplacement = intPtr(index)
	s.state.WaitingForReplacement = true
	s.state.PendingReplacement = ""
	return nil
}

// TakePendingReplacement returns the text captured by Send for the awaited
// line and clears it
func (s *Session) TakePendingReplacement() (int, string, bool) {
	idx := s.state.FocusedLineForReplacement
	text := s.state.PendingReplacement
	if idx == nil || text == "" {
		return 0, "", false
	}
	s.state.FocusedLineForReplacement = nil
	s.state.PendingReplacement = ""
	return *idx, text, true
}

// focusedLine is the line the coach is asked to rewrite, if any
func (s *Session) focusedLine() *int {
	switch s.state.Edit.Stage {
	case EditEditingLine, EditConfirmingSave:
		return intPtr(s.state.Edit.Index)
	}
	return cloneInt(s.state.SelectedLineIndex)
}

func (s *Session) requireLyricsStage(stages ...EditStage) error {
	if s.song == nil {
		return ErrNoSong
	}
	if s.state.Mode != models.ModeLyrics {
		return ErrInvalidTransition
	}
	for _, stage := range stages {
		if s.state.Edit.Stage == stage {
			return nil
		}
	}
	return ErrInvalidTransition
}

func (s *Session) lineExists(index int) bool {
	_, ok := s.song.LyricLine(index)
	return ok
}

func (s *Session) resetEdit() {
	s.state.Edit = idleEdit()
	s.state.SelectedLineIndex = nil
}
