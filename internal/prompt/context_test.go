package prompt

import (
	"testing"

	"github.com/Conceptual-Machines/echo-api/internal/models"
)

func TestBuildSongSnapshot(t *testing.T) {
	if got := BuildSongSnapshot(nil); got != "CURRENT SONG STATE:\nNo song yet." {
		t.Errorf("BuildSongSnapshot(nil) = %q", got)
	}

	song := models.NewSong("Night Drive", "")
	want := "CURRENT SONG STATE:\nTitle: Night Drive\nGenre: Not set\nSub-Genre: Not set\nMelody: Not set\n\nLyrics (current version):\n— No lyrics yet —"
	if got := BuildSongSnapshot(song); got != want {
		t.Errorf("BuildSongSnapshot() = %q, want %q", got, want)
	}

	song.Genre = "Jazz"
	song.AddLyricLine("first")
	song.AddLyricLine("second")
	want = "CURRENT SONG STATE:\nTitle: Night Drive\nGenre: Jazz\nSub-Genre: Not set\nMelody: Not set\n\nLyrics (current version):\n1. first\n2. second"
	if got := BuildSongSnapshot(song); got != want {
		t.Errorf("BuildSongSnapshot() = %q, want %q", got, want)
	}
}

func TestRecentHistory(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleAssistant, Content: "welcome"},
		{Role: models.RoleUser, Content: "first"},
		{Role: models.RoleAssistant, Content: "reply"},
		{Role: models.RoleUser, Content: "second"},
	}

	got := RecentHistory(history, "second", HistoryWindow)
	if len(got) != 2 || got[0].Content != "first" || got[1].Content != "reply" {
		t.Errorf("RecentHistory() dedup = %+v", got)
	}

	got = RecentHistory(history, "something else", HistoryWindow)
	if len(got) != 3 || got[2].Content != "second" {
		t.Errorf("RecentHistory() without dedup = %+v", got)
	}

	// assistant entries are never dropped even if the text matches
	got = RecentHistory(history[:3], "reply", HistoryWindow)
	if len(got) != 3 {
		t.Errorf("RecentHistory() dropped an assistant entry: %+v", got)
	}

	if got := RecentHistory(nil, "x", HistoryWindow); len(got) != 0 {
		t.Errorf("RecentHistory(nil) = %+v", got)
	}

	got = RecentHistory(history, "zzz", HistoryWindow)
	got[0].Content = "mutated"
	if history[1].Content != "first" {
		t.Error("RecentHistory() must not alias the input slice")
	}
}

func TestCompactNewlines(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a\n\n\nb", "a\nb"},
		{"\n\n- one\n\n- two\n\n", "- one\n- two"},
		{"  single  ", "single"},
	}
	for _, tt := range tests {
		if got := CompactNewlines(tt.in); got != tt.want {
			t.Errorf("CompactNewlines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

}
