package prompt

import (
	"strings"
	"testing"

	"github.com/Conceptual-Machines/echo-api/internal/knowledge"
	"github.com/Conceptual-Machines/echo-api/internal/models"
)

func testSong() *models.Song {
	song := models.NewSong("Night Drive", "Topic: empty roads\nMood: calm")
	for _, l := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		song.AddLyricLine(l)
	}
	return song
}

func TestBuildUserPayloadOrder(t *testing.T) {
	song := testSong()
	song.Genre = "Pop"
	song.SubGenre = "Dance Pop"
	song.MelodyDescription = "Style: Pop\nSubstyle: Dance Pop"
	focused := 1

	payload := BuildUserPayload(PayloadInput{
		Song:             song,
		Mode:             models.ModeLyrics,
		Rules:            []knowledge.Rule{{Advice: "Keep it simple."}},
		FocusedLineIndex: &focused,
		UserMessage:      "help me with line two",
	})

	markers := []string{
		"SONG CONTEXT (use this to tailor your answer):\n",
		"- Title: Night Drive\n",
		"- Intent (topic/mood): Topic: empty roads\nMood: calm\n",
		"- Genre/Sub: Pop / Dance Pop\n",
		"- Melody description (current): Style: Pop\nSubstyle: Dance Pop\n",
		"- Recent lyrics:\ntwo\nthree\nfour\nfive\nsix\nseven\n",
		"\nRULES: 3 bullets max, no paragraphs, end with 1 question.\n\n",
		"DYNAMIC GUIDE RULES (apply if relevant):\n- Keep it simple.\n",
		"FOCUSED LINE (we are rewriting line 2):\n\"two\"\n\n",
		"USER MESSAGE:\nhelp me with line two",
	}

	pos := 0
	for _, m := range markers {
		idx := strings.Index(payload[pos:], m)
		if idx < 0 {
			t.Fatalf("payload missing %q after offset %d:\n%s", m, pos, payload)
		}
		pos += idx + len(m)
	}
	if !strings.HasSuffix(payload, "USER MESSAGE:\nhelp me with line two") {
		t.Error("payload must end with the labeled user message")
	}
	if strings.Contains(payload, "- Recent lyrics:\none\n") {
		t.Error("recent lyrics should only carry the last 6 lines")
	}
}

func TestBuildUserPayloadOmitsOptionalBlocks(t *testing.T) {
	song := models.NewSong("Untitled", "")
	bad := 4

	payload := BuildUserPayload(PayloadInput{
		Song:             song,
		Mode:             models.ModeMelody,
		FocusedLineIndex: &bad,
		UserMessage:      "hi",
	})

	for _, absent := range []string{"Genre/Sub", "Melody description", "Recent lyrics", "FOCUSED LINE", "DYNAMIC GUIDE RULES"} {
		if strings.Contains(payload, absent) {
			t.Errorf("payload should not contain %q:\n%s", absent, payload)
		}
	}
}

func TestBuildUserPayloadTruncatesMelody(t *testing.T) {
	song := models.NewSong("t", "")
	song.MelodyDescription = strings.Repeat("é", 300)

	payload := BuildUserPayload(PayloadInput{Song: song, UserMessage: "x"})
	want := "- Melody description (current): " + strings.Repeat("é", 240) + "\n"
	if !strings.Contains(payload, want) {
		t.Error("melody description should be cut at 240 characters")
	}
}

func TestBuilderBuildAttachesRules(t *testing.T) {
	payload := NewPromptBuilder().Build(testSong(), models.ModeLyrics, nil, "how do I write a better chorus hook?")
	if !strings.Contains(payload, "Chorus = simplest words + main message + a repeatable hook.") {
		t.Errorf("expected chorus rule in payload:\n%s", payload)
	}
	if !strings.Contains(payload, "DYNAMIC GUIDE RULES (apply if relevant):\n") {
		t.Error("expected the rule block header")
	}
}

func TestRetrievalQuery(t *testing.T) {
	song := models.NewSong("Title", "Intent")
	song.MelodyDescription = "slow"
	song.AddLyricLine("a")
	song.AddLyricLine("b")

	got := RetrievalQuery(song, "msg")
	if got != "msg\nTitle\nIntent\nslow\na\nb" {
		t.Errorf("RetrievalQuery() = %q", got)
	}
}
