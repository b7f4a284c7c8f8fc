package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSong_LyricIndexInvariants(t *testing.T) {
	song := NewSong("Night Drive", "Topic: roads\nMood: calm")

	song.AddLyricLine("first")
	song.AddLyricLine("second")
	require.Len(t, song.Lyrics, 2)

	song.InsertLyricLine(1, "middle")
	assert.Equal(t, []string{"first", "middle", "second"}, song.Lyrics)

	song.ReplaceLyricLine(0, "opening")
	assert.Len(t, song.Lyrics, 3)
	assert.Equal(t, "opening", song.Lyrics[0])

	song.DeleteLyricLine(1)
	assert.Equal(t, []string{"opening", "second"}, song.Lyrics)

	// out of range requests leave the lyrics untouched
	before := append([]string{}, song.Lyrics...)
	for _, idx := range []int{-1, 2, 10} {
		song.ReplaceLyricLine(idx, "nope")
		song.DeleteLyricLine(idx)
		assert.Equal(t, before, song.Lyrics, "index %d", idx)
	}
	song.InsertLyricLine(5, "nope")
	song.InsertLyricLine(-1, "nope")
	assert.Equal(t, before, song.Lyrics)

	// insert at len appends
	song.InsertLyricLine(2, "last")
	assert.Equal(t, "last", song.Lyrics[2])
}

func TestSong_LyricLine(t *testing.T) {
	song := NewSong("t", "")
	song.AddLyricLine("only")

	line, ok := song.LyricLine(0)
	assert.True(t, ok)
	assert.Equal(t, "only", line)

	_, ok = song.LyricLine(1)
	assert.False(t, ok)
}

func TestSong_RecentLyrics(t *testing.T) {
	song := NewSong("t", "")
	assert.Empty(t, song.RecentLyrics(6))

	for _, l := range []string{"1", "2", "3", "4", "5", "6", "7", "8"} {
		song.AddLyricLine(l)
	}
	assert.Equal(t, []string{"3", "4", "5", "6", "7", "8"}, song.RecentLyrics(6))
	assert.Len(t, song.RecentLyrics(20), 8)
}

func TestSong_GeneratedAudioInvariant(t *testing.T) {
	song := NewSong("t", "")
	assert.False(t, song.Generated)
	assert.Empty(t, song.AudioPath)

	song.SetGeneratedAudio("")
	assert.False(t, song.Generated, "an empty path never marks the song generated")

	song.SetGeneratedAudio("assets/audio/generated/song_20250101_120000.mp3")
	assert.True(t, song.Generated)
	assert.Equal(t, "assets/audio/generated/song_20250101_120000.mp3", song.AudioPath)
}

func TestSong_CanGenerate(t *testing.T) {
	song := NewSong("t", "")
	assert.False(t, song.CanGenerate())

	song.MelodyDescription = "   \n"
	assert.False(t, song.CanGenerate())

	song.AddLyricLine("a line")
	song.MelodyDescription = "Style: Pop\nSubstyle: Dance Pop"
	assert.True(t, song.CanGenerate())
}

func TestSong_Clone(t *testing.T) {
	song := NewSong("t", "i")
	song.AddLyricLine("a")

	clone := song.Clone()
	clone.AddLyricLine("b")
	clone.Title = "changed"

	assert.Equal(t, []string{"a"}, song.Lyrics)
	assert.Equal(t, "t", song.Title)
	assert.Nil(t, (*Song)(nil).Clone())
}

func TestHistory_AppendAndLast(t *testing.T) {
	var h History
	assert.Empty(t, h.Last(3))

	h.Append(RoleAssistant, "hi")
	h.Append(RoleUser, "one")
	h.Append(RoleAssistant, "two")
	h.Append(RoleUser, "three")

	last := h.Last(3)
	require.Len(t, last, 3)
	assert.Equal(t, "one", last[0].Content)
	assert.Equal(t, RoleUser, last[2].Role)

	// returned slices are copies
	last[0].Content = "mutated"
	assert.Equal(t, "one", h.Messages()[1].Content)
	assert.Equal(t, 4, h.Len())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" melody ")
	require.NoError(t, err)
	assert.Equal(t, ModeMelody, m)
	assert.Equal(t, ModeLyrics, m.Other())

	_, err = ParseMode("drums")
	assert.Error(t, err)
}
