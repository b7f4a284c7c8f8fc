package drafts

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Conceptual-Machines/echo-api/internal/database"
	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(context.Background(), "sqlite", filepath.Join(t.TempDir(), "drafts.db"), false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewStore(db)
}

func TestStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	song := models.NewSong("Night Drive", "Topic: roads\nMood: calm")
	song.AddLyricLine("headlights on the wet road")
	song.MelodyDescription = "Style: Pop\nSubstyle: Dance Pop"
	song.Genre, song.SubGenre = "Pop", "Dance Pop"

	id, err := store.SaveDraft(ctx, song, "")
	require.NoError(t, err)
	assert.Len(t, id, 36)

	draft, err := store.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Night Drive", draft.Name)
	assert.Equal(t, song.Lyrics, draft.Song.Lyrics)
	assert.Equal(t, "Dance Pop", draft.Song.SubGenre)
	assert.Equal(t, time.UTC, draft.UpdatedAt.Location())

	_, err = store.GetDraft(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpsertByID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	song := models.NewSong("First Title", "")
	id, err := store.SaveDraft(ctx, song, "")
	require.NoError(t, err)

	song.Title = "Second Title"
	song.AddLyricLine("new line")
	again, err := store.SaveDraft(ctx, song, id)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	list, err := store.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Second Title", list[0].Name)
	assert.Equal(t, []string{"new line"}, list[0].Song.Lyrics)
}

func TestStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a, err := store.SaveDraft(ctx, models.NewSong("A", ""), "")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	b, err := store.SaveDraft(ctx, models.NewSong("B", ""), "")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	// re-saving A moves it to the front
	_, err = store.SaveDraft(ctx, models.NewSong("A", ""), a)
	require.NoError(t, err)

	list, err := store.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0].ID)
	assert.Equal(t, b, list[1].ID)
}

func TestStore_DraftNaming(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	title, err := store.NextDraftTitle(ctx, "Draft")
	require.NoError(t, err)
	assert.Equal(t, "Draft 1", title)

	_, err = store.SaveDraft(ctx, models.NewSong("Draft 1", ""), "")
	require.NoError(t, err)
	_, err = store.SaveDraft(ctx, models.NewSong("draft 3", ""), "")
	require.NoError(t, err)

	title, err = store.NextDraftTitle(ctx, "Draft")
	require.NoError(t, err)
	assert.Equal(t, "Draft 2", title)

	// untitled songs take the next free name
	id, err := store.SaveDraft(ctx, models.NewSong("   ", ""), "")
	require.NoError(t, err)
	draft, err := store.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Draft 2", draft.Name)

	// re-saving keeps its own name instead of skipping past it
	_, err = store.SaveDraft(ctx, models.NewSong("", ""), id)
	require.NoError(t, err)
	draft, err = store.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Draft 2", draft.Name)

	title, err = store.NextDraftTitle(ctx, "Draft")
	require.NoError(t, err)
	assert.Equal(t, "Draft 4", title)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.SaveDraft(ctx, models.NewSong("Gone", ""), "")
	require.NoError(t, err)

	require.NoError(t, store.DeleteDraft(ctx, id))
	assert.ErrorIs(t, store.DeleteDraft(ctx, id), ErrNotFound)

	list, err := store.ListDrafts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWriteCSV(t *testing.T) {
	song := models.NewSong("Night Drive", "")
	song.AddLyricLine("a")
	song.AddLyricLine("b")
	song.MelodyDescription = "Style: Jazz"

	var buf bytes.Buffer
	err := WriteCSV(&buf, []*models.Draft{{
		ID:        "d1",
		Name:      "Night Drive",
		UpdatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Song:      song,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,updated_at,title,lyric_lines,genre,sub_genre,has_melody,generated", lines[0])
	assert.Equal(t, "d1,Night Drive,2025-01-02T03:04:05Z,Night Drive,2,,,true,false", lines[1])
}
