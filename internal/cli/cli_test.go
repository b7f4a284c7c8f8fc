package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/echo-api/internal/database"
	"github.com/Conceptual-Machines/echo-api/internal/drafts"
	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (string, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "drafts.db")
	ctx := context.Background()
	db, err := database.Connect(ctx, "sqlite", dbPath, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	song := models.NewSong("Night Drive", "city lights")
	song.AddLyricLine("headlights on the water")
	id, err := drafts.NewStore(db).SaveDraft(ctx, song, "")
	require.NoError(t, err)
	return dbPath, id
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })

	err := New("1.2.3", "abc", "").ParseAndRun(context.Background(), args)
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3 abc\n", out)
}

func TestDraftsCommands(t *testing.T) {
	dbPath, id := seed(t)

	out, err := run(t, "drafts", "list", "-db-conn", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Night Drive")

	out, err = run(t, "drafts", "next-title", "-db-conn", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "Draft 1\n", out)

	out, err = run(t, "drafts", "export", "-db-conn", dbPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], id+",Night Drive,"))

	_, err = run(t, "drafts", "delete", "-db-conn", dbPath, "-id", id)
	require.NoError(t, err)
	_, err = run(t, "drafts", "delete", "-db-conn", dbPath, "-id", id)
	assert.ErrorIs(t, err, drafts.ErrNotFound)
}

func TestGenerateRequiresMelody(t *testing.T) {
	dbPath, id := seed(t)

	_, err := run(t, "generate", "-db-conn", dbPath)
	assert.EqualError(t, err, "missing -draft")

	_, err = run(t, "generate", "-db-conn", dbPath, "-draft", id)
	assert.ErrorContains(t, err, "no melody description")
}
