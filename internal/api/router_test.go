package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Conceptual-Machines/echo-api/internal/api/middleware"
	"github.com/Conceptual-Machines/echo-api/internal/database"
	"github.com/Conceptual-Machines/echo-api/internal/drafts"
	"github.com/Conceptual-Machines/echo-api/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorkspace = "7f0c2a4e-1b7d-4c55-9a8e-2f4b6c1d9e30"

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(context.Background(), "sqlite", filepath.Join(t.TempDir(), "drafts.db"), false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	store := drafts.NewStore(db)

	registry, err := session.NewRegistry(8, session.Dependencies{Drafts: store})
	require.NoError(t, err)

	return SetupRouter(Deps{
		DB:       db,
		Drafts:   store,
		Registry: registry,
		Cookies:  middleware.NewWorkspaceStore("test-secret", false),
		Services: map[string]bool{"lyrics_coach": false},
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Workspace-ID", testWorkspace)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthAndGenres(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/genres", nil))
	require.Equal(t, http.StatusOK, w.Code)
	genres := decode(t, w)["genres"].([]interface{})
	assert.Len(t, genres, 6)
}

func TestWorkspaceCookieIsMinted(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/workspace", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Set-Cookie"))
	assert.NotEmpty(t, w.Header().Get("X-Workspace-ID"))
}

func TestInvalidWorkspaceHeader(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workspace", nil)
	req.Header.Set("X-Workspace-ID", "not-a-uuid")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSongFlow(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/mode/switch", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "no song yet")

	w = doJSON(t, router, http.MethodPost, "/api/v1/songs", gin.H{"topic": "", "mood": "calm"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/songs", gin.H{"topic": "roads", "mood": "calm"})
	require.Equal(t, http.StatusOK, w.Code)
	song := decode(t, w)["song"].(map[string]interface{})
	assert.Equal(t, "Draft 1", song["title"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/lyrics", gin.H{"text": "headlights on the wet road"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/chat", gin.H{"message": "help"})
	require.Equal(t, http.StatusOK, w.Code)
	reply := decode(t, w)["reply"].(map[string]interface{})
	assert.Equal(t, session.UnavailableMessage, reply["content"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/genre", gin.H{"genre": "Rock", "sub_genre": "Alt Rock"})
	assert.Equal(t, http.StatusConflict, w.Code, "genres need melody mode")

	w = doJSON(t, router, http.MethodPost, "/api/v1/mode/switch", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/genre", gin.H{"genre": "Rock", "sub_genre": "Alt Rock"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	song = body["song"].(map[string]interface{})
	assert.Equal(t, "Style: Rock\nSubstyle: Alternative Rock\nAdd extra notes about vibe, tempo, and instruments", song["melody_description"])
	assert.Equal(t, true, body["can_generate"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	generation := decode(t, w)["generation"].(map[string]interface{})
	assert.Equal(t, false, generation["success"])
}

func TestEditFlowOverHTTP(t *testing.T) {
	router := setupTestRouter(t)

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/api/v1/songs", gin.H{"title": "T", "topic": "a", "mood": "b"}).Code)
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/api/v1/lyrics", gin.H{"text": "one"}).Code)

	w := doJSON(t, router, http.MethodPost, "/api/v1/lyrics/edit/delete/confirm", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/api/v1/lyrics/edit/begin", nil).Code)
	w = doJSON(t, router, http.MethodPost, "/api/v1/lyrics/edit/line", gin.H{"index": 0})
	require.Equal(t, http.StatusOK, w.Code)
	state := decode(t, w)["state"].(map[string]interface{})
	assert.Equal(t, "editing_line", state["edit"].(map[string]interface{})["stage"])

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPut, "/api/v1/lyrics/edit/draft", gin.H{"text": "uno"}).Code)
	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/api/v1/lyrics/edit/save", nil).Code)
	w = doJSON(t, router, http.MethodPost, "/api/v1/lyrics/edit/save/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code)
	song := decode(t, w)["song"].(map[string]interface{})
	assert.Equal(t, []interface{}{"uno"}, song["lyrics"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/lyrics/edit/select", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "index is required")
}

func TestDraftsOverHTTP(t *testing.T) {
	router := setupTestRouter(t)

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, "/api/v1/songs", gin.H{"title": "Night Drive", "topic": "a", "mood": "b"}).Code)

	w := doJSON(t, router, http.MethodPost, "/api/v1/drafts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	id := decode(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodGet, "/api/v1/drafts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["drafts"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "Night Drive", list[0].(map[string]interface{})["name"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/drafts/next-title", nil)
	assert.Equal(t, "Draft 1", decode(t, w)["title"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/drafts/"+id+"/load", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode(t, w)["draft_id"])

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodDelete, "/api/v1/drafts/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodDelete, "/api/v1/drafts/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodGet, "/api/v1/drafts/"+id, nil).Code)
}
