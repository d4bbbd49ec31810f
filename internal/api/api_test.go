package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/hghwng/cfgtool/internal/automaton"
)

const (
	testAPIKey = "test-api-key"
	testGrammar = "S := a S b\nS := @\n"
)

func newTestRouter(t *testing.T) *API {
	t.Helper()
	a, err := New(testAPIKey, []byte("test-secret"), nil)
	require.NoError(t, err)
	return a
}

func mount(a *API) http.Handler {
	r := chi.NewRouter()
	r.Route("/grammars", a.Routes)
	return r
}

func Test_PostGrammar_RequiresAPIKey(t *testing.T) {
	assert := assert.New(t)
	a := newTestRouter(t)
	r := mount(a)

	req := httptest.NewRequest(http.MethodPost, "/grammars", strings.NewReader(testGrammar))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(http.StatusUnauthorized, w.Code)
}

func Test_PostGrammar_WithValidKey_ReturnsRunAndToken(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	a := newTestRouter(t)
	r := mount(a)

	req := httptest.NewRequest(http.MethodPost, "/grammars", strings.NewReader(testGrammar))
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(http.StatusCreated, w.Code)

	var resp postGrammarResponse
	require.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(resp.RunID)
	assert.NotEmpty(resp.Token)
	assert.Contains(resp.Grammar, "S ->")
}

func Test_GetArtifact_WithAPIKey(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	a := newTestRouter(t)
	r := mount(a)

	runID := submitGrammar(t, r)

	req := httptest.NewRequest(http.MethodGet, "/grammars/"+runID+"/first", nil)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal("first", body["artifact"])
}

func Test_GetArtifact_WithRunScopedToken(t *testing.T) {
	require := require.New(t)
	a := newTestRouter(t)
	r := mount(a)

	runID, token := submitGrammarWithToken(t, r)

	req := httptest.NewRequest(http.MethodGet, "/grammars/"+runID+"/lalr1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(http.StatusOK, w.Code)
}

func Test_GetArtifact_TokenScopedToOtherRunIsRejected(t *testing.T) {
	assert := assert.New(t)
	a := newTestRouter(t)
	r := mount(a)

	_, token := submitGrammarWithToken(t, r)
	otherRunID := submitGrammar(t, r)

	req := httptest.NewRequest(http.MethodGet, "/grammars/"+otherRunID+"/first", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(http.StatusUnauthorized, w.Code)
}

func Test_GetArtifact_UnknownRun(t *testing.T) {
	assert := assert.New(t)
	a := newTestRouter(t)
	r := mount(a)

	req := httptest.NewRequest(http.MethodGet, "/grammars/nonexistent/first", nil)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(http.StatusNotFound, w.Code)
}

func Test_GetArtifact_UnknownArtifact(t *testing.T) {
	assert := assert.New(t)
	a := newTestRouter(t)
	r := mount(a)
	runID := submitGrammar(t, r)

	req := httptest.NewRequest(http.MethodGet, "/grammars/"+runID+"/bogus", nil)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(http.StatusBadRequest, w.Code)
}

func Test_GetArtifact_ReplaysFromRunHistory_AfterProcessRestart(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dbPath := filepath.Join(t.TempDir(), "run_history.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(err)
	defer db.Close()

	a1, err := New(testAPIKey, []byte("test-secret"), db)
	require.NoError(err)
	r1 := mount(a1)
	runID := submitGrammar(t, r1)

	req := httptest.NewRequest(http.MethodGet, "/grammars/"+runID+"/lalr1", nil)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	w := httptest.NewRecorder()
	r1.ServeHTTP(w, req)
	require.Equal(http.StatusOK, w.Code)

	// a2 shares the database but starts with no in-memory run cache,
	// simulating a process restart.
	a2, err := New(testAPIKey, []byte("test-secret"), db)
	require.NoError(err)
	r2 := mount(a2)

	req2 := httptest.NewRequest(http.MethodGet, "/grammars/"+runID+"/lalr1", nil)
	req2.Header.Set("Authorization", "Bearer "+testAPIKey)
	w2 := httptest.NewRecorder()
	r2.ServeHTTP(w2, req2)

	require.Equal(http.StatusOK, w2.Code)
	var body map[string]string
	require.NoError(json.Unmarshal(w2.Body.Bytes(), &body))
	assert.Equal("lalr1", body["artifact"])

	rn, ok := a2.findRun(runID)
	require.True(ok)
	_, haveTable := rn.tables[automaton.LALR1]
	assert.True(haveTable)
}

func submitGrammar(t *testing.T, r http.Handler) string {
	id, _ := submitGrammarWithToken(t, r)
	return id
}

func submitGrammarWithToken(t *testing.T, r http.Handler) (string, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/grammars", strings.NewReader(testGrammar))
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp postGrammarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.RunID, resp.Token
}
