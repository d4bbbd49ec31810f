// Package api exposes the grammar analysis pipeline as a small JSON HTTP
// service: one write endpoint to submit a grammar and a family of read
// endpoints to fetch artifacts computed from it, memoized per run for
// the lifetime of the process.
package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hghwng/cfgtool/internal/automaton"
	"github.com/hghwng/cfgtool/internal/bnf"
	"github.com/hghwng/cfgtool/internal/grammar"
	"github.com/hghwng/cfgtool/internal/lr"
	"github.com/hghwng/cfgtool/internal/render"
)

// API holds everything a set of HTTP handlers needs: the bcrypt hash of
// the provisioned API key, the secret used to sign per-run JWT session
// tokens, the run-history audit database, and the in-memory run cache.
type API struct {
	APIKeyHash []byte
	Secret     []byte
	DB         *sql.DB

	mu   sync.Mutex
	runs map[string]*run
}

// run is one submitted grammar plus its memoized analysis artifacts,
// guarded by its own mutex so concurrent requests against the same run
// don't race to build the same artifact twice.
type run struct {
	mu sync.Mutex
	id string
	db *sql.DB
	g  grammar.Grammar

	first  *grammar.FirstSets
	follow *grammar.FollowSets
	ll1    *grammar.LL1Table
	tables map[automaton.Variant]*lr.Table
}

// New constructs an API. apiKey is the plaintext provisioned key; it is
// hashed immediately and never retained in plaintext.
func New(apiKey string, secret []byte, db *sql.DB) (*API, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash API key: %w", err)
	}
	a := &API{APIKeyHash: hash, Secret: secret, DB: db, runs: map[string]*run{}}
	if db != nil {
		if _, err := db.Exec(`create table if not exists run_history (
			run_id text primary key,
			bnf_text text not null,
			submitted_at integer not null,
			lalr1_table blob
		)`); err != nil {
			return nil, fmt.Errorf("init run_history table: %w", err)
		}
	}
	return a, nil
}

// Routes mounts the API's endpoints onto r, which the caller has already
// scoped under the "/grammars" prefix (e.g. via chi's r.Route).
func (a *API) Routes(r chi.Router) {
	r.Post("/", a.requireAPIKey(a.postGrammar))
	r.Get("/{id}/{artifact}", a.requireRunAccess(a.getArtifact))
}

type grammarClaims struct {
	RunID string `json:"run_id"`
	jwt.RegisteredClaims
}

func (a *API) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := bearerToken(r)
		if !ok || bcrypt.CompareHashAndPassword(a.APIKeyHash, []byte(key)) != nil {
			writeError(w, http.StatusUnauthorized, "missing or invalid API key")
			return
		}
		next(w, r)
	}
}

// requireRunAccess accepts either the provisioned API key or a
// previously issued run-scoped JWT naming this exact run id.
func (a *API) requireRunAccess(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if bcrypt.CompareHashAndPassword(a.APIKeyHash, []byte(token)) == nil {
			next(w, r)
			return
		}
		claims := &grammarClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return a.Secret, nil
		})
		if err != nil || !parsed.Valid || claims.RunID != id {
			writeError(w, http.StatusUnauthorized, "invalid or mismatched run token")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	return strings.TrimPrefix(h, prefix), true
}

type postGrammarResponse struct {
	RunID   string `json:"run_id"`
	Token   string `json:"token"`
	Grammar string `json:"grammar"`
}

func (a *API) postGrammar(w http.ResponseWriter, r *http.Request) {
	var buf strings.Builder
	if _, err := buf.ReadFrom(r.Body); err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	g, err := bnf.Parse(buf.String())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.NewString()
	a.mu.Lock()
	a.runs[id] = &run{id: id, db: a.DB, g: g, tables: map[automaton.Variant]*lr.Table{}}
	a.mu.Unlock()

	if a.DB != nil {
		if _, err := a.DB.Exec(
			`insert into run_history (run_id, bnf_text, submitted_at) values (?, ?, ?)`,
			id, buf.String(), time.Now().Unix(),
		); err != nil {
			writeError(w, http.StatusInternalServerError, "could not record run history: "+err.Error())
			return
		}
	}

	claims := grammarClaims{
		RunID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(a.Secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not sign run token: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, postGrammarResponse{
		RunID:   id,
		Token:   signed,
		Grammar: render.Grammar(g),
	})
}

func (a *API) getArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	artifact := chi.URLParam(r, "artifact")

	run, ok := a.findRun(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no such run")
		return
	}

	body, err := run.build(artifact)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"artifact": artifact, "result": body})
}

// findRun returns the in-memory run for id, falling back to run_history
// when the process has restarted and lost its in-memory cache. The
// fallback re-parses the recorded BNF text and, if a LALR(1) table was
// persisted for this run, decodes it with rezi instead of rebuilding the
// automaton from scratch.
func (a *API) findRun(id string) (*run, bool) {
	a.mu.Lock()
	rn, ok := a.runs[id]
	a.mu.Unlock()
	if ok {
		return rn, true
	}
	if a.DB == nil {
		return nil, false
	}

	var bnfText string
	var tableBlob []byte
	err := a.DB.QueryRow(
		`select bnf_text, lalr1_table from run_history where run_id = ?`, id,
	).Scan(&bnfText, &tableBlob)
	if err != nil {
		return nil, false
	}

	g, err := bnf.Parse(bnfText)
	if err != nil {
		return nil, false
	}

	rn = &run{id: id, db: a.DB, g: g, tables: map[automaton.Variant]*lr.Table{}}
	if len(tableBlob) > 0 {
		var p lr.PersistedRows
		if _, err := rezi.DecBinary(tableBlob, &p); err == nil {
			t := lr.FromPersisted(g.Augmented(), p)
			rn.tables[automaton.LALR1] = &t
		}
	}

	a.mu.Lock()
	a.runs[id] = rn
	a.mu.Unlock()
	return rn, true
}

func (rn *run) build(artifact string) (string, error) {
	rn.mu.Lock()
	defer rn.mu.Unlock()

	switch artifact {
	case "first":
		return render.FirstSets(rn.g, rn.firstSets()), nil
	case "follow":
		return render.FollowSets(rn.g, rn.followSets()), nil
	case "ll1":
		t, err := rn.ll1Table()
		if err != nil {
			return "", err
		}
		return render.LL1Table(t), nil
	case "lr0", "slr1", "lr1", "lalr1":
		v := map[string]automaton.Variant{
			"lr0": automaton.LR0, "slr1": automaton.SLR1,
			"lr1": automaton.LR1, "lalr1": automaton.LALR1,
		}[artifact]
		t, err := rn.table(v)
		if err != nil {
			return "", err
		}
		return render.ActionTable(t.Grammar, t), nil
	default:
		return "", fmt.Errorf("unknown artifact %q", artifact)
	}
}

func (rn *run) firstSets() grammar.FirstSets {
	if rn.first == nil {
		f := rn.g.FIRST()
		rn.first = &f
	}
	return *rn.first
}

func (rn *run) followSets() grammar.FollowSets {
	if rn.follow == nil {
		f := rn.g.FOLLOW(rn.firstSets())
		rn.follow = &f
	}
	return *rn.follow
}

func (rn *run) ll1Table() (grammar.LL1Table, error) {
	if rn.ll1 == nil {
		t, err := rn.g.LLParseTable()
		if err != nil {
			return grammar.LL1Table{}, err
		}
		rn.ll1 = &t
	}
	return *rn.ll1, nil
}

func (rn *run) table(v automaton.Variant) (lr.Table, error) {
	if t, ok := rn.tables[v]; ok {
		return *t, nil
	}
	t, err := lr.Build(rn.g, v)
	if err != nil {
		return lr.Table{}, err
	}
	rn.tables[v] = &t
	if v == automaton.LALR1 {
		rn.persistLALR1(t)
	}
	return t, nil
}

// persistLALR1 rezi-encodes the LALR(1) table and stores it alongside
// this run's history row, so a later process restart can decode it
// instead of rebuilding the automaton from the recorded BNF text.
func (rn *run) persistLALR1(t lr.Table) {
	if rn.db == nil {
		return
	}
	p := t.ForPersist()
	blob := rezi.EncBinary(&p)
	_, _ = rn.db.Exec(`update run_history set lalr1_table = ? where run_id = ?`, blob, rn.id)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
