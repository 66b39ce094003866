package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/myk4040okothogodo/moviecatalog/internal/data"
	"github.com/myk4040okothogodo/moviecatalog/internal/jsonlog"
	"github.com/myk4040okothogodo/moviecatalog/internal/posters"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	var cfg config
	cfg.env = "testing"
	cfg.uploads.dir = t.TempDir()
	cfg.cors.trustedOrigins = []string{"*"}

	return &application{
		config:  cfg,
		logger:  jsonlog.New(io.Discard, jsonlog.LevelOff),
		models:  data.NewMockModels(),
		posters: posters.New(cfg.uploads.dir),
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// testEnvelope mirrors envelope but keeps Data raw so each test can decode it into the shape it expects.
type testEnvelope struct {
	Status  bool
	Message string
	Data    json.RawMessage
}

func (ts *testServer) do(t *testing.T, method, urlPath string, body io.Reader, contentType string) (int, http.Header, testEnvelope) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+urlPath, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rs, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer rs.Body.Close()

	raw, err := io.ReadAll(rs.Body)
	require.NoError(t, err)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)

	return rs.StatusCode, rs.Header, env
}

func (ts *testServer) doJSON(t *testing.T, method, urlPath string, payload any) (int, testEnvelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(js)
	}

	code, _, env := ts.do(t, method, urlPath, body, "application/json")
	return code, env
}

func decodeData(t *testing.T, env testEnvelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst), "data: %s", env.Data)
}

// seedPeople inserts people named after the arguments; they get ids 1, 2, 3...
func seedPeople(t *testing.T, app *application, names ...string) {
	t.Helper()

	for _, name := range names {
		p := &data.Person{Name: name, DateOfBirth: data.NewDate(1970, time.January, 1)}
		require.NoError(t, app.models.People.Insert(p))
	}
}

var errStoreDown = errors.New("connection refused")

// failingMovies and failingPeople stand in for a database that cannot be reached.
type failingMovies struct{}

func (failingMovies) GetAll(int, int) ([]*data.Movie, int, error) { return nil, 0, errStoreDown }
func (failingMovies) Get(int64) (*data.Movie, error)              { return nil, errStoreDown }
func (failingMovies) Insert(*data.Movie) error                    { return errStoreDown }
func (failingMovies) Update(*data.Movie, []int64, []int64) error  { return errStoreDown }
func (failingMovies) Delete(int64) error                          { return errStoreDown }

type failingPeople struct{}

func (failingPeople) GetAll(int, int) ([]*data.Person, int, error) { return nil, 0, errStoreDown }
func (failingPeople) Get(int64) (*data.Person, error)              { return nil, errStoreDown }
func (failingPeople) GetByIDs([]int64) ([]*data.Person, error)     { return nil, errStoreDown }
func (failingPeople) Insert(*data.Person) error                    { return errStoreDown }
func (failingPeople) Update(*data.Person) error                    { return errStoreDown }
func (failingPeople) Delete(int64) error                           { return errStoreDown }
