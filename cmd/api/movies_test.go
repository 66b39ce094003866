package main

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myk4040okothogodo/moviecatalog/internal/data"
)

func movieBody(actors ...int64) map[string]any {
	if actors == nil {
		actors = []int64{}
	}
	return map[string]any{
		"Title":       "Heat",
		"Description": "A group of professional bank robbers...",
		"Language":    "English",
		"ReleaseDate": "1995-12-15T00:00:00",
		"CoverImage":  "http://localhost:4000/StaticFiles/heat.jpg",
		"Actors":      actors,
	}
}

func createMovie(t *testing.T, ts *testServer, actors ...int64) data.MovieListView {
	t.Helper()

	code, env := ts.doJSON(t, http.MethodPost, "/api/movie", movieBody(actors...))
	require.Equal(t, http.StatusOK, code, env.Message)

	var view data.MovieListView
	decodeData(t, env, &view)
	return view
}

func actorIDs(views []data.ActorView) []int64 {
	ids := []int64{}
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestCreateMovie(t *testing.T) {
	app := newTestApplication(t)
	seedPeople(t, app, "Al Pacino", "Robert De Niro")
	ts := newTestServer(t, app.routes())

	code, env := ts.doJSON(t, http.MethodPost, "/api/movie", movieBody(1, 2))
	require.Equal(t, http.StatusOK, code)

	assert.True(t, env.Status)
	assert.Equal(t, "Created Successfully", env.Message)

	var view data.MovieListView
	decodeData(t, env, &view)
	assert.Equal(t, int64(1), view.ID)
	assert.Equal(t, "1995-12-15", view.ReleaseDate.String())
	assert.Equal(t, []data.ActorSummary{{ID: 1, Name: "Al Pacino"}, {ID: 2, Name: "Robert De Niro"}}, view.Actors)
}

func TestCreateMovieRejectsUnknownActor(t *testing.T) {
	app := newTestApplication(t)
	seedPeople(t, app, "Al Pacino")
	ts := newTestServer(t, app.routes())

	for _, actors := range [][]int64{{1, 99}, {1, 1}} {
		code, env := ts.doJSON(t, http.MethodPost, "/api/movie", movieBody(actors...))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, env.Status)
		assert.Equal(t, "Invalid Actor assigned.", env.Message)
	}

	// Nothing was written, not even a movie without actors.
	_, count, err := app.models.Movies.GetAll(0, 10)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateMovieAcceptsAnyLanguageText(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	for _, language := range []string{"English (US)", "en_US", "Chinese, Mandarin"} {
		t.Run(language, func(t *testing.T) {
			body := movieBody()
			body["Language"] = language

			code, env := ts.doJSON(t, http.MethodPost, "/api/movie", body)
			require.Equal(t, http.StatusOK, code, env.Message)

			var view data.MovieListView
			decodeData(t, env, &view)
			assert.Equal(t, language, view.Language)
		})
	}
}

func TestCreateMovieRejectsRepeatedActorBeforeLookup(t *testing.T) {
	app := newTestApplication(t)
	// Any lookup would fail with a 500.
	app.models.People = failingPeople{}
	ts := newTestServer(t, app.routes())

	code, env := ts.doJSON(t, http.MethodPost, "/api/movie", movieBody(3, 3))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid Actor assigned.", env.Message)
}

func TestCreateMovieValidation(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing fields", `{"Description": "no title"}`, "Validation failed"},
		{"bad date", `{"Title": "Heat", "ReleaseDate": "15/12/1995"}`, "invalid date format"},
		{"unknown key", `{"Title": "Heat", "Rating": 5}`, `body contains unknown key "Rating"`},
		{"wrong type", `{"Title": 5}`, `body contains incorrect JSON type for field "Title"`},
		{"empty body", ``, "body must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, env := ts.do(t, http.MethodPost, "/api/movie", strings.NewReader(tt.body), "application/json")
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Status)
			assert.Equal(t, tt.message, env.Message)
		})
	}

	code, _, env := ts.do(t, http.MethodPost, "/api/movie", strings.NewReader(`{"Description": "no title"}`), "application/json")
	require.Equal(t, http.StatusBadRequest, code)
	var fieldErrors map[string]string
	decodeData(t, env, &fieldErrors)
	assert.Equal(t, "must be provided", fieldErrors["Title"])
	assert.Equal(t, "must be provided", fieldErrors["Actors"])
}

func TestListMovies(t *testing.T) {
	app := newTestApplication(t)
	seedPeople(t, app, "Al Pacino")
	ts := newTestServer(t, app.routes())

	for i := 0; i < 12; i++ {
		createMovie(t, ts, 1)
	}

	tests := []struct {
		query   string
		wantLen int
		firstID int64
	}{
		{"", 10, 1},
		{"?pageIndex=0&pageSize=5", 5, 1},
		{"?pageIndex=3&pageSize=5", 5, 4},
		{"?pageIndex=10&pageSize=5", 2, 11},
		{"?pageIndex=50&pageSize=5", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			code, env := ts.doJSON(t, http.MethodGet, "/api/movie"+tt.query, nil)
			require.Equal(t, http.StatusOK, code)

			var page struct {
				Movies []data.MovieListView
				Count  int
			}
			decodeData(t, env, &page)

			assert.Equal(t, 12, page.Count)
			require.Len(t, page.Movies, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.firstID, page.Movies[0].ID)
				assert.Len(t, page.Movies[0].Actors, 1)
			}
		})
	}
}

func TestListMoviesValidation(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	for _, query := range []string{"?pageIndex=-1", "?pageSize=0", "?pageSize=abc"} {
		code, env := ts.doJSON(t, http.MethodGet, "/api/movie"+query, nil)
		assert.Equal(t, http.StatusBadRequest, code, query)
		assert.Equal(t, "Validation failed", env.Message, query)
	}
}

func TestShowMovie(t *testing.T) {
	app := newTestApplication(t)
	seedPeople(t, app, "Al Pacino", "Robert De Niro")
	ts := newTestServer(t, app.routes())
	created := createMovie(t, ts, 2, 1)

	code, env := ts.doJSON(t, http.MethodGet, fmt.Sprintf("/api/movie/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, code)

	var view data.MovieDetailView
	decodeData(t, env, &view)
	assert.Equal(t, "A group of professional bank robbers...", view.Description)
	assert.Equal(t, []int64{1, 2}, actorIDs(view.Actors))
	assert.Equal(t, "1970-01-01", view.Actors[0].DateOfBirth.String())

	for _, path := range []string{"/api/movie/42", "/api/movie/0", "/api/movie/abc"} {
		code, env := ts.doJSON(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "Record Not Found.", env.Message, path)
		assert.Equal(t, "null", string(env.Data), path)
	}
}

func TestUpdateMovieReconcilesActors(t *testing.T) {
	app := newTestApplication(t)
	seedPeople(t, app, "A", "B", "C", "D")
	ts := newTestServer(t, app.routes())
	created := createMovie(t, ts, 1, 2, 3)

	body := movieBody(2, 3, 4)
	body["Id"] = created.ID
	body["Title"] = "Heat (Director's Cut)"

	code, env := ts.doJSON(t, http.MethodPut, "/api/movie", body)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "Updated Successfully", env.Message)

	var view data.MovieDetailView
	decodeData(t, env, &view)
	assert.Equal(t, "Heat (Director's Cut)", view.Title)
	assert.Equal(t, []int64{2, 3, 4}, actorIDs(view.Actors))

	stored, err := app.models.Movies.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, stored.ActorIDs())
	assert.Equal(t, "Heat (Director's Cut)", stored.Title)
}

func TestUpdateMovieFailures(t *testing.T) {
	app := newTestApplication(t)
	seedPeople(t, app, "A")
	ts := newTestServer(t, app.routes())
	createMovie(t, ts, 1)

	tests := []struct {
		name    string
		id      int64
		actors  []int64
		code    int
		message string
	}{
		{"zero id", 0, []int64{1}, http.StatusBadRequest, "Invalid Movie Record."},
		{"negative id", -4, []int64{1}, http.StatusBadRequest, "Invalid Movie Record."},
		{"unknown actor", 1, []int64{1, 7}, http.StatusBadRequest, "Invalid Actor assigned."},
		{"unknown movie", 9, []int64{1}, http.StatusNotFound, "Invalid Movie Record."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := movieBody(tt.actors...)
			body["Id"] = tt.id

			code, env := ts.doJSON(t, http.MethodPut, "/api/movie", body)
			assert.Equal(t, tt.code, code)
			assert.False(t, env.Status)
			assert.Equal(t, tt.message, env.Message)
		})
	}

	stored, err := app.models.Movies.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, stored.ActorIDs())
}

func TestUpdateMovieRejectsBadIDBeforeLookup(t *testing.T) {
	app := newTestApplication(t)
	app.models.Movies = failingMovies{}
	app.models.People = failingPeople{}
	ts := newTestServer(t, app.routes())

	body := movieBody(1)
	body["Id"] = 0

	code, env := ts.doJSON(t, http.MethodPut, "/api/movie", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid Movie Record.", env.Message)
}

func TestDeleteMovie(t *testing.T) {
	app := newTestApplication(t)
	seedPeople(t, app, "A")
	ts := newTestServer(t, app.routes())
	createMovie(t, ts, 1)
	createMovie(t, ts, 1)

	code, env := ts.doJSON(t, http.MethodDelete, "/api/movie?id=99", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Invalid Movie Record.", env.Message)

	code, env = ts.doJSON(t, http.MethodDelete, "/api/movie?id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid Movie Record.", env.Message)

	_, count, err := app.models.Movies.GetAll(0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	code, env = ts.doJSON(t, http.MethodDelete, "/api/movie?id=1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)
	assert.Equal(t, "Deleted Successfully", env.Message)
	assert.Equal(t, "null", string(env.Data))

	_, count, err = app.models.Movies.GetAll(0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The actor is still there.
	_, err = app.models.People.Get(1)
	assert.NoError(t, err)
}

func TestMovieHandlersStoreFailure(t *testing.T) {
	app := newTestApplication(t)
	app.models.Movies = failingMovies{}
	app.models.People = failingPeople{}
	ts := newTestServer(t, app.routes())

	update := movieBody(1)
	update["Id"] = 1

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/movie", nil},
		{http.MethodGet, "/api/movie/1", nil},
		{http.MethodPost, "/api/movie", movieBody(1)},
		{http.MethodPut, "/api/movie", update},
		{http.MethodDelete, "/api/movie?id=1", nil},
	}

	for _, rq := range requests {
		code, env := ts.doJSON(t, rq.method, rq.path, rq.body)
		assert.Equal(t, http.StatusInternalServerError, code, rq.method+" "+rq.path)
		assert.False(t, env.Status)
		assert.Equal(t, "Something went wrong", env.Message)
	}
}
