package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// staticFilesPath is the URL prefix uploaded posters are served under.
const staticFilesPath = "/StaticFiles"

func (app *application) routes() http.Handler {
	router := httprouter.New()

	// Use our envelope helpers for 404 Not Found and 405 Method Not Allowed responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/api/movie", app.listMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/api/movie/:id", app.showMovieHandler)
	router.HandlerFunc(http.MethodPost, "/api/movie", app.createMovieHandler)
	router.HandlerFunc(http.MethodPut, "/api/movie", app.updateMovieHandler)
	router.HandlerFunc(http.MethodDelete, "/api/movie", app.deleteMovieHandler)
	router.HandlerFunc(http.MethodPost, "/api/movie/upload-movie-poster", app.uploadMoviePosterHandler)

	router.HandlerFunc(http.MethodGet, "/api/person", app.listPeopleHandler)
	router.HandlerFunc(http.MethodGet, "/api/person/:id", app.showPersonHandler)
	router.HandlerFunc(http.MethodPost, "/api/person", app.createPersonHandler)
	router.HandlerFunc(http.MethodPut, "/api/person", app.updatePersonHandler)
	router.HandlerFunc(http.MethodDelete, "/api/person", app.deletePersonHandler)

	router.ServeFiles(staticFilesPath+"/*filepath", fileOnlyFS{http.Dir(app.config.uploads.dir)})

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	return app.metrics(app.logRequest(app.recoverPanic(app.enableCORS(router))))
}
