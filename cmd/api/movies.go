package main

import (
	"errors"
	"net/http"

	"github.com/myk4040okothogodo/moviecatalog/internal/data"
	"github.com/myk4040okothogodo/moviecatalog/internal/validator"
)

// moviePage is the data of the list response.
type moviePage struct {
	Movies []data.MovieListView `json:"Movies"`
	Count  int                  `json:"Count"`
}

// listMoviesHandler handles "GET /api/movie?pageIndex=&pageSize=". pageIndex is the number of movies to
// skip, not a page number.
func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	qs := r.URL.Query()

	page := data.Page{
		PageIndex: app.readInt(qs, "pageIndex", 0, v),
		PageSize:  app.readInt(qs, "pageSize", 10, v),
	}

	if data.ValidatePage(v, page); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	movies, count, err := app.models.Movies.GetAll(page.PageIndex, page.PageSize)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		Status:  true,
		Message: "Success",
		Data:    moviePage{Movies: data.NewMovieListViews(movies), Count: count},
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.recordNotFoundResponse(w, r, recordNotFound)
		return
	}

	movie, err := app.models.Movies.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r, recordNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Status: true, Message: "Success", Data: data.NewMovieDetailView(movie)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input data.MovieInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err.Error())
		return
	}

	v := validator.New()

	if data.ValidateMovieInput(v, input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	// Every requested actor has to exist before anything is written.
	actors, ok, err := app.resolveActors(input.Actors)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !ok {
		app.badRequestResponse(w, r, invalidActorAssigned)
		return
	}

	movie := input.Movie()
	movie.Actors = actors

	err = app.models.Movies.Insert(movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Status: true, Message: "Created Successfully", Data: data.NewMovieListView(movie)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input data.MovieInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err.Error())
		return
	}

	// Reject impossible ids before touching the database.
	if input.ID <= 0 {
		app.badRequestResponse(w, r, invalidMovieRecord)
		return
	}

	v := validator.New()

	if data.ValidateMovieInput(v, input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	actors, ok, err := app.resolveActors(input.Actors)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !ok {
		app.badRequestResponse(w, r, invalidActorAssigned)
		return
	}

	movie, err := app.models.Movies.Get(input.ID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r, invalidMovieRecord)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	input.Apply(movie)
	removed, added := data.DiffActors(movie.ActorIDs(), input.Actors)

	err = app.models.Movies.Update(movie, removed, added)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r, invalidMovieRecord)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// After reconciliation the actor set is exactly the requested one.
	movie.Actors = actors

	err = app.writeJSON(w, http.StatusOK, envelope{Status: true, Message: "Updated Successfully", Data: data.NewMovieDetailView(movie)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteMovieHandler handles "DELETE /api/movie?id=".
func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, invalidMovieRecord)
		return
	}

	err = app.models.Movies.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r, invalidMovieRecord)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Status: true, Message: "Deleted Successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// resolveActors looks up the people with the given ids. ok is false unless every id matched a row, so
// unknown and duplicated ids are both refused.
func (app *application) resolveActors(ids []int64) (actors []*data.Person, ok bool, err error) {
	// A repeated id can never match a distinct person.
	if !validator.Unique(ids) {
		return nil, false, nil
	}

	actors, err = app.models.People.GetByIDs(ids)
	if err != nil {
		return nil, false, err
	}

	return actors, len(actors) == len(ids), nil
}
