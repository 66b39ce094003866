package main

import (
	"errors"
	"net/http"

	"github.com/myk4040okothogodo/moviecatalog/internal/data"
	"github.com/myk4040okothogodo/moviecatalog/internal/validator"
)

type personPage struct {
	People []data.ActorView `json:"People"`
	Count  int              `json:"Count"`
}

func (app *application) listPeopleHandler(w http.ResponseWriter, r *http.Request) {
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

	people, count, err := app.models.People.GetAll(page.PageIndex, page.PageSize)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		Status:  true,
		Message: "Success",
		Data:    personPage{People: data.NewActorViews(people), Count: count},
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showPersonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.recordNotFoundResponse(w, r, recordNotFound)
		return
	}

	person, err := app.models.People.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r, recordNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Status: true, Message: "Success", Data: data.NewActorView(person)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createPersonHandler(w http.ResponseWriter, r *http.Request) {
	var input data.PersonInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err.Error())
		return
	}

	v := validator.New()

	if data.ValidatePersonInput(v, input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	person := input.Person()
	person.ID = 0

	err = app.models.People.Insert(person)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Status: true, Message: "Created Successfully", Data: data.NewActorView(person)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updatePersonHandler(w http.ResponseWriter, r *http.Request) {
	var input data.PersonInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err.Error())
		return
	}

	if input.ID <= 0 {
		app.badRequestResponse(w, r, invalidPersonRecord)
		return
	}

	v := validator.New()

	if data.ValidatePersonInput(v, input); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	person := input.Person()

	err = app.models.People.Update(person)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r, invalidPersonRecord)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{Status: true, Message: "Updated Successfully", Data: data.NewActorView(person)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deletePersonHandler removes the person from every movie they were linked to. The movies stay.
func (app *application) deletePersonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, invalidPersonRecord)
		return
	}

	err = app.models.People.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.recordNotFoundResponse(w, r, invalidPersonRecord)
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
