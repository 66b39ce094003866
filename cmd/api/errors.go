package main

import (
	"fmt"
	"net/http"

	"github.com/tomasen/realip"
)

// Messages returned to clients. Validation and not-found failures carry a specific message; anything
// unexpected is reported as somethingWentWrong and logged.
const (
	somethingWentWrong   = "Something went wrong"
	validationFailed     = "Validation failed"
	recordNotFound       = "Record Not Found."
	invalidMovieRecord   = "Invalid Movie Record."
	invalidPersonRecord  = "Invalid Person Record."
	invalidActorAssigned = "Invalid Actor assigned."
	extensionNotAllowed  = "Only .jpg, .jpeg and .png extensions allowed"
	uploadFailed         = "Error occurred."
)

// logError writes the error with details of the request that caused it.
func (app *application) logError(r *http.Request, err error) {
	app.logger.PrintError(err, map[string]string{
		"request_id":     app.contextGetRequestID(r),
		"request_method": r.Method,
		"request_url":    r.URL.String(),
		"client_ip":      realip.FromRequest(r),
	})
}

// errorResponse sends a failure envelope with the given status code.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	env := envelope{Status: false, Message: message, Data: data}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse is used when the application hits an unexpected problem at runtime. The cause
// is logged and the client gets the generic message.
func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, somethingWentWrong, nil)
}

// badRequestResponse reports a request that cannot be processed as sent.
func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusBadRequest, message, nil)
}

// failedValidationResponse carries the per-field validation messages as the envelope's data.
func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.errorResponse(w, r, http.StatusBadRequest, validationFailed, errors)
}

// recordNotFoundResponse reports an id with no matching row.
func (app *application) recordNotFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusNotFound, message, nil)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	app.errorResponse(w, r, http.StatusNotFound, message, nil)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message, nil)
}
