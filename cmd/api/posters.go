package main

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/myk4040okothogodo/moviecatalog/internal/posters"
)

type posterUpload struct {
	ProfileImage string `json:"ProfileImage"`
}

// uploadMoviePosterHandler stores the multipart file in the "imageFile" field and returns the URL it is
// served from.
func (app *application) uploadMoviePosterHandler(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("imageFile")
	if err != nil {
		app.badRequestResponse(w, r, uploadFailed)
		return
	}
	defer file.Close()

	name, err := app.posters.Save(posterFilename(header), file)
	if err != nil {
		switch {
		case errors.Is(err, posters.ErrExtensionNotAllowed):
			app.badRequestResponse(w, r, extensionNotAllowed)
		default:
			app.logError(r, err)
			app.errorResponse(w, r, http.StatusInternalServerError, uploadFailed, nil)
		}
		return
	}

	env := envelope{
		Status:  true,
		Message: "Success",
		Data:    posterUpload{ProfileImage: app.absoluteURL(r, staticFilesPath+"/"+name)},
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// posterFilename takes the file name from the part's Content-Disposition header, falling back to the
// name the multipart reader already extracted.
func posterFilename(header *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(header.Header.Get("Content-Disposition"))
	if err == nil && params["filename"] != "" {
		return params["filename"]
	}
	return header.Filename
}
