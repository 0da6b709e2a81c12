package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/arvanweb/sitecms/internal/mediaservice"
)

// maxUploadSize caps a single multipart upload at 10 MB.
const maxUploadSize = 10 << 20

func (app *application) uploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		app.badRequestErrorResponse(w, r, errors.New("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		app.badRequestErrorResponse(w, r, errors.New("missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	upload, err := app.mediaService.Store(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, mediaservice.ErrEmptyUpload):
			app.badRequestErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, upload)
}

type deleteMediaRequest struct {
	URL string `json:"url"`
}

func (app *application) deleteMediaHandler(w http.ResponseWriter, r *http.Request) {
	var input deleteMediaRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if input.URL == "" {
		app.badRequestErrorResponse(w, r, errors.New("url must be provided"))
		return
	}

	err = app.mediaService.Delete(r.Context(), input.URL)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeMessage(w, r, http.StatusOK, "media deleted")
}
