package main

import "net/http"

func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	app.writeData(w, r, http.StatusOK, map[string]string{
		"status":      "available",
		"environment": app.config.Environment,
		"version":     app.config.Version,
	})
}
