package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arvanweb/sitecms/internal/common"
	"github.com/arvanweb/sitecms/internal/mailservice"
	"github.com/arvanweb/sitecms/internal/projectservice"
	"github.com/arvanweb/sitecms/internal/teamservice"
)

func (app *application) listTeamHandler(w http.ResponseWriter, r *http.Request) {
	members, err := app.teamService.GetActiveMembers(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, members)
}

func (app *application) adminListTeamHandler(w http.ResponseWriter, r *http.Request) {
	members, err := app.teamService.GetAllMembers(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, members)
}

func (app *application) showTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	member, err := app.teamService.GetMember(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, member)
}

func (app *application) createTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	var input teamservice.CreateMemberRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	member, err := app.teamService.CreateMember(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, teamservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"slug": "a team member with this slug already exists"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, member)
}

func (app *application) updateTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input teamservice.UpdateMemberRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	member, err := app.teamService.UpdateMember(r.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, teamservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"slug": "a team member with this slug already exists"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, member)
}

func (app *application) deleteTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.teamService.DeleteMember(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeMessage(w, r, http.StatusOK, "team member deleted")
}

func (app *application) listProjectsHandler(w http.ResponseWriter, r *http.Request) {
	filters := projectservice.ProjectFilters{
		Type:         r.URL.Query().Get("type"),
		FeaturedOnly: app.readBoolQuery(r, "featured"),
	}

	projects, err := app.projectService.GetProjects(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, projects)
}

func (app *application) adminListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	filters := projectservice.ProjectFilters{
		Type:            r.URL.Query().Get("type"),
		FeaturedOnly:    app.readBoolQuery(r, "featured"),
		IncludeInactive: true,
	}

	projects, err := app.projectService.GetProjects(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, projects)
}

func (app *application) listProjectTypesHandler(w http.ResponseWriter, r *http.Request) {
	app.writeData(w, r, http.StatusOK, app.projectService.GetTypeOptions())
}

func (app *application) showProjectHandler(w http.ResponseWriter, r *http.Request) {
	idOrSlug := app.readStringParam(r, "id")

	project, err := app.projectService.GetProject(r.Context(), idOrSlug)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, project)
}

func (app *application) createProjectHandler(w http.ResponseWriter, r *http.Request) {
	var input projectservice.CreateProjectRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	project, err := app.projectService.CreateProject(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, projectservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"slug": "a project with this slug already exists"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, project)
}

func (app *application) updateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input projectservice.UpdateProjectRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	project, err := app.projectService.UpdateProject(r.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, projectservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"slug": "a project with this slug already exists"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, project)
}

func (app *application) deleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.projectService.DeleteProject(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeMessage(w, r, http.StatusOK, "project deleted")
}

func (app *application) submitContactHandler(w http.ResponseWriter, r *http.Request) {
	var input mailservice.ContactMessage

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	v := common.NewValidator()
	v.Check(input.Name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(input.Name, 1, 255), "name", "must not be more than 255 characters")
	v.Check(input.Email != "", "email", "must be provided")
	v.Check(teamservice.EmailRX.MatchString(input.Email), "email", "must be a valid email address")
	v.Check(input.Message != "", "message", "must be provided")
	v.Check(v.CheckStringLength(input.Message, 1, 5000), "message", "must not be more than 5000 characters")
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	msg, err := json.Marshal(input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.broker.Publish(r.Context(), msg, common.ContactSubmittedKey, common.ContentExchange)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeMessage(w, r, http.StatusOK, "your message has been received")
}
