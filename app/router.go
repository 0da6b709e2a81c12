package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arvanweb/sitecms/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	// blog content
	router.HandlerFunc(http.MethodGet, "/v1/posts", app.listPostsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/posts/:id", app.showPostHandler)
	router.HandlerFunc(http.MethodGet, "/v1/posts/:id/related", app.relatedPostsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/posts/:id/seo", app.showSeoDataHandler)
	router.HandlerFunc(http.MethodGet, "/v1/posts/:id/images", app.listPostImagesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:id/views", app.incrementPostViewsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:id/like", app.likePostHandler)
	router.HandlerFunc(http.MethodGet, "/v1/categories", app.listCategoriesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/tags", app.listTagsHandler)

	// site content
	router.HandlerFunc(http.MethodGet, "/v1/team", app.listTeamHandler)
	router.HandlerFunc(http.MethodGet, "/v1/projects", app.listProjectsHandler)
	// a static "types" segment would collide with the :id wildcard
	router.HandlerFunc(http.MethodGet, "/v1/project-types", app.listProjectTypesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/projects/:id", app.showProjectHandler)
	router.HandlerFunc(http.MethodPost, "/v1/contact", app.submitContactHandler)

	// user service
	router.HandlerFunc(http.MethodPost, "/v1/users/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/logout", app.requireAuthUser(app.logoutUserHandler))

	// admin content management
	writeContent := userservice.PermissionWriteContent

	router.HandlerFunc(http.MethodGet, "/v1/admin/posts", app.requirePermission(app.adminListPostsHandler, writeContent))
	router.HandlerFunc(http.MethodPost, "/v1/admin/posts", app.requirePermission(app.createPostHandler, writeContent))
	router.HandlerFunc(http.MethodPatch, "/v1/admin/posts/:id", app.requirePermission(app.updatePostHandler, writeContent))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/posts/:id", app.requirePermission(app.deletePostHandler, writeContent))

	router.HandlerFunc(http.MethodPost, "/v1/admin/categories", app.requirePermission(app.createCategoryHandler, writeContent))
	router.HandlerFunc(http.MethodPatch, "/v1/admin/categories/:id", app.requirePermission(app.updateCategoryHandler, writeContent))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/categories/:id", app.requirePermission(app.deleteCategoryHandler, writeContent))
	router.HandlerFunc(http.MethodPost, "/v1/admin/tags", app.requirePermission(app.createTagHandler, writeContent))

	router.HandlerFunc(http.MethodPost, "/v1/admin/images", app.requirePermission(app.createImageHandler, writeContent))
	router.HandlerFunc(http.MethodPatch, "/v1/admin/images/:id", app.requirePermission(app.updateImageHandler, writeContent))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/images/:id", app.requirePermission(app.deleteImageHandler, writeContent))
	router.HandlerFunc(http.MethodPost, "/v1/admin/media", app.requirePermission(app.uploadMediaHandler, writeContent))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/media", app.requirePermission(app.deleteMediaHandler, writeContent))

	router.HandlerFunc(http.MethodGet, "/v1/admin/team", app.requirePermission(app.adminListTeamHandler, writeContent))
	router.HandlerFunc(http.MethodPost, "/v1/admin/team", app.requirePermission(app.createTeamMemberHandler, writeContent))
	router.HandlerFunc(http.MethodGet, "/v1/admin/team/:id", app.requirePermission(app.showTeamMemberHandler, writeContent))
	router.HandlerFunc(http.MethodPatch, "/v1/admin/team/:id", app.requirePermission(app.updateTeamMemberHandler, writeContent))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/team/:id", app.requirePermission(app.deleteTeamMemberHandler, writeContent))

	router.HandlerFunc(http.MethodGet, "/v1/admin/projects", app.requirePermission(app.adminListProjectsHandler, writeContent))
	router.HandlerFunc(http.MethodPost, "/v1/admin/projects", app.requirePermission(app.createProjectHandler, writeContent))
	router.HandlerFunc(http.MethodPatch, "/v1/admin/projects/:id", app.requirePermission(app.updateProjectHandler, writeContent))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/projects/:id", app.requirePermission(app.deleteProjectHandler, writeContent))

	router.HandlerFunc(http.MethodPost, "/v1/admin/users", app.requirePermission(app.createUserHandler, writeContent))

	return app.metrics(app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router)))))
}
