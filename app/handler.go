package main

import (
	"errors"
	"net/http"

	"github.com/arvanweb/sitecms/internal/common"
	"github.com/arvanweb/sitecms/internal/postservice"
)

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readIntQuery(r, "limit", 10)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	offset, err := app.readIntQuery(r, "offset", 0)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	filters := postservice.PostFilters{
		Category: r.URL.Query().Get("category"),
		Tag:      r.URL.Query().Get("tag"),
		Search:   r.URL.Query().Get("search"),
		Featured: app.readBoolQuery(r, "featured"),
	}

	posts, err := app.postService.GetPublishedPosts(r.Context(), filters, limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, posts)
}

func (app *application) showPostHandler(w http.ResponseWriter, r *http.Request) {
	idOrSlug := app.readStringParam(r, "id")

	post, err := app.postService.GetPost(r.Context(), idOrSlug)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, post)
}

func (app *application) relatedPostsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	posts, err := app.postService.GetRelatedPosts(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, posts)
}

func (app *application) incrementPostViewsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	views, err := app.postService.IncrementViews(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, map[string]int{"views": views})
}

func (app *application) likePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	likes, err := app.postService.LikePost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, map[string]int{"likes": likes})
}

func (app *application) showSeoDataHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readStringParam(r, "id")

	seo, err := app.postService.GetSeoData(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, seo)
}

func (app *application) adminListPostsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := app.readIntQuery(r, "page", 1)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	perPage, err := app.readIntQuery(r, "per_page", 10)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	posts, meta, err := app.postService.AdminListPosts(r.Context(), category, search, page, perPage)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": posts, "meta": meta}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input postservice.CreatePostRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.postService.CreatePost(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"slug": "a post with this slug already exists"})
		case errors.Is(err, postservice.ErrCategoryForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"category_id": "this category does not exist"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, post)
}

func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input postservice.UpdatePostRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.postService.UpdatePost(r.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, common.ErrEditConflict):
			app.editConflictErrorResponse(w, r)
		case errors.Is(err, postservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"slug": "a post with this slug already exists"})
		case errors.Is(err, postservice.ErrCategoryForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"category_id": "this category does not exist"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, post)
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.postService.DeletePost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeMessage(w, r, http.StatusOK, "post deleted")
}

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.postService.GetCategories(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, categories)
}

func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var input postservice.CategoryRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	category, err := app.postService.CreateCategory(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"name": "a category with this name already exists"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, category)
}

func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input postservice.UpdateCategoryRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	category, err := app.postService.UpdateCategory(r.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, postservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"name": "a category with this name already exists"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, category)
}

func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.postService.DeleteCategory(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, postservice.ErrCategoryInUse):
			app.writeErrorResponse(w, r, http.StatusConflict, "category is in use by existing posts")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeMessage(w, r, http.StatusOK, "category deleted")
}

func (app *application) listTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := app.postService.GetTags(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, tags)
}

type createTagRequest struct {
	Name string `json:"name"`
}

func (app *application) createTagHandler(w http.ResponseWriter, r *http.Request) {
	var input createTagRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	tag, err := app.postService.CreateTag(r.Context(), input.Name)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, tag)
}

func (app *application) listPostImagesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	images, err := app.postService.GetPostImages(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, images)
}

func (app *application) createImageHandler(w http.ResponseWriter, r *http.Request) {
	var input postservice.ImageRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	image, err := app.postService.CreateImage(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrPostForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"blog_post_id": "this post does not exist"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusCreated, image)
}

func (app *application) updateImageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input postservice.UpdateImageRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	image, err := app.postService.UpdateImage(r.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeData(w, r, http.StatusOK, image)
}

func (app *application) deleteImageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	url, err := app.postService.DeleteImage(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// The database row is gone; a failed object removal only leaves an
	// orphan behind, so log it rather than failing the request.
	if err := app.mediaService.Delete(r.Context(), url); err != nil {
		app.logError(r, err)
	}

	app.writeMessage(w, r, http.StatusOK, "image deleted")
}
