package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheckHandler(t *testing.T) {
	app := newBareApplication()
	app.config.Environment = "testing"
	app.config.Version = "1.0.0"

	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/v1/healthcheck", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "available", data["status"])
	assert.Equal(t, "testing", data["environment"])
}

func TestLoginUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	_ = seedAdmin(t, app)

	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{
			name: "Valid Credentials",
			payload: map[string]any{
				"username": app.config.Admin.Username,
				"password": app.config.Admin.Password,
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Wrong Password",
			payload: map[string]any{
				"username": app.config.Admin.Username,
				"password": "WrongPassword1!",
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown User",
			payload: map[string]any{
				"username": "nobody",
				"password": "WrongPassword1!",
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/v1/users/login", tc.payload, nil)
			assert.Equal(t, tc.wantStatus, status)

			if tc.wantStatus == http.StatusOK {
				data, ok := body["data"].(map[string]any)
				require.True(t, ok)
				assert.Len(t, data["access_token"], 26)
				assert.Len(t, data["refresh_token"], 26)
			} else {
				assert.Equal(t, false, body["success"])
			}
		})
	}
}

func TestLogoutUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	token := seedAdmin(t, app)

	ts := newTestServer(t, app.routes())

	status, _, body := ts.post(t, "/v1/users/logout", nil, &token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user logged out", body["message"])

	// the token is gone, so a second logout is unauthenticated
	status, _, _ = ts.post(t, "/v1/users/logout", nil, &token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPostEndpoints(t *testing.T) {
	app, _ := newTestApplication(t)
	token := seedAdmin(t, app)

	ts := newTestServer(t, app.routes())

	create := map[string]any{
		"title":        "Launch Day Checklist",
		"excerpt":      "Everything to verify before going live.",
		"content":      "Check DNS records, TLS certificates and uptime monitors before launch.",
		"status":       "published",
		"is_published": true,
		"tags":         []string{"Go", "Web"},
	}

	status, _, body := ts.post(t, "/v1/admin/posts", create, &token)
	require.Equal(t, http.StatusCreated, status)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "launch-day-checklist", data["slug"])
	postID := int(data["id"].(float64))

	t.Run("missing fields are rejected", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/admin/posts", map[string]any{"title": "No Body"}, &token)
		assert.Equal(t, http.StatusUnprocessableEntity, status)

		errs, ok := body["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "must be provided", errs["content"])
	})

	t.Run("anonymous writes are rejected", func(t *testing.T) {
		status, _, _ := ts.post(t, "/v1/admin/posts", create, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("public detail by slug", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/posts/launch-day-checklist", nil)
		assert.Equal(t, http.StatusOK, status)

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Launch Day Checklist", data["title"])
	})

	t.Run("public listing", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/posts?tag=go", nil)
		assert.Equal(t, http.StatusOK, status)

		posts, ok := body["data"].([]any)
		require.True(t, ok)
		assert.Len(t, posts, 1)
	})

	t.Run("admin listing has pagination metadata", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/admin/posts?page=1&per_page=10", &token)
		assert.Equal(t, http.StatusOK, status)

		meta, ok := body["meta"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(1), meta["current_page"])
		assert.Equal(t, float64(1), meta["total"])
	})

	t.Run("update", func(t *testing.T) {
		status, _, body := ts.patch(t, fmt.Sprintf("/v1/admin/posts/%d", postID), &token, map[string]any{
			"title": "Launch Day Checklist, Revised",
		})
		assert.Equal(t, http.StatusOK, status)

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Launch Day Checklist, Revised", data["title"])
	})

	t.Run("like", func(t *testing.T) {
		status, _, body := ts.post(t, fmt.Sprintf("/v1/posts/%d/like", postID), nil, nil)
		assert.Equal(t, http.StatusOK, status)

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(1), data["likes"])
	})

	t.Run("delete", func(t *testing.T) {
		status, _, _ := ts.delete(t, fmt.Sprintf("/v1/admin/posts/%d", postID), &token)
		assert.Equal(t, http.StatusOK, status)

		status, _, _ = ts.get(t, "/v1/posts/launch-day-checklist", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestTeamEndpoints(t *testing.T) {
	app, _ := newTestApplication(t)
	token := seedAdmin(t, app)

	ts := newTestServer(t, app.routes())

	status, _, body := ts.post(t, "/v1/admin/team", map[string]any{
		"name":   "Sara Ahmadi",
		"role":   "Lead Designer",
		"email":  "sara@example.com",
		"skills": []string{"Figma", "CSS"},
	}, &token)
	require.Equal(t, http.StatusCreated, status)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sara-ahmadi", data["slug"])

	status, _, body = ts.get(t, "/v1/team", nil)
	assert.Equal(t, http.StatusOK, status)

	members, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, members, 1)
}

func TestProjectEndpoints(t *testing.T) {
	app, _ := newTestApplication(t)
	token := seedAdmin(t, app)

	ts := newTestServer(t, app.routes())

	status, _, body := ts.post(t, "/v1/admin/projects", map[string]any{
		"title":        "Online Bookstore",
		"type":         "ecommerce",
		"category":     "Retail",
		"year":         "2026",
		"technologies": []string{"Go", "PostgreSQL"},
		"is_featured":  true,
	}, &token)
	require.Equal(t, http.StatusCreated, status)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "online-bookstore", data["slug"])

	t.Run("invalid type is rejected", func(t *testing.T) {
		status, _, _ := ts.post(t, "/v1/admin/projects", map[string]any{
			"title":    "Bad Type",
			"type":     "desktop",
			"category": "Retail",
		}, &token)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("public listing with filters", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/projects?type=ecommerce&featured=true", nil)
		assert.Equal(t, http.StatusOK, status)

		projects, ok := body["data"].([]any)
		require.True(t, ok)
		assert.Len(t, projects, 1)
	})

	t.Run("detail by slug", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/projects/online-bookstore", nil)
		assert.Equal(t, http.StatusOK, status)

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Online Bookstore", data["title"])
	})

	t.Run("type options", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/project-types", nil)
		assert.Equal(t, http.StatusOK, status)

		options, ok := body["data"].([]any)
		require.True(t, ok)
		assert.Len(t, options, 6)
	})
}

func TestSubmitContactHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{
			name: "Valid Message",
			payload: map[string]any{
				"name":    "Visitor",
				"email":   "visitor@example.com",
				"subject": "Quote request",
				"message": "I would like a quote for a new website.",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Invalid Email",
			payload: map[string]any{
				"name":    "Visitor",
				"email":   "not-an-email",
				"message": "hello",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "Missing Message",
			payload: map[string]any{
				"name":  "Visitor",
				"email": "visitor@example.com",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/v1/contact", tc.payload, nil)
			assert.Equal(t, tc.wantStatus, status)

			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, "your message has been received", body["message"])
			}
		})
	}
}
