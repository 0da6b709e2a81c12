package projectservice

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvanweb/sitecms/internal/common"
)

func setupTestService(t *testing.T) (*ProjectService, func() error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM web_projects")
		cache.Flush()
		return err
	}

	return NewProjectService(db, cache, logger), cleanup
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateProject(t *testing.T) {
	s, cleanup := setupTestService(t)

	testCases := []struct {
		name        string
		req         *CreateProjectRequest
		expectedErr error
		check       func(t *testing.T, p *WebProject)
	}{
		{
			name: "valid project with defaults",
			req: &CreateProjectRequest{
				Title:        "Online Shop Redesign",
				Type:         "ecommerce",
				Category:     "retail",
				Technologies: common.JSONStringList{"laravel", "vue"},
				Results:      common.JSONStringMap{"conversion": "+35%"},
			},
			check: func(t *testing.T, p *WebProject) {
				assert.Equal(t, "online-shop-redesign", p.Slug)
				assert.Equal(t, defaultColor, p.Color)
				assert.True(t, p.IsActive)
				assert.False(t, p.IsFeatured)
				assert.Equal(t, common.JSONStringList{"laravel", "vue"}, p.Technologies)
				assert.Equal(t, common.JSONStringMap{"conversion": "+35%"}, p.Results)
			},
		},
		{
			name: "explicit color is kept",
			req: &CreateProjectRequest{
				Title:    "Branded Site",
				Type:     "website",
				Category: "corporate",
				Color:    "from-blue-500 to-cyan-500",
			},
			check: func(t *testing.T, p *WebProject) {
				assert.Equal(t, "from-blue-500 to-cyan-500", p.Color)
			},
		},
		{
			name: "invalid type",
			req: &CreateProjectRequest{
				Title:    "Bad Type",
				Type:     "desktop",
				Category: "misc",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"type": "must be website, app, seo, ecommerce, or webapp"}},
		},
		{
			name: "missing category",
			req: &CreateProjectRequest{
				Title: "No Category",
				Type:  "website",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"category": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := s.CreateProject(context.Background(), tc.req)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil && tc.check != nil {
				tc.check(t, p)
			}

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}
}

func TestProjectListing(t *testing.T) {
	s, cleanup := setupTestService(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	ctx := context.Background()

	_, err := s.CreateProject(ctx, &CreateProjectRequest{
		Title: "Shop", Type: "ecommerce", Category: "retail", Order: 2,
	})
	require.NoError(t, err)

	_, err = s.CreateProject(ctx, &CreateProjectRequest{
		Title: "Landing", Type: "website", Category: "corporate", Order: 1,
		IsFeatured: boolPtr(true),
	})
	require.NoError(t, err)

	_, err = s.CreateProject(ctx, &CreateProjectRequest{
		Title: "Retired", Type: "website", Category: "corporate", Order: 0,
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	t.Run("default listing is active projects in display order", func(t *testing.T) {
		projects, err := s.GetProjects(ctx, ProjectFilters{})
		require.NoError(t, err)

		require.Len(t, projects, 2)
		assert.Equal(t, "Landing", projects[0].Title)
		assert.Equal(t, "Shop", projects[1].Title)
	})

	t.Run("type filter", func(t *testing.T) {
		projects, err := s.GetProjects(ctx, ProjectFilters{Type: "ecommerce"})
		require.NoError(t, err)

		require.Len(t, projects, 1)
		assert.Equal(t, "Shop", projects[0].Title)
	})

	t.Run("type all is no filter", func(t *testing.T) {
		projects, err := s.GetProjects(ctx, ProjectFilters{Type: "all"})
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})

	t.Run("featured filter", func(t *testing.T) {
		projects, err := s.GetProjects(ctx, ProjectFilters{FeaturedOnly: true})
		require.NoError(t, err)

		require.Len(t, projects, 1)
		assert.Equal(t, "Landing", projects[0].Title)
	})

	t.Run("include inactive widens the scope", func(t *testing.T) {
		projects, err := s.GetProjects(ctx, ProjectFilters{IncludeInactive: true})
		require.NoError(t, err)
		assert.Len(t, projects, 3)
	})
}

func TestGetProject(t *testing.T) {
	s, cleanup := setupTestService(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	ctx := context.Background()

	created, err := s.CreateProject(ctx, &CreateProjectRequest{
		Title: "Lookup Target", Type: "webapp", Category: "saas",
	})
	require.NoError(t, err)

	t.Run("by slug", func(t *testing.T) {
		p, err := s.GetProject(ctx, "lookup-target")
		require.NoError(t, err)
		assert.Equal(t, created.ID, p.ID)
	})

	t.Run("by numeric id", func(t *testing.T) {
		p, err := s.GetProject(ctx, strconv.Itoa(created.ID))
		require.NoError(t, err)
		assert.Equal(t, created.ID, p.ID)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := s.GetProject(ctx, "no-such-project")
		assert.Equal(t, common.ErrRecordNotFound, err)
	})
}

func TestUpdateProject(t *testing.T) {
	s, cleanup := setupTestService(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	ctx := context.Background()

	p, err := s.CreateProject(ctx, &CreateProjectRequest{
		Title: "Original", Type: "website", Category: "corporate",
		Features: common.JSONStringList{"responsive"},
	})
	require.NoError(t, err)

	t.Run("partial update leaves other fields unchanged", func(t *testing.T) {
		updated, err := s.UpdateProject(ctx, p.ID, &UpdateProjectRequest{Client: strPtr("Acme Co")})
		require.NoError(t, err)

		assert.Equal(t, "Original", updated.Title)
		assert.Equal(t, "Acme Co", updated.Client)
		assert.Equal(t, common.JSONStringList{"responsive"}, updated.Features)
	})

	t.Run("type change is validated", func(t *testing.T) {
		_, err := s.UpdateProject(ctx, p.ID, &UpdateProjectRequest{Type: strPtr("desktop")})
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"type": "must be website, app, seo, ecommerce, or webapp"}}, err)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := s.UpdateProject(ctx, 999999, &UpdateProjectRequest{Client: strPtr("nope")})
		assert.Equal(t, common.ErrRecordNotFound, err)
	})
}

func TestDeleteProject(t *testing.T) {
	s, cleanup := setupTestService(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	ctx := context.Background()

	p, err := s.CreateProject(ctx, &CreateProjectRequest{
		Title: "Short Lived", Type: "seo", Category: "marketing",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProject(ctx, p.ID))
	assert.Equal(t, common.ErrRecordNotFound, s.DeleteProject(ctx, p.ID))
}

func TestGetTypeOptions(t *testing.T) {
	s, _ := setupTestService(t)

	options := s.GetTypeOptions()

	require.Len(t, options, 6)
	assert.Equal(t, "all", options[0].ID)

	ids := make([]string, 0, len(options))
	for _, o := range options {
		ids = append(ids, o.ID)
	}
	assert.Contains(t, ids, "website")
	assert.Contains(t, ids, "webapp")
}
