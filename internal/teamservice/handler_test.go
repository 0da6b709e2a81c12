package teamservice

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvanweb/sitecms/internal/common"
)

func setupTestService(t *testing.T) (*TeamService, func() error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM team_members")
		cache.Flush()
		return err
	}

	return NewTeamService(db, cache, logger), cleanup
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateMember(t *testing.T) {
	s, cleanup := setupTestService(t)

	testCases := []struct {
		name        string
		req         *CreateMemberRequest
		expectedErr error
		check       func(t *testing.T, m *TeamMember)
	}{
		{
			name: "valid member with derived slug",
			req: &CreateMemberRequest{
				Name: "Sara Ahmadi",
				Role: "Frontend Developer",
				Skills: common.JSONStringList{"react", "tailwind"},
				SocialLinks: common.JSONStringMap{"github": "https://github.com/sara"},
			},
			check: func(t *testing.T, m *TeamMember) {
				assert.Equal(t, "sara-ahmadi", m.Slug)
				assert.True(t, m.IsActive)
				assert.Equal(t, common.JSONStringList{"react", "tailwind"}, m.Skills)
				assert.Equal(t, common.JSONStringMap{"github": "https://github.com/sara"}, m.SocialLinks)
			},
		},
		{
			name: "explicit slug wins",
			req: &CreateMemberRequest{
				Name: "Reza Karimi",
				Role: "Backend Developer",
				Slug: "reza",
			},
			check: func(t *testing.T, m *TeamMember) {
				assert.Equal(t, "reza", m.Slug)
			},
		},
		{
			name:        "missing name",
			req:         &CreateMemberRequest{Role: "Designer"},
			expectedErr: common.ValidationError{Errors: map[string]string{"name": "must be provided"}},
		},
		{
			name:        "missing role",
			req:         &CreateMemberRequest{Name: "No Role"},
			expectedErr: common.ValidationError{Errors: map[string]string{"role": "must be provided"}},
		},
		{
			name: "invalid email",
			req: &CreateMemberRequest{
				Name:  "Bad Email",
				Role:  "Designer",
				Email: "not-an-email",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"email": "must be a valid email address"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := s.CreateMember(context.Background(), tc.req)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil && tc.check != nil {
				tc.check(t, m)
			}

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}

	t.Run("duplicate slug", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.CreateMember(ctx, &CreateMemberRequest{Name: "Same Person", Role: "Dev"})
		require.NoError(t, err)

		_, err = s.CreateMember(ctx, &CreateMemberRequest{Name: "Same Person", Role: "Dev"})
		assert.Equal(t, ErrDuplicateSlug, err)

		t.Cleanup(func() {
			assert.NoError(t, cleanup())
		})
	})
}

func TestMemberListing(t *testing.T) {
	s, cleanup := setupTestService(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	ctx := context.Background()

	_, err := s.CreateMember(ctx, &CreateMemberRequest{Name: "Second", Role: "Dev", Order: 2})
	require.NoError(t, err)

	_, err = s.CreateMember(ctx, &CreateMemberRequest{Name: "First", Role: "Dev", Order: 1})
	require.NoError(t, err)

	_, err = s.CreateMember(ctx, &CreateMemberRequest{Name: "Hidden", Role: "Dev", Order: 0, IsActive: boolPtr(false)})
	require.NoError(t, err)

	t.Run("public listing is active members in display order", func(t *testing.T) {
		members, err := s.GetActiveMembers(ctx)
		require.NoError(t, err)

		require.Len(t, members, 2)
		assert.Equal(t, "First", members[0].Name)
		assert.Equal(t, "Second", members[1].Name)
	})

	t.Run("admin listing includes inactive members", func(t *testing.T) {
		members, err := s.GetAllMembers(ctx)
		require.NoError(t, err)

		require.Len(t, members, 3)
		assert.Equal(t, "Hidden", members[0].Name)
	})
}

func TestUpdateMember(t *testing.T) {
	s, cleanup := setupTestService(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	ctx := context.Background()

	m, err := s.CreateMember(ctx, &CreateMemberRequest{
		Name:   "Original",
		Role:   "Dev",
		Skills: common.JSONStringList{"go"},
	})
	require.NoError(t, err)

	t.Run("partial update leaves other fields unchanged", func(t *testing.T) {
		updated, err := s.UpdateMember(ctx, m.ID, &UpdateMemberRequest{Bio: strPtr("a short bio")})
		require.NoError(t, err)

		assert.Equal(t, "Original", updated.Name)
		assert.Equal(t, "a short bio", updated.Bio)
		assert.Equal(t, common.JSONStringList{"go"}, updated.Skills)
	})

	t.Run("deactivation drops the member from the public list", func(t *testing.T) {
		_, err := s.UpdateMember(ctx, m.ID, &UpdateMemberRequest{IsActive: boolPtr(false)})
		require.NoError(t, err)

		members, err := s.GetActiveMembers(ctx)
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := s.UpdateMember(ctx, 999999, &UpdateMemberRequest{Bio: strPtr("nope")})
		assert.Equal(t, common.ErrRecordNotFound, err)
	})
}

func TestDeleteMember(t *testing.T) {
	s, cleanup := setupTestService(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	ctx := context.Background()

	m, err := s.CreateMember(ctx, &CreateMemberRequest{Name: "Short Timer", Role: "Dev"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteMember(ctx, m.ID))

	_, err = s.GetMember(ctx, m.ID)
	assert.Equal(t, common.ErrRecordNotFound, err)

	assert.Equal(t, common.ErrRecordNotFound, s.DeleteMember(ctx, m.ID))
}
