package teamservice

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/arvanweb/sitecms/internal/common"
)

func NewTeamService(db *sql.DB, c *common.Cache, logger *slog.Logger) *TeamService {
	return &TeamService{
		m:      newTeamMemberModel(db),
		c:      c,
		logger: logger,
	}
}

// GetActiveMembers returns active members in display order, cached until the
// next write.
func (s *TeamService) GetActiveMembers(ctx context.Context) ([]TeamMember, error) {
	if cached, ok := s.c.Get(common.CacheKeyTeamMembers(true)); ok {
		return cached.([]TeamMember), nil
	}

	members, err := s.m.list(ctx, true)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyTeamMembers(true), members)
	return members, nil
}

// GetAllMembers returns every member, active or not, in display order.
func (s *TeamService) GetAllMembers(ctx context.Context) ([]TeamMember, error) {
	return s.m.list(ctx, false)
}

func (s *TeamService) GetMember(ctx context.Context, id int) (*TeamMember, error) {
	return s.m.get(ctx, id)
}

type CreateMemberRequest struct {
	Name        string                `json:"name"`
	Slug        string                `json:"slug"`
	Role        string                `json:"role"`
	Bio         string                `json:"bio"`
	Image       string                `json:"image"`
	Email       string                `json:"email"`
	Phone       string                `json:"phone"`
	SocialLinks common.JSONStringMap  `json:"social_links"`
	Skills      common.JSONStringList `json:"skills"`
	Order       int                   `json:"order"`
	IsActive    *bool                 `json:"is_active"`
}

func (s *TeamService) CreateMember(ctx context.Context, req *CreateMemberRequest) (*TeamMember, error) {
	v := common.NewValidator()
	validateName(v, req.Name)
	validateRole(v, req.Role)
	if req.Email != "" {
		validateEmail(v, req.Email)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	m := &TeamMember{
		Name:        req.Name,
		Slug:        req.Slug,
		Role:        req.Role,
		Bio:         req.Bio,
		Image:       req.Image,
		Email:       req.Email,
		Phone:       req.Phone,
		SocialLinks: req.SocialLinks,
		Skills:      req.Skills,
		Order:       req.Order,
		IsActive:    true,
	}

	if m.Slug == "" {
		m.Slug = common.Slugify(m.Name)
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := s.m.insert(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("team member created", slog.Int("id", m.ID), slog.String("slug", m.Slug))
	s.c.Flush()

	return m, nil
}

type UpdateMemberRequest struct {
	Name        *string                `json:"name"`
	Slug        *string                `json:"slug"`
	Role        *string                `json:"role"`
	Bio         *string                `json:"bio"`
	Image       *string                `json:"image"`
	Email       *string                `json:"email"`
	Phone       *string                `json:"phone"`
	SocialLinks *common.JSONStringMap  `json:"social_links"`
	Skills      *common.JSONStringList `json:"skills"`
	Order       *int                   `json:"order"`
	IsActive    *bool                  `json:"is_active"`
}

func (s *TeamService) UpdateMember(ctx context.Context, id int, req *UpdateMemberRequest) (*TeamMember, error) {
	m, err := s.m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()
	if req.Name != nil {
		validateName(v, *req.Name)
	}
	if req.Role != nil {
		validateRole(v, *req.Role)
	}
	if req.Email != nil && *req.Email != "" {
		validateEmail(v, *req.Email)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Slug != nil {
		m.Slug = *req.Slug
	}
	if req.Role != nil {
		m.Role = *req.Role
	}
	if req.Bio != nil {
		m.Bio = *req.Bio
	}
	if req.Image != nil {
		m.Image = *req.Image
	}
	if req.Email != nil {
		m.Email = *req.Email
	}
	if req.Phone != nil {
		m.Phone = *req.Phone
	}
	if req.SocialLinks != nil {
		m.SocialLinks = *req.SocialLinks
	}
	if req.Skills != nil {
		m.Skills = *req.Skills
	}
	if req.Order != nil {
		m.Order = *req.Order
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := s.m.update(ctx, m); err != nil {
		return nil, err
	}

	s.c.Flush()
	return m, nil
}

func (s *TeamService) DeleteMember(ctx context.Context, id int) error {
	if err := s.m.delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("team member deleted", slog.Int("id", id))
	s.c.Flush()

	return nil
}
