package projectservice

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"

	"github.com/arvanweb/sitecms/internal/common"
)

const defaultColor = "from-primary-500 to-secondary-500"

func NewProjectService(db *sql.DB, c *common.Cache, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		m:      newWebProjectModel(db),
		c:      c,
		logger: logger,
	}
}

// GetProjects lists portfolio projects. Active projects only unless the
// filters say otherwise.
func (s *ProjectService) GetProjects(ctx context.Context, f ProjectFilters) ([]WebProject, error) {
	key := common.CacheKeyProjects(f.Type, f.FeaturedOnly, f.IncludeInactive)
	if cached, ok := s.c.Get(key); ok {
		return cached.([]WebProject), nil
	}

	projects, err := s.m.list(ctx, f)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, projects)
	return projects, nil
}

// GetProject resolves by slug first and falls back to a numeric id, so both
// pretty URLs and admin links work.
func (s *ProjectService) GetProject(ctx context.Context, idOrSlug string) (*WebProject, error) {
	project, err := s.m.getBySlug(ctx, idOrSlug)
	if err == nil {
		return project, nil
	}
	if err != common.ErrRecordNotFound {
		return nil, err
	}

	id, convErr := strconv.Atoi(idOrSlug)
	if convErr != nil {
		return nil, common.ErrRecordNotFound
	}

	return s.m.getByID(ctx, id)
}

// GetTypeOptions returns the fixed portfolio filter tabs.
func (s *ProjectService) GetTypeOptions() []TypeOption {
	return []TypeOption{
		{ID: "all", Title: "همه", Icon: "Palette"},
		{ID: "website", Title: "وب‌سایت", Icon: "Globe"},
		{ID: "app", Title: "اپلیکیشن", Icon: "Smartphone"},
		{ID: "ecommerce", Title: "فروشگاه", Icon: "ShoppingCart"},
		{ID: "seo", Title: "سئو", Icon: "Search"},
		{ID: "webapp", Title: "وب اپ", Icon: "Code"},
	}
}

type CreateProjectRequest struct {
	Title        string                `json:"title"`
	Slug         string                `json:"slug"`
	Type         string                `json:"type"`
	Category     string                `json:"category"`
	Icon         string                `json:"icon"`
	Color        string                `json:"color"`
	Image        string                `json:"image"`
	MockupImage  string                `json:"mockup_image"`
	Description  string                `json:"description"`
	Client       string                `json:"client"`
	Industry     string                `json:"industry"`
	Year         string                `json:"year"`
	Technologies common.JSONStringList `json:"technologies"`
	Features     common.JSONStringList `json:"features"`
	Results      common.JSONStringMap  `json:"results"`
	Link         string                `json:"link"`
	Testimonial  string                `json:"testimonial"`
	Challenge    string                `json:"challenge"`
	Solution     string                `json:"solution"`
	Gallery      common.JSONStringList `json:"gallery"`
	Order        int                   `json:"order"`
	IsFeatured   *bool                 `json:"is_featured"`
	IsActive     *bool                 `json:"is_active"`
}

func (s *ProjectService) CreateProject(ctx context.Context, req *CreateProjectRequest) (*WebProject, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateType(v, req.Type)
	validateCategory(v, req.Category)
	validateYear(v, req.Year)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	p := &WebProject{
		Title:        req.Title,
		Slug:         req.Slug,
		Type:         ProjectType(req.Type),
		Category:     req.Category,
		Icon:         req.Icon,
		Color:        req.Color,
		Image:        req.Image,
		MockupImage:  req.MockupImage,
		Description:  req.Description,
		Client:       req.Client,
		Industry:     req.Industry,
		Year:         req.Year,
		Technologies: req.Technologies,
		Features:     req.Features,
		Results:      req.Results,
		Link:         req.Link,
		Testimonial:  req.Testimonial,
		Challenge:    req.Challenge,
		Solution:     req.Solution,
		Gallery:      req.Gallery,
		Order:        req.Order,
		IsActive:     true,
	}

	if p.Slug == "" {
		p.Slug = common.Slugify(p.Title)
	}
	if p.Color == "" {
		p.Color = defaultColor
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.m.insert(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("project created", slog.Int("id", p.ID), slog.String("slug", p.Slug))
	s.c.Flush()

	return p, nil
}

type UpdateProjectRequest struct {
	Title        *string                `json:"title"`
	Slug         *string                `json:"slug"`
	Type         *string                `json:"type"`
	Category     *string                `json:"category"`
	Icon         *string                `json:"icon"`
	Color        *string                `json:"color"`
	Image        *string                `json:"image"`
	MockupImage  *string                `json:"mockup_image"`
	Description  *string                `json:"description"`
	Client       *string                `json:"client"`
	Industry     *string                `json:"industry"`
	Year         *string                `json:"year"`
	Technologies *common.JSONStringList `json:"technologies"`
	Features     *common.JSONStringList `json:"features"`
	Results      *common.JSONStringMap  `json:"results"`
	Link         *string                `json:"link"`
	Testimonial  *string                `json:"testimonial"`
	Challenge    *string                `json:"challenge"`
	Solution     *string                `json:"solution"`
	Gallery      *common.JSONStringList `json:"gallery"`
	Order        *int                   `json:"order"`
	IsFeatured   *bool                  `json:"is_featured"`
	IsActive     *bool                  `json:"is_active"`
}

func (s *ProjectService) UpdateProject(ctx context.Context, id int, req *UpdateProjectRequest) (*WebProject, error) {
	p, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Type != nil {
		validateType(v, *req.Type)
	}
	if req.Category != nil {
		validateCategory(v, *req.Category)
	}
	if req.Year != nil {
		validateYear(v, *req.Year)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	applyString(&p.Title, req.Title)
	applyString(&p.Slug, req.Slug)
	applyString(&p.Category, req.Category)
	applyString(&p.Icon, req.Icon)
	applyString(&p.Color, req.Color)
	applyString(&p.Image, req.Image)
	applyString(&p.MockupImage, req.MockupImage)
	applyString(&p.Description, req.Description)
	applyString(&p.Client, req.Client)
	applyString(&p.Industry, req.Industry)
	applyString(&p.Year, req.Year)
	applyString(&p.Link, req.Link)
	applyString(&p.Testimonial, req.Testimonial)
	applyString(&p.Challenge, req.Challenge)
	applyString(&p.Solution, req.Solution)

	if req.Type != nil {
		p.Type = ProjectType(*req.Type)
	}
	if req.Technologies != nil {
		p.Technologies = *req.Technologies
	}
	if req.Features != nil {
		p.Features = *req.Features
	}
	if req.Results != nil {
		p.Results = *req.Results
	}
	if req.Gallery != nil {
		p.Gallery = *req.Gallery
	}
	if req.Order != nil {
		p.Order = *req.Order
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.m.update(ctx, p); err != nil {
		return nil, err
	}

	s.c.Flush()
	return p, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id int) error {
	if err := s.m.delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", slog.Int("id", id))
	s.c.Flush()

	return nil
}
