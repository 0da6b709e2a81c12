package postservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arvanweb/sitecms/internal/common"
)

// GetCategories returns active categories in display order, cached until the
// next write.
func (s *PostService) GetCategories(ctx context.Context) ([]Category, error) {
	if cached, ok := s.c.Get(common.CacheKeyCategories()); ok {
		return cached.([]Category), nil
	}

	categories, err := s.m.getActiveCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyCategories(), categories)
	return categories, nil
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"is_active"`
}

func (s *PostService) CreateCategory(ctx context.Context, req *CategoryRequest) (*Category, error) {
	v := common.NewValidator()
	validateName(v, req.Name)
	validateColor(v, req.Color)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	c := &Category{
		Name:        req.Name,
		Slug:        common.Slugify(req.Name),
		Description: req.Description,
		Color:       req.Color,
		Order:       req.Order,
		IsActive:    true,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.m.insertCategory(ctx, c); err != nil {
		return nil, err
	}

	s.c.Flush()
	return c, nil
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateCategory renames rederive the slug from the new name, matching the
// create path.
func (s *PostService) UpdateCategory(ctx context.Context, id int, req *UpdateCategoryRequest) (*Category, error) {
	c, err := s.m.getCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()
	if req.Name != nil {
		validateName(v, *req.Name)
	}
	if req.Color != nil {
		validateColor(v, *req.Color)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if req.Name != nil {
		c.Name = *req.Name
		c.Slug = common.Slugify(*req.Name)
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Color != nil {
		c.Color = *req.Color
	}
	if req.Order != nil {
		c.Order = *req.Order
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.m.updateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.c.Flush()
	return c, nil
}

func (s *PostService) DeleteCategory(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.deleteCategory(ctx, id); err != nil {
		return err
	}

	s.c.Flush()
	return nil
}

// GetTags returns every tag with its post count.
func (s *PostService) GetTags(ctx context.Context) ([]Tag, error) {
	if cached, ok := s.c.Get(common.CacheKeyTags()); ok {
		return cached.([]Tag), nil
	}

	tags, err := s.m.getTags(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyTags(), tags)
	return tags, nil
}

// CreateTag reuses an existing tag with the same derived slug rather than
// duplicating it.
func (s *PostService) CreateTag(ctx context.Context, name string) (*Tag, error) {
	v := common.NewValidator()
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	tag, err := s.m.firstOrCreateTag(ctx, name)
	if err != nil {
		return nil, err
	}

	s.c.Flush()
	return tag, nil
}

type ImageRequest struct {
	URL        string `json:"url"`
	AltText    string `json:"alt_text"`
	Title      string `json:"title"`
	Caption    string `json:"caption"`
	Width      *int   `json:"width"`
	Height     *int   `json:"height"`
	FileSize   int64  `json:"file_size"`
	MimeType   string `json:"mime_type"`
	BlogPostID *int   `json:"blog_post_id"`
	Order      int    `json:"order"`
}

func (s *PostService) CreateImage(ctx context.Context, req *ImageRequest) (*Image, error) {
	v := common.NewValidator()
	v.Check(req.URL != "", "url", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	img := &Image{
		URL:        req.URL,
		AltText:    req.AltText,
		Title:      req.Title,
		Caption:    req.Caption,
		Width:      req.Width,
		Height:     req.Height,
		FileSize:   req.FileSize,
		MimeType:   req.MimeType,
		BlogPostID: req.BlogPostID,
		Order:      req.Order,
	}

	if err := s.m.insertImage(ctx, img); err != nil {
		return nil, err
	}

	return img, nil
}

type UpdateImageRequest struct {
	AltText *string `json:"alt_text"`
	Title   *string `json:"title"`
	Caption *string `json:"caption"`
	Order   *int    `json:"order"`
}

func (s *PostService) UpdateImage(ctx context.Context, id int, req *UpdateImageRequest) (*Image, error) {
	img, err := s.m.getImageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AltText != nil {
		img.AltText = *req.AltText
	}
	if req.Title != nil {
		img.Title = *req.Title
	}
	if req.Caption != nil {
		img.Caption = *req.Caption
	}
	if req.Order != nil {
		img.Order = *req.Order
	}

	if err := s.m.updateImage(ctx, img); err != nil {
		return nil, err
	}

	return img, nil
}

// DeleteImage removes the metadata row and reports the stored URL so the
// caller can clean up the underlying object.
func (s *PostService) DeleteImage(ctx context.Context, id int) (string, error) {
	img, err := s.m.getImageByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.m.deleteImage(ctx, id); err != nil {
		return "", err
	}

	return img.URL, nil
}

func (s *PostService) GetPostImages(ctx context.Context, postID int) ([]Image, error) {
	v := common.NewValidator()
	validateInt(v, postID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getImagesByPost(ctx, postID)
}

// SeoData is the subset of a post used to render meta tags.
type SeoData struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	CanonicalURL    string `json:"canonical_url"`
	OgTitle         string `json:"og_title"`
	OgDescription   string `json:"og_description"`
	OgImage         string `json:"og_image"`
}

// GetSeoData resolves by slug regardless of publication state so drafts can
// be previewed.
func (s *PostService) GetSeoData(ctx context.Context, slug string) (*SeoData, error) {
	query := `
		SELECT meta_title, meta_description, meta_keywords, canonical_url, og_title, og_description, og_image
		FROM posts
		WHERE slug = $1`

	var d SeoData
	err := s.m.db.QueryRowContext(ctx, query, slug).Scan(
		&d.MetaTitle, &d.MetaDescription, &d.MetaKeywords, &d.CanonicalURL,
		&d.OgTitle, &d.OgDescription, &d.OgImage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrRecordNotFound
		}
		return nil, err
	}

	return &d, nil
}
