package postservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/arvanweb/sitecms/internal/common"
)

const (
	DefaultWordsPerMinute = 200
	DefaultAuthor         = "Admin"
	RelatedPostLimit      = 3
)

func NewPostService(db *sql.DB, c *common.Cache, mb common.MessageProducer, logger *slog.Logger, defaultAuthor string, wordsPerMinute int) *PostService {
	if defaultAuthor == "" {
		defaultAuthor = DefaultAuthor
	}
	if wordsPerMinute < 1 {
		wordsPerMinute = DefaultWordsPerMinute
	}

	return &PostService{
		m:              newPostModel(db),
		c:              c,
		mb:             mb,
		logger:         logger,
		defaultAuthor:  defaultAuthor,
		wordsPerMinute: wordsPerMinute,
	}
}

// countWords counts whitespace-delimited tokens.
func countWords(content string) int {
	return len(strings.Fields(content))
}

// readTime is ceil(words / wpm) minutes.
func (s *PostService) readTime(wordCount int) int {
	return (wordCount + s.wordsPerMinute - 1) / s.wordsPerMinute
}

type postEvent struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
}

func (s *PostService) publishEvent(ctx context.Context, key common.BindingKey, post *Post) {
	msg, err := json.Marshal(postEvent{ID: post.ID, Slug: post.Slug})
	if err != nil {
		s.logger.Error("could not marshal post event", slog.String("error", err.Error()))
		return
	}

	if err := s.mb.Publish(ctx, msg, key, common.ContentExchange); err != nil {
		s.logger.Error("could not publish post event", slog.String("key", string(key)), slog.String("error", err.Error()))
	}
}

type CreatePostRequest struct {
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Excerpt       string        `json:"excerpt"`
	Content       string        `json:"content"`
	ContentBlocks *BlockPayload `json:"content_blocks"`
	Category      string        `json:"category"`
	CategoryID    *int          `json:"category_id"`
	Author        string        `json:"author"`
	AuthorAvatar  string        `json:"author_avatar"`
	Thumbnail     string        `json:"thumbnail"`

	Status        string     `json:"status"`
	IsPublished   *bool      `json:"is_published"`
	IsFeatured    *bool      `json:"is_featured"`
	AllowComments *bool      `json:"allow_comments"`
	PublishedAt   *time.Time `json:"published_at"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	ReadTime      *int       `json:"read_time"`

	MetaTitle            string `json:"meta_title"`
	MetaDescription      string `json:"meta_description"`
	MetaKeywords         string `json:"meta_keywords"`
	CanonicalURL         string `json:"canonical_url"`
	OgTitle              string `json:"og_title"`
	OgDescription        string `json:"og_description"`
	OgImage              string `json:"og_image"`
	FeaturedImageAlt     string `json:"featured_image_alt"`
	FeaturedImageCaption string `json:"featured_image_caption"`

	Tags TagList `json:"tags"`
}

// CreatePost runs the whole ingestion pipeline in one transaction: base
// record, derived metrics and tag sync either all land or none do.
func (s *PostService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	if req.Status != "" {
		validateStatus(v, req.Status)
	}
	if req.Slug != "" {
		validateSlug(v, req.Slug)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := &Post{
		Title:                req.Title,
		Slug:                 req.Slug,
		Excerpt:              req.Excerpt,
		Content:              req.Content,
		Category:             req.Category,
		CategoryID:           req.CategoryID,
		Author:               req.Author,
		AuthorAvatar:         req.AuthorAvatar,
		Thumbnail:            req.Thumbnail,
		Status:               StatusDraft,
		AllowComments:        true,
		PublishedAt:          req.PublishedAt,
		ScheduledAt:          req.ScheduledAt,
		MetaTitle:            req.MetaTitle,
		MetaDescription:      req.MetaDescription,
		MetaKeywords:         req.MetaKeywords,
		CanonicalURL:         req.CanonicalURL,
		OgTitle:              req.OgTitle,
		OgDescription:        req.OgDescription,
		OgImage:              req.OgImage,
		FeaturedImageAlt:     req.FeaturedImageAlt,
		FeaturedImageCaption: req.FeaturedImageCaption,
	}

	if post.Slug == "" {
		post.Slug = common.Slugify(post.Title)
	}
	if post.Author == "" {
		post.Author = s.defaultAuthor
	}
	if req.Status != "" {
		post.Status = PostStatus(req.Status)
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}
	if req.AllowComments != nil {
		post.AllowComments = *req.AllowComments
	}

	post.WordCount = countWords(post.Content)
	if req.ReadTime != nil {
		post.ReadTime = *req.ReadTime
	} else {
		post.ReadTime = s.readTime(post.WordCount)
	}

	if req.ContentBlocks != nil {
		if req.ContentBlocks.FromHTML {
			post.ContentBlocks = extractContentBlocks(req.ContentBlocks.Raw)
		} else {
			post.ContentBlocks = req.ContentBlocks.Blocks
		}
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if err := s.m.insert(tx, ctx, post); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if len(req.Tags) > 0 {
		if err := s.m.syncTags(tx, ctx, post.ID, req.Tags); err != nil {
			_ = tx.Rollback()
			s.logger.Error("tag sync failed", slog.Int("post_id", post.ID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	post.Tags, err = s.m.getTagsForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post created", slog.Int("id", post.ID), slog.String("slug", post.Slug))
	s.publishEvent(ctx, common.PostCreatedKey, post)
	s.c.Flush()

	return post, nil
}

type UpdatePostRequest struct {
	Title         *string       `json:"title"`
	Slug          *string       `json:"slug"`
	Excerpt       *string       `json:"excerpt"`
	Content       *string       `json:"content"`
	ContentBlocks *BlockPayload `json:"content_blocks"`
	Category      *string       `json:"category"`
	CategoryID    *int          `json:"category_id"`
	Author        *string       `json:"author"`
	AuthorAvatar  *string       `json:"author_avatar"`
	Thumbnail     *string       `json:"thumbnail"`

	Status        *string    `json:"status"`
	IsPublished   *bool      `json:"is_published"`
	IsFeatured    *bool      `json:"is_featured"`
	AllowComments *bool      `json:"allow_comments"`
	PublishedAt   *time.Time `json:"published_at"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	ReadTime      *int       `json:"read_time"`

	MetaTitle            *string `json:"meta_title"`
	MetaDescription      *string `json:"meta_description"`
	MetaKeywords         *string `json:"meta_keywords"`
	CanonicalURL         *string `json:"canonical_url"`
	OgTitle              *string `json:"og_title"`
	OgDescription        *string `json:"og_description"`
	OgImage              *string `json:"og_image"`
	FeaturedImageAlt     *string `json:"featured_image_alt"`
	FeaturedImageCaption *string `json:"featured_image_caption"`

	// Tags present at all (even empty) re-runs the sync; empty clears.
	Tags *TagList `json:"tags"`

	// Version, when supplied, must match the stored row or the update is
	// rejected with an edit conflict.
	Version *int `json:"version"`
}

// UpdatePost applies a partial field set. Fields not supplied are left
// unchanged. Supplying content recomputes word count and read time.
func (s *PostService) UpdatePost(ctx context.Context, id int, req *UpdatePostRequest) (*Post, error) {
	post, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Version != nil && *req.Version != post.Version {
		return nil, common.ErrEditConflict
	}

	v := common.NewValidator()
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Content != nil {
		validateContent(v, *req.Content)
	}
	if req.Status != nil {
		validateStatus(v, *req.Status)
	}
	if req.Slug != nil {
		validateSlug(v, *req.Slug)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	applyString(&post.Title, req.Title)
	applyString(&post.Slug, req.Slug)
	applyString(&post.Excerpt, req.Excerpt)
	applyString(&post.Category, req.Category)
	applyString(&post.Author, req.Author)
	applyString(&post.AuthorAvatar, req.AuthorAvatar)
	applyString(&post.Thumbnail, req.Thumbnail)
	applyString(&post.MetaTitle, req.MetaTitle)
	applyString(&post.MetaDescription, req.MetaDescription)
	applyString(&post.MetaKeywords, req.MetaKeywords)
	applyString(&post.CanonicalURL, req.CanonicalURL)
	applyString(&post.OgTitle, req.OgTitle)
	applyString(&post.OgDescription, req.OgDescription)
	applyString(&post.OgImage, req.OgImage)
	applyString(&post.FeaturedImageAlt, req.FeaturedImageAlt)
	applyString(&post.FeaturedImageCaption, req.FeaturedImageCaption)

	if req.CategoryID != nil {
		post.CategoryID = req.CategoryID
	}
	if req.Status != nil {
		post.Status = PostStatus(*req.Status)
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}
	if req.IsFeatured != nil {
		post.IsFeatured = *req.IsFeatured
	}
	if req.AllowComments != nil {
		post.AllowComments = *req.AllowComments
	}
	if req.PublishedAt != nil {
		post.PublishedAt = req.PublishedAt
	}
	if req.ScheduledAt != nil {
		post.ScheduledAt = req.ScheduledAt
	}

	if req.Content != nil {
		post.Content = *req.Content
		post.WordCount = countWords(post.Content)
		post.ReadTime = s.readTime(post.WordCount)
	}
	if req.ReadTime != nil {
		post.ReadTime = *req.ReadTime
	}

	if req.ContentBlocks != nil {
		if req.ContentBlocks.FromHTML {
			post.ContentBlocks = extractContentBlocks(req.ContentBlocks.Raw)
		} else {
			post.ContentBlocks = req.ContentBlocks.Blocks
		}
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if err := s.m.update(tx, ctx, post); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if req.Tags != nil {
		if err := s.m.syncTags(tx, ctx, post.ID, *req.Tags); err != nil {
			_ = tx.Rollback()
			s.logger.Error("tag sync failed", slog.Int("post_id", post.ID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	post.Tags, err = s.m.getTagsForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post updated", slog.Int("id", post.ID), slog.String("slug", post.Slug))
	s.publishEvent(ctx, common.PostUpdatedKey, post)
	s.c.Flush()

	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.delete(ctx, id); err != nil {
		return err
	}

	s.c.Flush()
	return nil
}

// GetPost resolves a detail lookup. Numeric input resolves by id regardless
// of publication state (admin preview); anything else resolves by slug and
// only for published posts. Every successful lookup counts one view.
func (s *PostService) GetPost(ctx context.Context, idOrSlug string) (*Post, error) {
	var post *Post
	var err error

	if id, numeric := parseID(idOrSlug); numeric {
		post, err = s.m.getByID(ctx, id)
	} else {
		post, err = s.m.getBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}

	post.Views, err = s.m.incrementViews(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func parseID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	id := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		id = id*10 + int(r-'0')
	}

	return id, true
}

func (s *PostService) GetPublishedPosts(ctx context.Context, f PostFilters, limit, offset int) ([]Post, error) {
	if limit < 1 {
		limit = 12
	}
	if offset < 0 {
		offset = 0
	}

	return s.m.listPublished(ctx, f, limit, offset)
}

// AdminListPosts pages through every post with no publication filter.
func (s *PostService) AdminListPosts(ctx context.Context, category, search string, page, perPage int) ([]Post, Metadata, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	posts, total, err := s.m.adminList(ctx, category, search, perPage, (page-1)*perPage)
	if err != nil {
		return nil, Metadata{}, err
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	meta := Metadata{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}

	return posts, meta, nil
}

func (s *PostService) GetRelatedPosts(ctx context.Context, id int) ([]Post, error) {
	post, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.m.related(ctx, post, RelatedPostLimit)
}

func (s *PostService) IncrementViews(ctx context.Context, id int) (int, error) {
	return s.m.incrementViews(ctx, id)
}

// LikePost bumps the aggregate like counter. There is no per-user like state,
// so the operation only ever increments.
func (s *PostService) LikePost(ctx context.Context, id int) (int, error) {
	return s.m.incrementLikes(ctx, id)
}
