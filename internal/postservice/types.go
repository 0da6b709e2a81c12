package postservice

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/arvanweb/sitecms/internal/common"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
)

type Post struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Excerpt       string        `json:"excerpt"`
	Content       string        `json:"content"`
	ContentBlocks ContentBlocks `json:"content_blocks"`
	Category      string        `json:"category"`
	CategoryID    *int          `json:"category_id"`
	Author        string        `json:"author"`
	AuthorAvatar  string        `json:"author_avatar"`
	Thumbnail     string        `json:"thumbnail"`

	Status        PostStatus `json:"status"`
	IsPublished   bool       `json:"is_published"`
	IsFeatured    bool       `json:"is_featured"`
	AllowComments bool       `json:"allow_comments"`
	PublishedAt   *time.Time `json:"published_at"`
	ScheduledAt   *time.Time `json:"scheduled_at"`

	MetaTitle            string `json:"meta_title"`
	MetaDescription      string `json:"meta_description"`
	MetaKeywords         string `json:"meta_keywords"`
	CanonicalURL         string `json:"canonical_url"`
	OgTitle              string `json:"og_title"`
	OgDescription        string `json:"og_description"`
	OgImage              string `json:"og_image"`
	FeaturedImageAlt     string `json:"featured_image_alt"`
	FeaturedImageCaption string `json:"featured_image_caption"`

	Views     int `json:"views"`
	Likes     int `json:"likes"`
	WordCount int `json:"word_count"`
	ReadTime  int `json:"read_time"`

	Tags []Tag `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ContentBlock is one structured fragment of a post body: a callout carrying
// a color variant, an optional heading, the extracted text and the raw markup
// it was extracted from.
type ContentBlock struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	HTML    string `json:"html"`
}

// ContentBlocks is stored as a jsonb column.
type ContentBlocks []ContentBlock

func (b ContentBlocks) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

func (b *ContentBlocks) Scan(src any) error {
	if src == nil {
		*b = nil
		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return errors.New("unsupported type for ContentBlocks")
	}

	return json.Unmarshal(raw, b)
}

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int    `json:"post_count,omitempty"`
}

type Image struct {
	ID         int       `json:"id"`
	URL        string    `json:"url"`
	AltText    string    `json:"alt_text"`
	Title      string    `json:"title"`
	Caption    string    `json:"caption"`
	Width      *int      `json:"width"`
	Height     *int      `json:"height"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	BlogPostID *int      `json:"blog_post_id"`
	Order      int       `json:"order"`
	CreatedAt  time.Time `json:"created_at"`
}

// Metadata describes one page of an administrative listing.
type Metadata struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// PostFilters narrows the public listing.
type PostFilters struct {
	Category string
	Tag      string
	Search   string
	Featured bool
}

// TagList accepts either a JSON array of names or a single comma-joined
// string, the two shapes the admin frontend sends.
type TagList []string

func (l *TagList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*l = names
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return errors.New("tags must be an array of strings or a comma-separated string")
	}

	*l = strings.Split(joined, ",")
	return nil
}

// BlockPayload accepts the structured content_blocks array or, for legacy
// writers, a raw HTML string to be run through the block extractor.
type BlockPayload struct {
	Blocks   ContentBlocks
	Raw      string
	FromHTML bool
}

func (p *BlockPayload) UnmarshalJSON(data []byte) error {
	var blocks ContentBlocks
	if err := json.Unmarshal(data, &blocks); err == nil {
		p.Blocks = blocks
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("content_blocks must be an array of blocks or an HTML string")
	}

	p.Raw = raw
	p.FromHTML = true
	return nil
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	m      *PostModel
	c      *common.Cache
	mb     common.MessageProducer
	logger *slog.Logger

	defaultAuthor  string
	wordsPerMinute int
}
