package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arvanweb/sitecms/internal/common"
)

var (
	ErrDuplicateSlug      = errors.New("duplicate slug")
	ErrCategoryForeignKey = errors.New("category_id does not exist")
	ErrCategoryInUse      = errors.New("category is referenced by posts")
	ErrInvalidState       = errors.New("post has no durable identity")
)

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

const postColumns = `id, title, slug, excerpt, content, content_blocks, category, category_id,
	author, author_avatar, thumbnail, status, is_published, is_featured, allow_comments,
	published_at, scheduled_at, meta_title, meta_description, meta_keywords, canonical_url,
	og_title, og_description, og_image, featured_image_alt, featured_image_caption,
	views, likes, word_count, read_time, created_at, updated_at, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var p Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.ContentBlocks, &p.Category, &p.CategoryID,
		&p.Author, &p.AuthorAvatar, &p.Thumbnail, &p.Status, &p.IsPublished, &p.IsFeatured, &p.AllowComments,
		&p.PublishedAt, &p.ScheduledAt, &p.MetaTitle, &p.MetaDescription, &p.MetaKeywords, &p.CanonicalURL,
		&p.OgTitle, &p.OgDescription, &p.OgImage, &p.FeaturedImageAlt, &p.FeaturedImageCaption,
		&p.Views, &p.Likes, &p.WordCount, &p.ReadTime, &p.CreatedAt, &p.UpdatedAt, &p.Version,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *PostModel) insert(tx *sql.Tx, ctx context.Context, p *Post) error {
	query := `
		INSERT INTO posts (title, slug, excerpt, content, content_blocks, category, category_id,
			author, author_avatar, thumbnail, status, is_published, is_featured, allow_comments,
			published_at, scheduled_at, meta_title, meta_description, meta_keywords, canonical_url,
			og_title, og_description, og_image, featured_image_alt, featured_image_caption,
			word_count, read_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING id, views, likes, created_at, updated_at, version`

	args := []any{
		p.Title, p.Slug, p.Excerpt, p.Content, p.ContentBlocks, p.Category, p.CategoryID,
		p.Author, p.AuthorAvatar, p.Thumbnail, p.Status, p.IsPublished, p.IsFeatured, p.AllowComments,
		p.PublishedAt, p.ScheduledAt, p.MetaTitle, p.MetaDescription, p.MetaKeywords, p.CanonicalURL,
		p.OgTitle, p.OgDescription, p.OgImage, p.FeaturedImageAlt, p.FeaturedImageCaption,
		p.WordCount, p.ReadTime,
	}

	err := tx.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Views, &p.Likes, &p.CreatedAt, &p.UpdatedAt, &p.Version)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "posts_slug_key"):
			return ErrDuplicateSlug
		case common.ForeignKeyViolation(err, "posts_category_id_fkey"):
			return ErrCategoryForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) getByID(ctx context.Context, id int) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	p.Tags, err = m.getTagsForPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// getBySlug resolves a published post only; draft and scheduled posts are not
// reachable through their slug.
func (m *PostModel) getBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1 AND is_published = true AND status = 'published'`

	p, err := scanPost(m.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	p.Tags, err = m.getTagsForPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// update rewrites the whole row guarded by the version column. A vanished row
// and a stale version are indistinguishable here; the caller fetched the post
// first, so no rows means a concurrent edit.
func (m *PostModel) update(tx *sql.Tx, ctx context.Context, p *Post) error {
	query := `
		UPDATE posts
		SET title = $1, slug = $2, excerpt = $3, content = $4, content_blocks = $5, category = $6,
			category_id = $7, author = $8, author_avatar = $9, thumbnail = $10, status = $11,
			is_published = $12, is_featured = $13, allow_comments = $14, published_at = $15,
			scheduled_at = $16, meta_title = $17, meta_description = $18, meta_keywords = $19,
			canonical_url = $20, og_title = $21, og_description = $22, og_image = $23,
			featured_image_alt = $24, featured_image_caption = $25, word_count = $26, read_time = $27,
			updated_at = now(), version = version + 1
		WHERE id = $28 AND version = $29
		RETURNING updated_at, version`

	args := []any{
		p.Title, p.Slug, p.Excerpt, p.Content, p.ContentBlocks, p.Category,
		p.CategoryID, p.Author, p.AuthorAvatar, p.Thumbnail, p.Status,
		p.IsPublished, p.IsFeatured, p.AllowComments, p.PublishedAt,
		p.ScheduledAt, p.MetaTitle, p.MetaDescription, p.MetaKeywords,
		p.CanonicalURL, p.OgTitle, p.OgDescription, p.OgImage,
		p.FeaturedImageAlt, p.FeaturedImageCaption, p.WordCount, p.ReadTime,
		p.ID, p.Version,
	}

	err := tx.QueryRowContext(ctx, query, args...).Scan(&p.UpdatedAt, &p.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrEditConflict
		case common.UniqueViolation(err, "posts_slug_key"):
			return ErrDuplicateSlug
		case common.ForeignKeyViolation(err, "posts_category_id_fkey"):
			return ErrCategoryForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM posts
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *PostModel) listPublished(ctx context.Context, f PostFilters, limit, offset int) ([]Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE is_published = true AND status = 'published'`
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	if f.Tag != "" {
		args = append(args, f.Tag)
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON pt.tag_id = t.id WHERE pt.post_id = posts.id AND t.slug = $%d)", len(args))
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR excerpt ILIKE $%d)", len(args), len(args))
	}

	if f.Featured {
		query += " AND is_featured = true"
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY published_at DESC NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}

	return posts, rows.Err()
}

// adminList pages through all posts regardless of publication state. The
// total row count rides along on every row via a window function.
func (m *PostModel) adminList(ctx context.Context, category, search string, limit, offset int) ([]Post, int, error) {
	query := `SELECT count(*) OVER(), ` + postColumns + ` FROM posts WHERE 1=1`
	var args []any

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR excerpt ILIKE $%d)", len(args), len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var total int
	var posts []Post
	for rows.Next() {
		var p Post
		err := rows.Scan(
			&total,
			&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.ContentBlocks, &p.Category, &p.CategoryID,
			&p.Author, &p.AuthorAvatar, &p.Thumbnail, &p.Status, &p.IsPublished, &p.IsFeatured, &p.AllowComments,
			&p.PublishedAt, &p.ScheduledAt, &p.MetaTitle, &p.MetaDescription, &p.MetaKeywords, &p.CanonicalURL,
			&p.OgTitle, &p.OgDescription, &p.OgImage, &p.FeaturedImageAlt, &p.FeaturedImageCaption,
			&p.Views, &p.Likes, &p.WordCount, &p.ReadTime, &p.CreatedAt, &p.UpdatedAt, &p.Version,
		)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}

	return posts, total, rows.Err()
}

func (m *PostModel) incrementViews(ctx context.Context, id int) (int, error) {
	query := `
		UPDATE posts
		SET views = views + 1
		WHERE id = $1
		RETURNING views`

	var views int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&views)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, common.ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return views, nil
}

func (m *PostModel) incrementLikes(ctx context.Context, id int) (int, error) {
	query := `
		UPDATE posts
		SET likes = likes + 1
		WHERE id = $1
		RETURNING likes`

	var likes int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&likes)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, common.ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return likes, nil
}

// related returns published posts sharing the given post's category or at
// least one tag, ranked by shared-tag count and recency.
func (m *PostModel) related(ctx context.Context, p *Post, limit int) ([]Post, error) {
	query := `
		SELECT ` + postColumns + `, count(pt.tag_id) AS shared_tags
		FROM posts
		LEFT JOIN post_tags pt ON pt.post_id = posts.id
			AND pt.tag_id IN (SELECT tag_id FROM post_tags WHERE post_id = $1)
		WHERE posts.id <> $1 AND posts.is_published = true AND posts.status = 'published'
			AND ((posts.category <> '' AND posts.category = $2) OR pt.tag_id IS NOT NULL)
		GROUP BY posts.id
		ORDER BY shared_tags DESC, posts.published_at DESC NULLS LAST
		LIMIT $3`

	rows, err := m.db.QueryContext(ctx, query, p.ID, p.Category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var rp Post
		var sharedTags int
		err := rows.Scan(
			&rp.ID, &rp.Title, &rp.Slug, &rp.Excerpt, &rp.Content, &rp.ContentBlocks, &rp.Category, &rp.CategoryID,
			&rp.Author, &rp.AuthorAvatar, &rp.Thumbnail, &rp.Status, &rp.IsPublished, &rp.IsFeatured, &rp.AllowComments,
			&rp.PublishedAt, &rp.ScheduledAt, &rp.MetaTitle, &rp.MetaDescription, &rp.MetaKeywords, &rp.CanonicalURL,
			&rp.OgTitle, &rp.OgDescription, &rp.OgImage, &rp.FeaturedImageAlt, &rp.FeaturedImageCaption,
			&rp.Views, &rp.Likes, &rp.WordCount, &rp.ReadTime, &rp.CreatedAt, &rp.UpdatedAt, &rp.Version,
			&sharedTags,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, rp)
	}

	return posts, rows.Err()
}

func (m *PostModel) getTagsForPost(ctx context.Context, postID int) ([]Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}
