package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arvanweb/sitecms/internal/common"
)

func (m *PostModel) insertCategory(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (name, slug, description, color, "order", is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := m.db.QueryRowContext(ctx, query, c.Name, c.Slug, c.Description, c.Color, c.Order, c.IsActive).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "categories_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) getCategoryByID(ctx context.Context, id int) (*Category, error) {
	query := `
		SELECT id, name, slug, description, color, "order", is_active, created_at, updated_at
		FROM categories
		WHERE id = $1`

	var c Category
	err := m.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.Order, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *PostModel) getActiveCategories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, slug, description, color, "order", is_active, created_at, updated_at
		FROM categories
		WHERE is_active = true
		ORDER BY "order", name`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.Order, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (m *PostModel) updateCategory(ctx context.Context, c *Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2, description = $3, color = $4, "order" = $5, is_active = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at`

	err := m.db.QueryRowContext(ctx, query, c.Name, c.Slug, c.Description, c.Color, c.Order, c.IsActive, c.ID).
		Scan(&c.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrRecordNotFound
		case common.UniqueViolation(err, "categories_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}

	return nil
}

// deleteCategory refuses to delete a category still referenced by posts; the
// foreign key is declared RESTRICT.
func (m *PostModel) deleteCategory(ctx context.Context, id int) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "posts_category_id_fkey"):
			return ErrCategoryInUse
		default:
			return err
		}
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

func (m *PostModel) getTags(ctx context.Context) ([]Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug, count(pt.post_id)
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		GROUP BY t.id
		ORDER BY t.name`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.PostCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

// firstOrCreateTag is the non-transactional sibling of resolveTag, used by
// the standalone tag-create endpoint.
func (m *PostModel) firstOrCreateTag(ctx context.Context, name string) (*Tag, error) {
	slug := common.Slugify(name)

	var t Tag
	err := m.db.QueryRowContext(ctx, `
		INSERT INTO tags (name, slug)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET name = tags.name
		RETURNING id, name, slug`, name, slug).Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
