package postservice

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/arvanweb/sitecms/internal/common"
)

// normalizeTagNames trims each name, drops blanks and deduplicates by derived
// slug, keeping the first spelling seen for each slug.
func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	normalized := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		slug := common.Slugify(name)
		if slug == "" {
			continue
		}

		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		normalized = append(normalized, name)
	}

	return normalized
}

// syncTags replaces the post's tag associations with the given target set.
// Tags are resolved by slug and created when missing. An empty target set
// clears every association; this is deliberate, not a no-op. The post must
// already be persisted.
func (m *PostModel) syncTags(tx *sql.Tx, ctx context.Context, postID int, names []string) error {
	if postID <= 0 {
		return ErrInvalidState
	}

	normalized := normalizeTagNames(names)

	tagIDs := make([]int, 0, len(normalized))
	for _, name := range normalized {
		id, err := m.resolveTag(tx, ctx, name)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, id)
	}

	_, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID)
	if err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID)
		if err != nil {
			return err
		}
	}

	return nil
}

// resolveTag looks a tag up by its derived slug and creates it when absent.
// The display name is preserved as given; identity is the slug.
func (m *PostModel) resolveTag(tx *sql.Tx, ctx context.Context, name string) (int, error) {
	slug := common.Slugify(name)

	var id int
	err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE slug = $1`, slug).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO tags (name, slug)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET name = tags.name
		RETURNING id`, name, slug).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}
