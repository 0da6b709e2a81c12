package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arvanweb/sitecms/internal/common"
)

var ErrPostForeignKey = errors.New("blog_post_id does not exist")

func (m *PostModel) insertImage(ctx context.Context, img *Image) error {
	query := `
		INSERT INTO images (url, alt_text, title, caption, width, height, file_size, mime_type, blog_post_id, "order")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	args := []any{
		img.URL, img.AltText, img.Title, img.Caption, img.Width, img.Height,
		img.FileSize, img.MimeType, img.BlogPostID, img.Order,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "images_blog_post_id_fkey"):
			return ErrPostForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) getImageByID(ctx context.Context, id int) (*Image, error) {
	query := `
		SELECT id, url, alt_text, title, caption, width, height, file_size, mime_type, blog_post_id, "order", created_at
		FROM images
		WHERE id = $1`

	var img Image
	err := m.db.QueryRowContext(ctx, query, id).Scan(
		&img.ID, &img.URL, &img.AltText, &img.Title, &img.Caption, &img.Width, &img.Height,
		&img.FileSize, &img.MimeType, &img.BlogPostID, &img.Order, &img.CreatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &img, nil
}

func (m *PostModel) getImagesByPost(ctx context.Context, postID int) ([]Image, error) {
	query := `
		SELECT id, url, alt_text, title, caption, width, height, file_size, mime_type, blog_post_id, "order", created_at
		FROM images
		WHERE blog_post_id = $1
		ORDER BY "order", id`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		err := rows.Scan(
			&img.ID, &img.URL, &img.AltText, &img.Title, &img.Caption, &img.Width, &img.Height,
			&img.FileSize, &img.MimeType, &img.BlogPostID, &img.Order, &img.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

func (m *PostModel) updateImage(ctx context.Context, img *Image) error {
	query := `
		UPDATE images
		SET alt_text = $1, title = $2, caption = $3, "order" = $4
		WHERE id = $5`

	res, err := m.db.ExecContext(ctx, query, img.AltText, img.Title, img.Caption, img.Order, img.ID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

func (m *PostModel) deleteImage(ctx context.Context, id int) error {
	res, err := m.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
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
