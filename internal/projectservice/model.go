package projectservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arvanweb/sitecms/internal/common"
)

var ErrDuplicateSlug = errors.New("duplicate project slug")

const projectColumns = `id, title, slug, type, category, icon, color, image, mockup_image, description,
	client, industry, year, technologies, features, results, link, testimonial, challenge, solution,
	gallery, "order", is_featured, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner, p *WebProject) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Type, &p.Category, &p.Icon, &p.Color, &p.Image, &p.MockupImage,
		&p.Description, &p.Client, &p.Industry, &p.Year, &p.Technologies, &p.Features, &p.Results,
		&p.Link, &p.Testimonial, &p.Challenge, &p.Solution, &p.Gallery, &p.Order,
		&p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (pm *WebProjectModel) insert(ctx context.Context, p *WebProject) error {
	query := `
		INSERT INTO web_projects (title, slug, type, category, icon, color, image, mockup_image,
			description, client, industry, year, technologies, features, results, link,
			testimonial, challenge, solution, gallery, "order", is_featured, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := pm.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Type, p.Category, p.Icon, p.Color, p.Image, p.MockupImage,
		p.Description, p.Client, p.Industry, p.Year, p.Technologies, p.Features, p.Results,
		p.Link, p.Testimonial, p.Challenge, p.Solution, p.Gallery, p.Order, p.IsFeatured, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if common.UniqueViolation(err, "web_projects_slug_key") {
			return ErrDuplicateSlug
		}
		return err
	}

	return nil
}

func (pm *WebProjectModel) getByID(ctx context.Context, id int) (*WebProject, error) {
	query := `SELECT ` + projectColumns + ` FROM web_projects WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p WebProject
	if err := scanProject(pm.db.QueryRowContext(ctx, query, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrRecordNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (pm *WebProjectModel) getBySlug(ctx context.Context, slug string) (*WebProject, error) {
	query := `SELECT ` + projectColumns + ` FROM web_projects WHERE slug = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p WebProject
	if err := scanProject(pm.db.QueryRowContext(ctx, query, slug), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrRecordNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (pm *WebProjectModel) list(ctx context.Context, f ProjectFilters) ([]WebProject, error) {
	query := `SELECT ` + projectColumns + ` FROM web_projects WHERE 1=1`
	args := []any{}

	if f.Type != "" && f.Type != "all" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if !f.IncludeInactive {
		query += " AND is_active = true"
	}
	if f.FeaturedOnly {
		query += " AND is_featured = true"
	}

	query += ` ORDER BY "order", created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := pm.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []WebProject{}
	for rows.Next() {
		var p WebProject
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (pm *WebProjectModel) update(ctx context.Context, p *WebProject) error {
	query := `
		UPDATE web_projects
		SET title = $1, slug = $2, type = $3, category = $4, icon = $5, color = $6, image = $7,
			mockup_image = $8, description = $9, client = $10, industry = $11, year = $12,
			technologies = $13, features = $14, results = $15, link = $16, testimonial = $17,
			challenge = $18, solution = $19, gallery = $20, "order" = $21, is_featured = $22,
			is_active = $23, updated_at = now()
		WHERE id = $24
		RETURNING updated_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := pm.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Type, p.Category, p.Icon, p.Color, p.Image, p.MockupImage,
		p.Description, p.Client, p.Industry, p.Year, p.Technologies, p.Features, p.Results,
		p.Link, p.Testimonial, p.Challenge, p.Solution, p.Gallery, p.Order, p.IsFeatured,
		p.IsActive, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrRecordNotFound
		}
		if common.UniqueViolation(err, "web_projects_slug_key") {
			return ErrDuplicateSlug
		}
		return err
	}

	return nil
}

func (pm *WebProjectModel) delete(ctx context.Context, id int) error {
	query := `DELETE FROM web_projects WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := pm.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}
