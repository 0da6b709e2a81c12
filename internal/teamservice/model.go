package teamservice

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/arvanweb/sitecms/internal/common"
)

var ErrDuplicateSlug = errors.New("duplicate team member slug")

const memberColumns = `id, name, slug, role, bio, image, email, phone, social_links, skills, "order", is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner, m *TeamMember) error {
	return row.Scan(
		&m.ID, &m.Name, &m.Slug, &m.Role, &m.Bio, &m.Image, &m.Email, &m.Phone,
		&m.SocialLinks, &m.Skills, &m.Order, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
}

func (tm *TeamMemberModel) insert(ctx context.Context, m *TeamMember) error {
	query := `
		INSERT INTO team_members (name, slug, role, bio, image, email, phone, social_links, skills, "order", is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := tm.db.QueryRowContext(ctx, query,
		m.Name, m.Slug, m.Role, m.Bio, m.Image, m.Email, m.Phone,
		m.SocialLinks, m.Skills, m.Order, m.IsActive,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if common.UniqueViolation(err, "team_members_slug_key") {
			return ErrDuplicateSlug
		}
		return err
	}

	return nil
}

func (tm *TeamMemberModel) get(ctx context.Context, id int) (*TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m TeamMember
	if err := scanMember(tm.db.QueryRowContext(ctx, query, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrRecordNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (tm *TeamMemberModel) list(ctx context.Context, activeOnly bool) ([]TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY "order", id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := tm.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []TeamMember{}
	for rows.Next() {
		var m TeamMember
		if err := scanMember(rows, &m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (tm *TeamMemberModel) update(ctx context.Context, m *TeamMember) error {
	query := `
		UPDATE team_members
		SET name = $1, slug = $2, role = $3, bio = $4, image = $5, email = $6, phone = $7,
			social_links = $8, skills = $9, "order" = $10, is_active = $11, updated_at = now()
		WHERE id = $12
		RETURNING updated_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := tm.db.QueryRowContext(ctx, query,
		m.Name, m.Slug, m.Role, m.Bio, m.Image, m.Email, m.Phone,
		m.SocialLinks, m.Skills, m.Order, m.IsActive, m.ID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrRecordNotFound
		}
		if common.UniqueViolation(err, "team_members_slug_key") {
			return ErrDuplicateSlug
		}
		return err
	}

	return nil
}

func (tm *TeamMemberModel) delete(ctx context.Context, id int) error {
	query := `DELETE FROM team_members WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := tm.db.ExecContext(ctx, query, id)
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
