package teamservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/arvanweb/sitecms/internal/common"
)

type TeamMember struct {
	ID          int                   `json:"id"`
	Name        string                `json:"name"`
	Slug        string                `json:"slug"`
	Role        string                `json:"role"`
	Bio         string                `json:"bio"`
	Image       string                `json:"image"`
	Email       string                `json:"email"`
	Phone       string                `json:"phone"`
	SocialLinks common.JSONStringMap  `json:"social_links"`
	Skills      common.JSONStringList `json:"skills"`
	Order       int                   `json:"order"`
	IsActive    bool                  `json:"is_active"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

type TeamMemberModel struct {
	db *sql.DB
}

func newTeamMemberModel(db *sql.DB) *TeamMemberModel {
	return &TeamMemberModel{db: db}
}

type TeamService struct {
	m      *TeamMemberModel
	c      *common.Cache
	logger *slog.Logger
}
