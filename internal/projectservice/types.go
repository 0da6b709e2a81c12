package projectservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/arvanweb/sitecms/internal/common"
)

type ProjectType string

const (
	TypeWebsite   ProjectType = "website"
	TypeApp       ProjectType = "app"
	TypeSEO       ProjectType = "seo"
	TypeEcommerce ProjectType = "ecommerce"
	TypeWebApp    ProjectType = "webapp"
)

type WebProject struct {
	ID           int                   `json:"id"`
	Title        string                `json:"title"`
	Slug         string                `json:"slug"`
	Type         ProjectType           `json:"type"`
	Category     string                `json:"category"`
	Icon         string                `json:"icon"`
	Color        string                `json:"color"`
	Image        string                `json:"image"`
	MockupImage  string                `json:"mockup_image"`
	Description  string                `json:"description"`
	Client       string                `json:"client"`
	Industry     string                `json:"industry"`
	Year         string                `json:"year"`
	Technologies common.JSONStringList `json:"technologies"`
	Features     common.JSONStringList `json:"features"`
	Results      common.JSONStringMap  `json:"results"`
	Link         string                `json:"link"`
	Testimonial  string                `json:"testimonial"`
	Challenge    string                `json:"challenge"`
	Solution     string                `json:"solution"`
	Gallery      common.JSONStringList `json:"gallery"`
	Order        int                   `json:"order"`
	IsFeatured   bool                  `json:"is_featured"`
	IsActive     bool                  `json:"is_active"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ProjectFilters narrows the portfolio listing. Zero values mean no filter;
// IncludeInactive widens the default active-only scope.
type ProjectFilters struct {
	Type            string
	FeaturedOnly    bool
	IncludeInactive bool
}

// TypeOption is a portfolio filter entry the frontend renders as a tab.
type TypeOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

type WebProjectModel struct {
	db *sql.DB
}

func newWebProjectModel(db *sql.DB) *WebProjectModel {
	return &WebProjectModel{db: db}
}

type ProjectService struct {
	m      *WebProjectModel
	c      *common.Cache
	logger *slog.Logger
}
