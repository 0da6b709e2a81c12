package userservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/arvanweb/sitecms/internal/common"
)

type Permission string
type Permissions []Permission

const (
	AccessTokenTime  time.Duration = 7 * 24 * time.Hour
	RefreshTokenTime time.Duration = 30 * 24 * time.Hour

	PermissionWriteContent Permission = "content:write"
)

var AnonymousUser = User{}

type UserService struct {
	m      *DBModel
	c      *common.Cache
	logger *slog.Logger
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`

	Permissions Permissions `json:"permissions"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

type AuthToken struct {
	AccessTokenPlain   string    `json:"access_token"`
	AccessTokenHash    []byte    `json:"-"`
	RefreshTokenPlain  string    `json:"refresh_token"`
	RefreshTokenHash   []byte    `json:"-"`
	UserID             int       `json:"user_id"`
	AccessTokenExpiry  time.Time `json:"access_token_expiry"`
	RefreshTokenExpiry time.Time `json:"refresh_token_expiry"`
}
