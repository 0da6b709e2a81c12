package userservice

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/arvanweb/sitecms/internal/common"
)

var ErrAuthenticationFailure = errors.New("unauthorized access")

func NewUserService(db *sql.DB, c *common.Cache, logger *slog.Logger) *UserService {
	return &UserService{
		m:      newUserModel(db),
		c:      c,
		logger: logger,
	}
}

// CreateUser creates an account with the content:write permission. There is
// no self-service registration; accounts are provisioned by an existing admin
// or the startup bootstrap.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Email:    email,
	}

	if err := u.Password.set(password); err != nil {
		return nil, err
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if err := s.m.insertUser(tx, ctx, &u); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := s.m.addUserPermission(tx, ctx, u.ID, PermissionWriteContent); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	u.Permissions = Permissions{PermissionWriteContent}

	s.logger.Info("user created", slog.Int("id", u.ID), slog.String("username", u.Username))
	return &u, nil
}

// Bootstrap provisions the initial admin account when the users table is
// empty. Subsequent startups are a no-op.
func (s *UserService) Bootstrap(ctx context.Context, username, email, password string) error {
	count, err := s.m.countUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.CreateUser(ctx, username, email, password)
	if err != nil {
		return err
	}

	s.logger.Info("bootstrap admin created", slog.String("username", username))
	return nil
}

// LoginUser verifies the credentials and returns an auth token pair. A still
// valid existing pair is reused; an expired one is replaced.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	dbToken, err := s.m.getAuthToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if dbToken != nil && dbToken.AccessTokenExpiry.After(time.Now()) && dbToken.RefreshTokenExpiry.After(time.Now()) {
		return dbToken, nil
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if dbToken != nil {
		if err := s.m.deleteAuthToken(tx, ctx, user.ID); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}

	authToken, err := s.m.createAuthToken(tx, ctx, user.ID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return authToken, nil
}

// GetUserByAccessToken resolves the user behind an access token, caching hits
// briefly to keep the per-request auth lookup off the database.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := hashToken(token)

	if cached, ok := s.c.Get(common.CacheKeyUserByAccessToken(hash)); ok {
		return cached.(*User), nil
	}

	user, err := s.m.getUserByAccessToken(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyUserByAccessToken(hash), user, 5*time.Minute)
	return user, nil
}

func (s *UserService) LogoutUser(ctx context.Context, userID int) error {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := s.m.deleteAuthToken(tx, ctx, userID); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.c.Flush()
	return nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) HasPermission(permission Permission) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}

	return false
}
