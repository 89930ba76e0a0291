package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	pkg_hash "github.com/Skotchmaster/ecommerce/pkg/hash"
	"github.com/Skotchmaster/ecommerce/pkg/logging"
	"github.com/Skotchmaster/ecommerce/pkg/tokens"
)

const minPasswordLen = 8

type UserStore interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUserIfNotExists(ctx context.Context, u *models.User) error
}

type AuthService struct {
	Users     UserStore
	JWTSecret []byte
	AccessTTL time.Duration
	Now       func() time.Time
}

type LoginResult struct {
	AccessToken string
	AccessExp   time.Time
	IsAdmin     bool
}

func (h *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", username)

	username = strings.TrimSpace(username)
	if username == "" || len(username) > 64 {
		return nil, invalid("username", "must be 1..64 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("email", "malformed")
	}
	if len(password) < minPasswordLen {
		return nil, invalid("password", "too short")
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := h.Users.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 409, "reason", "user already exist")
			return nil, ErrConflict
		}
		l.Error("register_error", "status", 500, "reason", "internal error", "error", err)
		return nil, err
	}
	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

func (h *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := h.Users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login failed", "status", 401, "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		l.Error("login failed", "status", 500, "error", err)
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	ttl := h.AccessTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	accessExp := now.Add(ttl)
	accessToken, err := tokens.NewAccessToken(user.ID, user.Username, user.Role, accessExp, h.JWTSecret)
	if err != nil {
		l.Error("login failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{
		AccessToken: accessToken,
		AccessExp:   accessExp,
		IsAdmin:     user.Role == models.RoleAdmin,
	}, nil
}
