package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce/internal/audit"
	"github.com/Skotchmaster/ecommerce/internal/service"
	middleware "github.com/Skotchmaster/ecommerce/pkg/middleware/auth"
)

var errUnauthorized = errors.New("unauthorized")

func principal(c echo.Context) (service.Principal, error) {
	id, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok || id == 0 {
		return service.Principal{}, errUnauthorized
	}
	username, _ := c.Get(middleware.ContextUsername).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	if username == "" {
		return service.Principal{}, errUnauthorized
	}
	return service.Principal{UserID: id, Username: username, Role: role}, nil
}

// WithAuditor makes the authenticated username the author of every write
// performed while serving the request.
func WithAuditor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if username, ok := c.Get(middleware.ContextUsername).(string); ok && username != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(audit.WithAuditor(req.Context(), username)))
		}
		return next(c)
	}
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(name, path string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
