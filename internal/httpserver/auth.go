package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce/internal/service"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/Skotchmaster/ecommerce/pkg/logging"
	middleware "github.com/Skotchmaster/ecommerce/pkg/middleware/auth"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return fail(c, "register_error", err)
	}

	return c.JSON(http.StatusCreated, transport.WebResponse{Data: transport.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(c, "login_failed", err)
	}

	c.SetCookie(CreateCookie(middleware.AccessCookie, res.AccessToken, "/", res.AccessExp))
	l.Info("login_successful")

	return c.JSON(http.StatusOK, transport.WebResponse{Data: transport.LoginResponse{
		AccessToken: res.AccessToken,
		ExpiresAt:   res.AccessExp,
		IsAdmin:     res.IsAdmin,
	}})
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	c.SetCookie(DeleteCookie(middleware.AccessCookie, "/"))
	logging.FromContext(c.Request().Context()).Info("successful_logout")
	return c.NoContent(http.StatusNoContent)
}
