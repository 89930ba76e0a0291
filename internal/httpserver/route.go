package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce/pkg/metrics"
	middleware "github.com/Skotchmaster/ecommerce/pkg/middleware/auth"
	"github.com/Skotchmaster/ecommerce/pkg/middleware/csrf"
	"github.com/Skotchmaster/ecommerce/pkg/middleware/ratelimit"
)

type Deps struct {
	OrderHandler  *OrderHTTP
	AuthHandler   *AuthHTTP
	SearchHandler *SearchHTTP
	JWTSecret     []byte
	OrderLimiter  *ratelimit.Limiter
	Metrics       *metrics.ServerMetrics
	Ready         func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready").SetInternal(err)
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	authMW := middleware.NewJWTMiddleware(d.JWTSecret)
	// cookie sessions need a CSRF token on writes; bearer clients skip it
	csrfMW := csrf.Middleware(csrf.DefaultConfig())
	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.LogOut, authMW.RequireAuth, csrfMW)

	orders := api.Group("/orders", authMW.RequireAuth, csrfMW, WithAuditor)

	var create []echo.MiddlewareFunc
	if d.OrderLimiter != nil {
		create = append(create, d.OrderLimiter.Middleware)
	}
	orders.POST("", d.OrderHandler.CreateOrder, create...)
	orders.GET("/users/:username", d.OrderHandler.ListUserOrders)
	orders.GET("/:ref", d.OrderHandler.GetByRef)

	orders.GET("", d.OrderHandler.ListOrders, authMW.RequireAdmin)
	orders.GET("/search", d.SearchHandler.SearchOrders, authMW.RequireAdmin)
	orders.PATCH("/:id", d.OrderHandler.UpdateStatus, authMW.RequireAdmin)
}
