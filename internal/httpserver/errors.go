package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce/internal/search"
	"github.com/Skotchmaster/ecommerce/internal/service"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/Skotchmaster/ecommerce/pkg/logging"
)

// toHTTPError maps service errors onto status codes and envelope bodies.
func toHTTPError(err error) *echo.HTTPError {
	var (
		nf  *service.NotFoundError
		ve  *service.ValidationError
		ise *service.InsufficientStockError
		he  *echo.HTTPError
	)
	switch {
	case errors.As(err, &he):
		return he
	case errors.As(err, &nf):
		return echo.NewHTTPError(http.StatusNotFound, transport.ErrorBody{
			Code: "not_found", Entity: nf.Entity, Message: nf.Error(),
		})
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, transport.ErrorBody{
			Code: "validation_failed", Field: ve.Field, Message: ve.Error(),
		})
	case errors.As(err, &ise):
		return echo.NewHTTPError(http.StatusBadRequest, transport.ErrorBody{
			Code: "insufficient_stock", ProductID: ise.ProductID, Message: ise.Error(),
		})
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, transport.ErrorBody{
			Code: "conflict", Message: "user already exist",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, transport.ErrorBody{
			Code: "invalid_credentials", Message: "invalid username or password",
		})
	case errors.Is(err, search.ErrSearch):
		return echo.NewHTTPError(http.StatusBadGateway, transport.ErrorBody{
			Code: "search_unavailable", Message: "search backend error",
		})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, transport.ErrorBody{
			Code: "internal", Message: "internal error",
		}).SetInternal(err)
	}
}

// fail logs err under event and converts it for the client.
func fail(c echo.Context, event string, err error) error {
	he := toHTTPError(err)
	l := logging.FromContext(c.Request().Context())
	if he.Code >= http.StatusInternalServerError {
		l.Error(event, "status", he.Code, "error", err)
	} else {
		l.Warn(event, "status", he.Code, "error", err)
	}
	return he
}

func codeFor(status int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}

// ErrorHandler renders every error inside the response envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he := toHTTPError(err)
	body, ok := he.Message.(transport.ErrorBody)
	if !ok {
		body = transport.ErrorBody{Code: codeFor(he.Code), Message: fmt.Sprint(he.Message)}
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(he.Code)
	} else {
		werr = c.JSON(he.Code, transport.WebResponse{Errors: &body})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response", "error", werr)
	}
}
