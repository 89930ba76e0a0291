package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce/internal/search"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/Skotchmaster/ecommerce/internal/util"
)

type OrderSearcher interface {
	Search(ctx context.Context, q string, from, size int) (int64, []search.OrderDocument, error)
}

type SearchHTTP struct {
	Searcher OrderSearcher
}

func (h *SearchHTTP) SearchOrders(c echo.Context) error {
	if h == nil || h.Searcher == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is disabled")
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, transport.ErrorBody{
			Code: "validation_failed", Field: "q", Message: "query is required",
		})
	}
	page, size := pageParams(c)
	if page < 0 {
		page = 0
	}
	from, limit := util.Calculate(page, size)

	total, docs, err := h.Searcher.Search(c.Request().Context(), q, from, limit)
	if err != nil {
		return fail(c, "search_orders_error", err)
	}
	return c.JSON(http.StatusOK, transport.WebResponse{
		Data: docs,
		Paging: &transport.PagingResponse{
			CurrentPage: page,
			TotalPage:   util.TotalPages(total, limit),
			Size:        limit,
			TotalItems:  total,
		},
	})
}
