package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce/internal/service"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/Skotchmaster/ecommerce/internal/util"
	"github.com/Skotchmaster/ecommerce/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func pageParams(c echo.Context) (page, size int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 0)
	size = util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	return page, size
}

func pageResponse(p *service.OrderPage) transport.WebResponse {
	return transport.WebResponse{
		Data: transport.NewOrderResponses(p.Orders),
		Paging: &transport.PagingResponse{
			CurrentPage: p.Page,
			TotalPage:   p.TotalPages,
			Size:        p.Size,
			TotalItems:  p.Total,
		},
	}
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	p, err := principal(c)
	if err != nil {
		l.Warn("create_order_error", "status", 401, "reason", "no principal")
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, p, req)
	if err != nil {
		return fail(c, "create_order_error", err)
	}

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, transport.WebResponse{Data: transport.NewOrderResponse(order)})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	page, size := pageParams(c)

	res, err := h.Svc.List(c.Request().Context(), p, page, size)
	if err != nil {
		return fail(c, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, pageResponse(res))
}

func (h *OrderHTTP) ListUserOrders(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return h.listByUser(c, p, c.Param("username"))
}

func (h *OrderHTTP) listByUser(c echo.Context, p service.Principal, username string) error {
	page, size := pageParams(c)
	res, err := h.Svc.ListByUser(c.Request().Context(), p, username, page, size)
	if err != nil {
		return fail(c, "list_user_orders_error", err)
	}
	return c.JSON(http.StatusOK, pageResponse(res))
}

// GetByRef serves GET /orders/:ref. A numeric ref is an order id, anything
// else is a username whose orders are listed.
func (h *OrderHTTP) GetByRef(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	ref := c.Param("ref")
	id, err := strconv.ParseUint(ref, 10, 64)
	if err != nil {
		return h.listByUser(c, p, ref)
	}

	order, err := h.Svc.Get(c.Request().Context(), p, uint(id))
	if err != nil {
		return fail(c, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, transport.WebResponse{Data: transport.NewOrderResponse(order)})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	p, err := principal(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, transport.ErrorBody{
			Code: "validation_failed", Field: "id", Message: "invalid order id",
		})
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, p, uint(id), req.Status)
	if err != nil {
		return fail(c, "update_status_error", err)
	}

	l.Info("update_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, transport.WebResponse{Data: transport.NewOrderResponse(order)})
}
