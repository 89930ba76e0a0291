package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/pricing"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/Skotchmaster/ecommerce/internal/util"
	"github.com/Skotchmaster/ecommerce/pkg/logging"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusUpdated = "order_status_updated"

	maxOrderItems = 100
)

// Indexer receives committed orders for search. Failures never fail the
// operation that produced the order.
type Indexer interface {
	IndexOrder(ctx context.Context, o *models.Order) error
}

type OrderMetrics interface {
	OrderPlaced()
	OrderRejected(reason string)
}

type OrderService struct {
	Store      Store
	EventTopic string
	Indexer    Indexer
	Metrics    OrderMetrics
	Now        func() time.Time
}

type OrderPage struct {
	Orders     []models.Order
	Page       int
	Size       int
	Total      int64
	TotalPages int
}

type OrderEventItem struct {
	ProductID uint  `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	Price     int64 `json:"price"`
}

type OrderEvent struct {
	Type       string           `json:"type"`
	OrderID    uint             `json:"order_id"`
	Username   string           `json:"username"`
	Status     string           `json:"status"`
	Total      int64            `json:"total"`
	Items      []OrderEventItem `json:"items,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func validateCreate(req transport.CreateOrderRequest) error {
	if req.AddressID == 0 {
		return invalid("address_id", "required")
	}
	if req.PaymentID == 0 {
		return invalid("payment_id", "required")
	}
	if len(req.Items) == 0 {
		return invalid("items", "required")
	}
	if len(req.Items) > maxOrderItems {
		return invalid("items", fmt.Sprintf("at most %d items", maxOrderItems))
	}
	for i, it := range req.Items {
		if it.ProductID == 0 {
			return invalid(fmt.Sprintf("items[%d].product_id", i), "required")
		}
		if it.Quantity <= 0 {
			return invalid(fmt.Sprintf("items[%d].quantity", i), "must be > 0")
		}
	}
	return nil
}

// PlaceOrder resolves the buyer, address and payment, reserves stock for
// every line in submission order, prices the lines and stores the order.
// Everything happens in one transaction: any failure leaves inventory as it
// was and no order behind.
func (s *OrderService) PlaceOrder(ctx context.Context, p Principal, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place", "principal", p.Username)

	if err := validateCreate(req); err != nil {
		s.rejected("validation")
		return nil, err
	}

	username := p.Username
	if p.IsAdmin() && req.Username != "" {
		username = req.Username
	}

	var order *models.Order
	err := s.Store.Transaction(ctx, func(tx Store) error {
		user, err := tx.FindUserByUsername(ctx, username)
		if err != nil {
			return lookupErr("User", err)
		}
		address, err := tx.FindAddress(ctx, user.ID, req.AddressID)
		if err != nil {
			return lookupErr("Address", err)
		}
		payment, err := tx.FindPayment(ctx, user.ID, req.PaymentID)
		if err != nil {
			return lookupErr("Payment", err)
		}

		o := &models.Order{
			Status:    models.OrderCreated,
			UserID:    user.ID,
			User:      *user,
			AddressID: address.ID,
			Address:   *address,
			PaymentID: payment.ID,
			Payment:   *payment,
			Items:     make([]models.OrderItem, 0, len(req.Items)),
		}

		for _, it := range req.Items {
			product, err := tx.FindProduct(ctx, it.ProductID)
			if err != nil {
				return lookupErr("Product", err)
			}
			if err := tx.ReserveInventory(ctx, product.InventoryID, it.Quantity); err != nil {
				if errors.Is(err, repo.ErrInsufficientStock) {
					return &InsufficientStockError{ProductID: product.ID, Requested: it.Quantity}
				}
				return err
			}
			product.Inventory.Quantity -= it.Quantity

			price := pricing.PriceLine(product, it.Quantity)
			o.Items = append(o.Items, models.OrderItem{
				ProductID: product.ID,
				Product:   *product,
				Quantity:  it.Quantity,
				Price:     price,
			})
			o.Total += price
		}

		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}
		if err := tx.InsertOutbox(ctx, s.EventTopic, orderKey(o.ID), s.event(EventOrderCreated, o)); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		s.rejected(rejectReason(err))
		l.Warn("place_order_failed", "username", username, "error", err)
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.OrderPlaced()
	}
	l.Info("place_order_success", "order_id", order.ID, "username", username, "total", order.Total)
	s.index(ctx, order)
	return order, nil
}

// List returns every order visible to p, newest first.
func (s *OrderService) List(ctx context.Context, p Principal, page, size int) (*OrderPage, error) {
	return s.page(ctx, p.OrderScope(), page, size)
}

// ListByUser lists the orders of username. Non-administrators always get
// their own orders whatever username they ask for.
func (s *OrderService) ListByUser(ctx context.Context, p Principal, username string, page, size int) (*OrderPage, error) {
	if !p.IsAdmin() {
		return s.page(ctx, repo.OwnedBy(p.UserID), page, size)
	}
	user, err := s.Store.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, lookupErr("User", err)
	}
	return s.page(ctx, repo.OwnedBy(user.ID), page, size)
}

func (s *OrderService) Get(ctx context.Context, p Principal, id uint) (*models.Order, error) {
	o, err := s.Store.FindOrder(ctx, p.OrderScope(), id)
	if err != nil {
		return nil, lookupErr("Order", err)
	}
	return o, nil
}

// UpdateStatus writes any known status. There is no transition graph.
func (s *OrderService) UpdateStatus(ctx context.Context, p Principal, id uint, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status", "principal", p.Username, "order_id", id)

	st, ok := models.ParseOrderStatus(status)
	if !ok {
		names := make([]string, 0, len(models.OrderStatuses()))
		for _, st := range models.OrderStatuses() {
			names = append(names, string(st))
		}
		return nil, invalid("status", fmt.Sprintf("unknown status %q, want one of %s", status, strings.Join(names, ", ")))
	}

	var updated *models.Order
	err := s.Store.Transaction(ctx, func(tx Store) error {
		o, err := tx.FindOrder(ctx, p.OrderScope(), id)
		if err != nil {
			return lookupErr("Order", err)
		}
		if err := tx.UpdateOrderStatus(ctx, o.ID, st); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("Order")
			}
			return err
		}
		o, err = tx.FindOrder(ctx, p.OrderScope(), id)
		if err != nil {
			return lookupErr("Order", err)
		}
		if err := tx.InsertOutbox(ctx, s.EventTopic, orderKey(o.ID), s.event(EventOrderStatusUpdated, o)); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		l.Warn("update_status_failed", "status", status, "error", err)
		return nil, err
	}

	l.Info("update_status_success", "status", st)
	s.index(ctx, updated)
	return updated, nil
}

func (s *OrderService) page(ctx context.Context, scope repo.Scope, page, size int) (*OrderPage, error) {
	if page < 0 {
		return nil, invalid("page", "must be >= 0")
	}
	if page > util.LastPage(size) {
		return nil, invalid("page", "out of range")
	}
	offset, limit := util.Calculate(page, size)
	orders, total, err := s.Store.FindOrders(ctx, scope, offset, limit)
	if err != nil {
		return nil, err
	}
	return &OrderPage{
		Orders:     orders,
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: util.TotalPages(total, limit),
	}, nil
}

func (s *OrderService) event(typ string, o *models.Order) OrderEvent {
	items := make([]OrderEventItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderEventItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return OrderEvent{
		Type:       typ,
		OrderID:    o.ID,
		Username:   o.User.Username,
		Status:     string(o.Status),
		Total:      o.Total,
		Items:      items,
		OccurredAt: s.now(),
	}
}

func (s *OrderService) index(ctx context.Context, o *models.Order) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexOrder(ctx, o); err != nil {
		logging.FromContext(ctx).Warn("index_order_failed", "order_id", o.ID, "error", err)
	}
}

func (s *OrderService) rejected(reason string) {
	if s.Metrics != nil {
		s.Metrics.OrderRejected(reason)
	}
}

func rejectReason(err error) string {
	var nf *NotFoundError
	switch {
	case errors.As(err, &nf):
		return "not_found_" + strings.ToLower(nf.Entity)
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}

func lookupErr(entity string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return notFound(entity)
	}
	return fmt.Errorf("find %s: %w", entity, err)
}

func orderKey(id uint) string { return strconv.FormatUint(uint64(id), 10) }
