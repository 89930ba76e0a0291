package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/ecommerce/internal/models"
)

func withOrderGraph(q *gorm.DB) *gorm.DB {
	return q.
		Preload("User").
		Preload("Address").
		Preload("Payment").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Items.Product")
}

// CreateOrder inserts the order row and then its items. Associations are
// never upserted: users, addresses, payments and products must already exist.
func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	db := r.DB.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(o).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	if len(o.Items) == 0 {
		return nil
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	if err := db.Omit(clause.Associations).Create(&o.Items).Error; err != nil {
		return fmt.Errorf("create order items: %w", err)
	}
	return nil
}

func (r *GormRepo) FindOrder(ctx context.Context, scope Scope, id uint) (*models.Order, error) {
	var o models.Order
	q := scope.apply(r.DB.WithContext(ctx).Model(&models.Order{}))
	if err := withOrderGraph(q).Where("orders.id = ?", id).First(&o).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

// FindOrders returns one page of orders visible under scope, newest first,
// together with the total number of matching orders.
func (r *GormRepo) FindOrders(ctx context.Context, scope Scope, offset, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := scope.apply(r.DB.WithContext(ctx).Model(&models.Order{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	orders := make([]models.Order, 0, limit)
	if total == 0 {
		return orders, 0, nil
	}
	q := scope.apply(r.DB.WithContext(ctx).Model(&models.Order{}))
	err := withOrderGraph(q).
		Order("orders.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update order %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
