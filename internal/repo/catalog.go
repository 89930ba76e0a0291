package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce/internal/models"
)

func (r *GormRepo) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.DB.WithContext(ctx).
		Preload("Inventory").
		Preload("Discount").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ReserveInventory decrements the stock of inventoryID by quantity in one
// conditional statement, so concurrent reservations can never drive it
// negative. Returns ErrInsufficientStock when fewer than quantity units remain.
func (r *GormRepo) ReserveInventory(ctx context.Context, inventoryID uint, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve inventory %d: non-positive quantity %d", inventoryID, quantity)
	}
	res := r.DB.WithContext(ctx).
		Model(&models.ProductInventory{}).
		Where("id = ? AND quantity >= ?", inventoryID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("reserve inventory %d: %w", inventoryID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
