package service

import (
	"context"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
)

type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindAddress(ctx context.Context, userID, id uint) (*models.Address, error)
	FindPayment(ctx context.Context, userID, id uint) (*models.Payment, error)

	FindProduct(ctx context.Context, id uint) (*models.Product, error)
	ReserveInventory(ctx context.Context, inventoryID uint, quantity int64) error

	CreateOrder(ctx context.Context, o *models.Order) error
	FindOrder(ctx context.Context, scope repo.Scope, id uint) (*models.Order, error)
	FindOrders(ctx context.Context, scope repo.Scope, offset, limit int) ([]models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error

	InsertOutbox(ctx context.Context, topic, key string, payload any) error
}

type gormStore struct {
	*repo.GormRepo
}

func NewGormStore(r *repo.GormRepo) Store {
	return gormStore{GormRepo: r}
}

func (s gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.GormRepo.Transaction(ctx, func(tx *repo.GormRepo) error {
		return fn(gormStore{GormRepo: tx})
	})
}
