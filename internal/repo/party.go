package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce/internal/models"
)

func (r *GormRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", u.Username).First(&existing).Error
		if err == nil {
			return ErrUserAlreadyExist
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup user: %w", err)
		}
		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserAlreadyExist
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

// FindAddress only matches addresses owned by userID.
func (r *GormRepo) FindAddress(ctx context.Context, userID, id uint) (*models.Address, error) {
	var a models.Address
	err := r.DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// FindPayment only matches payments owned by userID.
func (r *GormRepo) FindPayment(ctx context.Context, userID, id uint) (*models.Payment, error) {
	var p models.Payment
	err := r.DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}
