package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Veldkraal/farm_shop/internal/models"
)

func (r *GormRepo) ListAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	var addrs []models.Address
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *GormRepo) GetAddress(ctx context.Context, userID, id uint) (*models.Address, error) {
	var addr models.Address
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&addr).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

// CreateAddress inserts addr, forcing the default flag on a user's first
// address and clearing every other default in the same transaction when this
// one is to become default. At most one default survives the commit.
func (r *GormRepo) CreateAddress(ctx context.Context, addr *models.Address) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).
			Where("user_id = ?", addr.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			addr.IsDefault = true
		}

		if addr.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", addr.UserID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(addr).Error
	})
}

// SaveAddress persists field changes; when makeDefault is set, all of the
// user's other addresses lose the flag in the same transaction.
func (r *GormRepo) SaveAddress(ctx context.Context, addr *models.Address, makeDefault bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if makeDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND id <> ?", addr.UserID, addr.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
			addr.IsDefault = true
		}
		return tx.Save(addr).Error
	})
}

// DeleteAddress removes the owned address and, when it held the default flag,
// promotes the oldest survivor by creation time (id breaks ties).
func (r *GormRepo) DeleteAddress(ctx context.Context, userID, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var addr models.Address
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&addr).Error; err != nil {
			return err
		}
		if err := tx.Delete(&addr).Error; err != nil {
			return err
		}
		if !addr.IsDefault {
			return nil
		}

		var oldest models.Address
		err := tx.Where("user_id = ?", userID).
			Order("created_at ASC, id ASC").
			First(&oldest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&oldest).Update("is_default", true).Error
	})
}
