package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Veldkraal/farm_shop/internal/models"
)

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// ResolveUser upserts the local user row keyed by external id, keeping
// email/name in sync with the session and promoting to ADMIN when asked.
// Promotion is one-way; an existing ADMIN is never demoted here.
func (r *GormRepo) ResolveUser(ctx context.Context, externalID, email, name string, admin bool) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role := models.RoleCustomer
		if admin {
			role = models.RoleAdmin
		}
		user = models.User{
			ExternalID: externalID,
			Email:      email,
			Name:       name,
			Role:       role,
		}
		if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if email != "" && email != user.Email {
		updates["email"] = email
		user.Email = email
	}
	if name != "" && name != user.Name {
		updates["name"] = name
		user.Name = name
	}
	if admin && user.Role != models.RoleAdmin {
		updates["role"] = models.RoleAdmin
		user.Role = models.RoleAdmin
	}
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}
