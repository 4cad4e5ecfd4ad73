package repo

import (
	"context"

	"github.com/Veldkraal/farm_shop/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) ListReviewsByProduct(ctx context.Context, productID uint, offset, limit int) (int64, []models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return 0, nil, err
	}
	return total, reviews, nil
}
