package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Images").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProductBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Product, error) {
	q := r.DB.WithContext(ctx).Preload("Images").Where("slug = ?", slug)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var product models.Product
	if err := q.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

type ListProductsFilter struct {
	ActiveOnly bool
	Featured   bool
	CategoryID *uint
}

func (r *GormRepo) ListProducts(ctx context.Context, f ListProductsFilter, offset, limit int) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if f.Featured {
		q = q.Where("featured = ?", true)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := q.Preload("Images").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// UniqueSlug suffixes the base slug with -2, -3, … until it is free.
func (r *GormRepo) UniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := r.DB.WithContext(ctx).Model(&models.Product{}).
			Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, id uint, req transport.PatchProductRequest, slug string) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if slug != "" {
		prod.Slug = slug
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.ShortDescription != nil {
		prod.ShortDescription = *req.ShortDescription
	}
	if req.PriceCents != nil {
		prod.PriceCents = *req.PriceCents
	}
	if req.CompareAtCents != nil {
		prod.CompareAtCents = req.CompareAtCents
	}
	if req.Stock != nil {
		prod.Stock = *req.Stock
	}
	if req.Unit != nil {
		prod.Unit = *req.Unit
	}
	if req.Active != nil {
		prod.Active = *req.Active
	}
	if req.Featured != nil {
		prod.Featured = *req.Featured
	}
	if req.OnSale != nil {
		prod.OnSale = *req.OnSale
	}
	if req.DiscountPercent != nil {
		prod.DiscountPercent = req.DiscountPercent
	}
	if req.SaleEndsAt != nil {
		prod.SaleEndsAt = req.SaleEndsAt
	}
	if req.CategoryID != nil {
		prod.CategoryID = req.CategoryID
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

// DeleteProduct removes the product, its images and any cart rows pointing at
// it, and nulls the live reference on historical order items so their
// snapshots remain the durable record.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.OrderItem{}).
			Where("product_id = ?", id).
			Update("product_id", nil).Error
	})
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) AddProductImage(ctx context.Context, img *models.ProductImage) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", img.ProductID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		var maxPos *int
		if err := tx.Model(&models.ProductImage{}).
			Where("product_id = ?", img.ProductID).
			Select("MAX(position)").Scan(&maxPos).Error; err != nil {
			return err
		}
		if maxPos != nil {
			img.Position = *maxPos + 1
		}
		return tx.Create(img).Error
	})
}

// ReorderImages applies the whole new ordering in one transaction; an id that
// does not belong to the product aborts the batch untouched.
func (r *GormRepo) ReorderImages(ctx context.Context, productID uint, imageIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, imageID := range imageIDs {
			res := tx.Model(&models.ProductImage{}).
				Where("id = ? AND product_id = ?", imageID, productID).
				Update("position", pos)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("image %d: %w", imageID, gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
}

func (r *GormRepo) ListProductImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC, id ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// IsNotFound reports whether err is gorm's record-not-found, wrapped or not.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
