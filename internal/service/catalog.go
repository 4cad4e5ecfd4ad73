package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/repo"
	"github.com/Veldkraal/farm_shop/internal/transport"
	"github.com/Veldkraal/farm_shop/internal/util"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return product, err
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.Repo.GetProductBySlug(ctx, slug, true)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: product %q", ErrNotFound, slug)
	}
	return product, err
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ListProductsFilter, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, f, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price_cents must be >= 0", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	slug, err := s.Repo.UniqueSlug(ctx, util.Slugify(name))
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product := &models.Product{
		Name:             name,
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		PriceCents:       req.PriceCents,
		CompareAtCents:   req.CompareAtCents,
		Stock:            req.Stock,
		Unit:             req.Unit,
		Active:           active,
		Featured:         req.Featured,
		OnSale:           req.OnSale,
		DiscountPercent:  req.DiscountPercent,
		SaleEndsAt:       req.SaleEndsAt,
		CategoryID:       req.CategoryID,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	if req.PriceCents != nil && *req.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price_cents must be >= 0", ErrValidation)
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	// A renamed product gets a fresh slug derived from the new name.
	slug := ""
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		*req.Name = name
		var err error
		slug, err = s.Repo.UniqueSlug(ctx, util.Slugify(name))
		if err != nil {
			return nil, err
		}
	}

	product, err := s.Repo.PatchProduct(ctx, id, req, slug)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return product, err
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if repo.IsNotFound(err) {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return err
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	cat := &models.Category{Name: name, Slug: util.Slugify(name)}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.Repo.DeleteCategory(ctx, id)
	if repo.IsNotFound(err) {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return err
}

func (s *CatalogService) AddImage(ctx context.Context, productID uint, req transport.AddProductImageRequest) (*models.ProductImage, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, fmt.Errorf("%w: url required", ErrValidation)
	}

	img := &models.ProductImage{ProductID: productID, URL: url, Alt: req.Alt}
	err := s.Repo.AddProductImage(ctx, img)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *CatalogService) ReorderImages(ctx context.Context, productID uint, req transport.ReorderImagesRequest) ([]models.ProductImage, error) {
	if len(req.ImageIDs) == 0 {
		return nil, fmt.Errorf("%w: image_ids required", ErrValidation)
	}

	err := s.Repo.ReorderImages(ctx, productID, req.ImageIDs)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: image not on product %d", ErrNotFound, productID)
	}
	if err != nil {
		return nil, err
	}
	return s.Repo.ListProductImages(ctx, productID)
}
