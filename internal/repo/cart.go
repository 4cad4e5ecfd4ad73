package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/transport"
)

// EnsureCart finds or lazily creates the user's cart. The insert tolerates a
// concurrent first-add; the unique user_id index makes one of the two inserts
// a no-op and both callers end up reading the same row.
func (r *GormRepo) EnsureCart(ctx context.Context, userID uint) (*models.Cart, error) {
	if err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&models.Cart{UserID: userID}).Error; err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetCartByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem merges on add: an existing (cart, product) row gets its quantity
// incremented, otherwise a new row is created with the given price snapshot.
func (r *GormRepo) AddItem(ctx context.Context, cartID, productID uint, quantity int, priceCents int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			CartID:     cartID,
			ProductID:  productID,
			Quantity:   quantity,
			PriceCents: priceCents,
		}
		return tx.Create(&item).Error
	})
}

// UpdateItemQuantity sets the quantity absolutely, scoped to the owning cart.
// The returned count is zero when the item does not exist or is not owned.
func (r *GormRepo) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

// RemoveItem deletes by (id, cart_id); a miss is a silent no-op.
func (r *GormRepo) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	return r.DB.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) cartItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CartView assembles the derived view: line items joined with live product
// names and primary images, plus the recomputed totals.
func (r *GormRepo) CartView(ctx context.Context, cart *models.Cart) (*transport.CartView, error) {
	items, err := r.cartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	view := transport.EmptyCartView()
	view.ID = cart.ID
	if len(items) == 0 {
		return view, nil
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	var products []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	var images []models.ProductImage
	if err := r.DB.WithContext(ctx).
		Where("product_id IN ?", ids).
		Order("product_id ASC, position ASC, id ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	primary := make(map[uint]string, len(ids))
	for _, img := range images {
		if _, ok := primary[img.ProductID]; !ok {
			primary[img.ProductID] = img.URL
		}
	}

	for _, it := range items {
		view.Items = append(view.Items, transport.CartViewItem{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Name:       names[it.ProductID],
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
			ImageURL:   primary[it.ProductID],
		})
		view.SubtotalCents += it.PriceCents * int64(it.Quantity)
		view.TotalItems += it.Quantity
	}
	return view, nil
}
